package usecase_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

var errStoreDown = errors.New("connection refused")

// memStore almacén en memoria con la misma semántica de versión que el adaptador Postgres.
type memStore struct {
	mu      sync.Mutex
	events  []*entity.ComplianceEvent
	users   []*entity.User
	perms   []entity.PermissionTuple
	fail    bool
	upserts int
}

func (s *memStore) FetchAllEvents(context.Context) ([]*entity.ComplianceEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStoreDown
	}
	out := make([]*entity.ComplianceEvent, 0, len(s.events))
	for _, ev := range s.events {
		cp := *ev
		out = append(out, &cp)
	}
	return out, nil
}

func (s *memStore) FetchAllUsers(context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStoreDown
	}
	return s.users, nil
}

func (s *memStore) GetEvent(_ context.Context, id string) (*entity.ComplianceEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errStoreDown
	}
	for _, ev := range s.events {
		if ev.ID == id {
			cp := *ev
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memStore) UpsertEvent(_ context.Context, ev *entity.ComplianceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errStoreDown
	}
	s.upserts++
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	for i, cur := range s.events {
		if cur.ID != ev.ID {
			continue
		}
		if ev.Version > 0 && ev.Version != cur.Version {
			return domain.ErrConflict
		}
		ev.Version = cur.Version + 1
		cp := *ev
		s.events[i] = &cp
		return nil
	}
	ev.Version = 1
	cp := *ev
	s.events = append(s.events, &cp)
	return nil
}

func (s *memStore) FetchPermissions(context.Context) ([]entity.PermissionTuple, error) {
	if s.fail {
		return nil, errStoreDown
	}
	return append([]entity.PermissionTuple(nil), s.perms...), nil
}

func (s *memStore) SavePermissions(_ context.Context, perms []entity.PermissionTuple) error {
	if s.fail {
		return errStoreDown
	}
	s.perms = append([]entity.PermissionTuple(nil), perms...)
	return nil
}

type memUsers struct {
	byMatricula map[string]*entity.User
	fail        bool
}

func newMemUsers(users ...*entity.User) *memUsers {
	r := &memUsers{byMatricula: map[string]*entity.User{}}
	for _, u := range users {
		r.byMatricula[u.Matricula] = u
	}
	return r
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	if r.fail {
		return errStoreDown
	}
	if _, ok := r.byMatricula[u.Matricula]; ok {
		return domain.ErrUserExists
	}
	r.byMatricula[u.Matricula] = u
	return nil
}

func (r *memUsers) GetByMatricula(_ context.Context, m string) (*entity.User, error) {
	if r.fail {
		return nil, errStoreDown
	}
	return r.byMatricula[m], nil
}

func (r *memUsers) List(context.Context) ([]*entity.User, error) {
	if r.fail {
		return nil, errStoreDown
	}
	out := make([]*entity.User, 0, len(r.byMatricula))
	for _, u := range r.byMatricula {
		out = append(out, u)
	}
	return out, nil
}
