package usecase

import (
	"errors"
	"fmt"

	"github.com/jhoicas/checklist-api/internal/domain"
)

// storeErr envuelve fallos del almacén en la ruta de escritura. NotFound y Conflict
// se propagan tal cual; todo lo demás es ErrAdapterUnavailable.
func storeErr(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrUserExists) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrAdapterUnavailable, err)
}
