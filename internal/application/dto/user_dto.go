package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Matricula string `json:"matricula" validate:"required"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Role      string `json:"role" validate:"required"`
	Shift     string `json:"shift" validate:"omitempty,oneof=1 2"`
	Password  string `json:"password" validate:"required,min=6"`
	IsAdmin   bool   `json:"is_admin"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	Matricula string    `json:"matricula"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Shift     string    `json:"shift"`
	IsAdmin   bool      `json:"is_admin"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login por matrícula.
type LoginRequest struct {
	Matricula string `json:"matricula" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// LoginResponse token JWT + usuario + módulos visibles.
type LoginResponse struct {
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Modules []string     `json:"modules"`
}

// MeResponse identidad del token con los módulos que la interfaz debe mostrar.
type MeResponse struct {
	User     UserResponse `json:"user"`
	Modules  []string     `json:"modules"`
	IsLeader bool         `json:"is_leader"`
}
