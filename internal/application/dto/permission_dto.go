package dto

// PermissionDTO tupla (rol, módulo, permitido).
type PermissionDTO struct {
	Role    string `json:"role" validate:"required"`
	Module  string `json:"module" validate:"required"`
	Allowed bool   `json:"allowed"`
}

// SavePermissionsRequest reemplaza el conjunto completo de tuplas.
type SavePermissionsRequest struct {
	Permissions []PermissionDTO `json:"permissions"`
}

// PermissionsResponse tuplas vigentes y el catálogo de módulos.
type PermissionsResponse struct {
	Permissions  []PermissionDTO `json:"permissions"`
	Modules      []string        `json:"modules"`
	DefaultAllow []string        `json:"default_allow"`
}
