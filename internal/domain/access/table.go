package access

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/entity"
)

//go:embed access_table.yaml
var defaultTableYAML []byte

// Formas de comparar el sector de una regla.
const (
	MatchExact  = "exact"
	MatchPrefix = "prefix"
)

// SectorRule roles (por palabra clave) habilitados para un sector.
type SectorRule struct {
	Sector   string   `yaml:"sector"`
	Match    string   `yaml:"match,omitempty"`
	Keywords []string `yaml:"keywords"`
}

// Table configuración declarativa de autorización. Agregar sectores o roles es un cambio de datos.
type Table struct {
	Superusers   []string        `yaml:"superusers"`
	Leaders      []string        `yaml:"leaders"`
	DefaultAllow []entity.Module `yaml:"default_allow"`
	Sectors      []SectorRule    `yaml:"sectors"`
}

// DefaultTable devuelve la tabla embebida en el binario.
func DefaultTable() (Table, error) {
	return ParseTable(defaultTableYAML)
}

// LoadTable lee la tabla desde path; path vacío usa la tabla embebida.
func LoadTable(path string) (Table, error) {
	if path == "" {
		return DefaultTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("leer tabla de acceso %s: %w", path, err)
	}
	return ParseTable(data)
}

// ParseTable decodifica y valida una tabla YAML.
func ParseTable(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("%w: tabla de acceso: %v", domain.ErrValidation, err)
	}
	for i, m := range t.DefaultAllow {
		parsed, ok := entity.ParseModule(string(m))
		if !ok {
			return Table{}, fmt.Errorf("%w: módulo desconocido %q en default_allow", domain.ErrValidation, m)
		}
		t.DefaultAllow[i] = parsed
	}
	for i, s := range t.Sectors {
		if strings.TrimSpace(s.Sector) == "" {
			return Table{}, fmt.Errorf("%w: regla %d sin sector", domain.ErrValidation, i)
		}
		switch s.Match {
		case "":
			t.Sectors[i].Match = MatchExact
		case MatchExact, MatchPrefix:
		default:
			return Table{}, fmt.Errorf("%w: match %q en sector %s", domain.ErrValidation, s.Match, s.Sector)
		}
	}
	return t, nil
}
