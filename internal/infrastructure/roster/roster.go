// Package roster lee el padrón de operadores exportado por RRHH:
// CSV separado por ';' con columnas matricula;nome;funcao;turno.
package roster

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/checklist-api/internal/domain"
	"github.com/jhoicas/checklist-api/internal/domain/access"
	"github.com/jhoicas/checklist-api/internal/domain/shift"
)

// Entry una fila válida del padrón.
type Entry struct {
	Matricula string
	Name      string
	Role      string
	Shift     string // "1" | "2" | "" si no se pudo determinar
}

// RowError fila descartada y el motivo.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("línea %d: %s", e.Line, e.Reason)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read decodifica el padrón. Los archivos que no son UTF-8 válido se leen como Windows-1252
// (exportación por defecto de Excel en la planta). La cabecera es opcional.
// Las filas incompletas no abortan la lectura: se devuelven aparte.
func Read(r io.Reader) ([]Entry, []RowError, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("leer padrón: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var src io.Reader = bytes.NewReader(raw)
	if !utf8.Valid(raw) {
		src = transform.NewReader(src, charmap.Windows1252.NewDecoder())
	}

	cr := csv.NewReader(src)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var (
		entries []Entry
		skipped []RowError
		seen    = map[string]bool{}
	)
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: padrón: %v", domain.ErrValidation, err)
		}
		line, _ := cr.FieldPos(0)
		if first && isHeader(rec) {
			continue
		}
		if blank(rec) {
			continue
		}
		if len(rec) < 3 {
			skipped = append(skipped, RowError{Line: line, Reason: "faltan columnas"})
			continue
		}
		e := Entry{
			Matricula: strings.TrimSpace(rec[0]),
			Name:      strings.TrimSpace(rec[1]),
			Role:      strings.TrimSpace(rec[2]),
		}
		if len(rec) > 3 {
			e.Shift = parseShift(rec[3])
		}
		if e.Shift == "" {
			e.Shift = shift.FromLegacyRole(e.Role)
		}
		switch {
		case e.Matricula == "" || e.Name == "":
			skipped = append(skipped, RowError{Line: line, Reason: "matrícula o nombre vacío"})
			continue
		case seen[e.Matricula]:
			skipped = append(skipped, RowError{Line: line, Reason: "matrícula repetida " + e.Matricula})
			continue
		}
		seen[e.Matricula] = true
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && access.Normalize(rec[0]) == "MATRICULA"
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseShift acepta "1", "2", "1º TURNO", "TURNO 2", "T1".
func parseShift(s string) string {
	s = strings.TrimSpace(s)
	if s == "1" || s == "2" {
		return s
	}
	return shift.FromLegacyRole(s)
}
