package access

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize pasa a mayúsculas, quita acentos y colapsa espacios:
// "Téc.  Manutenção" -> "TEC. MANUTENCAO".
func Normalize(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(folded)), " ")
}

// containsWordPrefix informa si keyword aparece en text empezando en un inicio de palabra.
// Ambos deben venir normalizados.
func containsWordPrefix(text, keyword string) bool {
	if keyword == "" {
		return false
	}
	for from := 0; from <= len(text)-len(keyword); {
		idx := strings.Index(text[from:], keyword)
		if idx < 0 {
			return false
		}
		pos := from + idx
		if pos == 0 {
			return true
		}
		if prev, _ := utf8.DecodeLastRuneInString(text[:pos]); !isWordRune(prev) {
			return true
		}
		from = pos + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if containsWordPrefix(text, k) {
			return true
		}
	}
	return false
}
