package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// PrintableName returns the client name as it appears on the report.
// A blank name becomes DefaultClientName. The report's core fonts cover
// Windows-1252 only, so accented letters outside it are reduced to their
// base letter; any other uncovered rune or a control character is rejected.
func PrintableName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultClientName, nil
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsControl(r) {
			return "", NewValidationError("client_name", "must not contain control characters", name)
		}
		if encodable(r) {
			b.WriteRune(r)
			continue
		}
		for _, d := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			if !encodable(d) {
				return "", NewValidationError("client_name", "contains characters the report font cannot render", name)
			}
			b.WriteRune(d)
		}
	}
	return b.String(), nil
}

func encodable(r rune) bool {
	_, ok := charmap.Windows1252.EncodeRune(r)
	return ok
}
