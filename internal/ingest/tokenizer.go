package ingest

import (
	"strings"
)

// TokenizeLine splits a single CSV line into fields.
//
// The scanner is deliberately lenient: a quote toggles quoted mode, two
// consecutive quotes inside a quoted field emit one literal quote, and an
// unbalanced quote simply runs to end of line without error — the partial
// field is emitted as accumulated. Field text is kept verbatim during the
// scan (embedded spaces preserved), then each field is edge-trimmed and,
// if still wrapped in a quote pair, unwrapped.
func TokenizeLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuote := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuote && i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped quote: emit one literal and skip the pair.
				current.WriteRune('"')
				i++
			} else {
				inQuote = !inQuote
			}
		case ch == ',' && !inQuote:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, current.String())

	for i, field := range fields {
		fields[i] = cleanField(field)
	}
	return fields
}

// cleanField trims a tokenized field at the edges and strips one wrapping
// quote pair if the trimmed text still carries it.
func cleanField(field string) string {
	trimmed := strings.TrimSpace(field)
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	return trimmed
}
