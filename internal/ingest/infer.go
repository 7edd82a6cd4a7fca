package ingest

import (
	"strconv"
	"strings"
	"time"

	"assetlens/domain/table"
)

// sampleSize is the number of leading rows inspected per column when
// inferring its Kind. The schema is fixed after that: rows past the sample
// never change an inferred Kind, even when their values disagree.
const sampleSize = 20

// headerRule is one entry in the ordered inference rule list. match
// receives the lowercased header and the raw sample; the first rule that
// matches decides the Kind.
type headerRule struct {
	name  string
	match func(header string, sample []string) bool
	kind  table.Kind
}

// headerRules encodes the precedence of header-driven inference. Order is
// load-bearing: a condition column whose Thai name contains the picture
// substring must resolve to String before any image or content rule sees it.
var headerRules = []headerRule{
	{
		name: "image-header",
		match: func(header string, _ []string) bool {
			return containsAny(header, imageHeaderTerms)
		},
		kind: table.KindImage,
	},
	{
		name: "image-header-localized",
		match: func(header string, _ []string) bool {
			return strings.Contains(header, imageTermTH) && !strings.Contains(header, conditionTermTH)
		},
		kind: table.KindImage,
	},
	{
		name: "condition-header",
		match: func(header string, _ []string) bool {
			return containsAny(header, conditionHeaderTerms)
		},
		kind: table.KindString,
	},
	{
		name: "url-header-with-links",
		match: func(header string, sample []string) bool {
			if !containsAny(header, urlHeaderTerms) {
				return false
			}
			for _, value := range sample {
				if containsAny(strings.ToLower(value), urlValueMarkers) {
					return true
				}
			}
			return false
		},
		kind: table.KindImage,
	},
}

// InferKind classifies a column from its header name and a sample of raw
// values. Header keywords are the strongest signal of intent and are
// checked first; content heuristics only run when no header rule fires.
func InferKind(header string, sample []string) table.Kind {
	lowerHeader := strings.ToLower(strings.TrimSpace(header))

	for _, rule := range headerRules {
		if rule.match(lowerHeader, sample) {
			return rule.kind
		}
	}

	nonEmpty := make([]string, 0, len(sample))
	for _, value := range sample {
		if strings.TrimSpace(value) != "" {
			nonEmpty = append(nonEmpty, strings.TrimSpace(value))
		}
	}
	if len(nonEmpty) == 0 {
		return table.KindString
	}

	if kind, ok := contentImageKind(nonEmpty); ok {
		return kind
	}
	if allNumeric(nonEmpty) {
		return table.KindNumber
	}
	if allDates(nonEmpty) {
		return table.KindDate
	}
	return table.KindString
}

// contentImageKind applies the value-content image heuristic: any Drive
// link alongside at least one image-looking value wins outright, otherwise
// a fifth of the sample must look like images.
func contentImageKind(nonEmpty []string) (table.Kind, bool) {
	imageCount := 0
	hasDrive := false
	for _, value := range nonEmpty {
		if looksLikeImageValue(value) {
			imageCount++
		}
		if strings.Contains(strings.ToLower(value), driveDomain) {
			hasDrive = true
		}
	}
	if hasDrive && imageCount > 0 {
		return table.KindImage, true
	}
	if float64(imageCount)/float64(len(nonEmpty)) >= imageValueRatio {
		return table.KindImage, true
	}
	return "", false
}

// allNumeric reports whether every value parses as a finite number once
// thousands separators and currency symbols are stripped.
func allNumeric(values []string) bool {
	for _, value := range values {
		cleaned := stripNumericNoise(value)
		if cleaned == "" {
			return false
		}
		if _, err := strconv.ParseFloat(cleaned, 64); err != nil {
			return false
		}
	}
	return true
}

// dateLayouts are the formats the generic date check accepts. Spreadsheet
// exports in this domain use slash or dash separated day-first and
// ISO-style dates.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"01/02/2006",
	"2/1/2006",
	"1/2/2006",
	"02-01-2006",
	"01-02-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2/1/2006 15:04:05",
}

// allDates reports whether every value parses as a date, is longer than 4
// characters, and carries a slash or dash separator. The length and
// separator guards keep bare numbers like "2024" out of the Date kind.
func allDates(values []string) bool {
	for _, value := range values {
		if len(value) <= 4 {
			return false
		}
		if !strings.ContainsAny(value, "/-") {
			return false
		}
		if !parsesAsDate(value) {
			return false
		}
	}
	return true
}

func parsesAsDate(value string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

// InferColumns derives the fixed schema for a header row given the raw
// data rows, sampling at most sampleSize leading rows per column.
func InferColumns(headers []string, rows []table.RawRow) []table.Column {
	limit := len(rows)
	if limit > sampleSize {
		limit = sampleSize
	}

	columns := make([]table.Column, len(headers))
	for i, header := range headers {
		sample := make([]string, 0, limit)
		for _, row := range rows[:limit] {
			sample = append(sample, row[header])
		}
		columns[i] = table.Column{Name: header, Kind: InferKind(header, sample)}
	}
	return columns
}
