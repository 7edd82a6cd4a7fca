package ingest

import (
	"strings"

	"assetlens/domain/table"
)

// Shared keyword tables. Both the type inferencer and the downstream
// column-role detection read from these; keeping one table avoids the
// lists drifting apart between call sites.
var (
	// English header terms that mark a column as holding images.
	imageHeaderTerms = []string{"image", "photo", "picture", "img"}

	// Thai "ภาพ" means picture. It is also a substring of "สภาพ"
	// (condition), so the image rule must yield to the condition rule.
	imageTermTH     = "ภาพ"
	conditionTermTH = "สภาพ"

	// Header terms that mark a condition/status column in either language.
	conditionHeaderTerms = []string{conditionTermTH, "condition", "status"}

	// Header terms that suggest the column carries links.
	urlHeaderTerms = []string{"url", "link"}

	// Value markers that suggest a cell holds a web address.
	urlValueMarkers = []string{"http", "www", "drive.google"}

	// File extensions that identify a direct image link.
	imageExtensions = []string{".jpeg", ".jpg", ".gif", ".png", ".webp", ".bmp", ".svg"}

	// Hosting domains whose URLs are treated as images even without an
	// image file extension.
	imageHostDomains = []string{
		"drive.google.com",
		"googleusercontent.com",
		"imgur.com",
		"ibb.co",
		"photos.app.goo.gl",
	}

	driveDomain = "drive.google.com"

	// Currency symbols stripped during numeric normalization.
	currencySymbols = []string{"฿", "$"}
)

// imageValueRatio is the share of sampled non-empty values that must look
// like image URLs before a column is content-inferred as Image.
const imageValueRatio = 0.2

// Role identifies a column's function in the inventory sheet, derived from
// its header the same way the inferencer derives kinds.
type Role string

const (
	RoleCondition Role = "condition"
	RoleBuilding  Role = "building"
	RoleRoom      Role = "room"
)

var roleHeaderTerms = map[Role][]string{
	RoleCondition: conditionHeaderTerms,
	RoleBuilding:  {"อาคาร", "building"},
	RoleRoom:      {"ห้อง", "room"},
}

// FindColumn returns the first column whose header matches the role's
// keyword list, preserving column order.
func FindColumn(columns []table.Column, role Role) (table.Column, bool) {
	terms, ok := roleHeaderTerms[role]
	if !ok {
		return table.Column{}, false
	}
	for _, col := range columns {
		if containsAny(strings.ToLower(col.Name), terms) {
			return col, true
		}
	}
	return table.Column{}, false
}

// containsAny reports whether s contains any of the given substrings.
func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// looksLikeImageValue reports whether a single cell value looks like a
// direct image URL: web prefix plus either an image extension or a known
// image hosting domain.
func looksLikeImageValue(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if !strings.HasPrefix(v, "http") && !strings.HasPrefix(v, "www") {
		return false
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(v, ext) {
			return true
		}
	}
	return containsAny(v, imageHostDomains)
}

// stripNumericNoise removes thousands separators and currency symbols so a
// formatted figure like "1,234.50 ฿" can be parsed as a number.
func stripNumericNoise(value string) string {
	cleaned := strings.ReplaceAll(value, ",", "")
	for _, sym := range currencySymbols {
		cleaned = strings.ReplaceAll(cleaned, sym, "")
	}
	return strings.TrimSpace(cleaned)
}
