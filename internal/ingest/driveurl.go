package ingest

import (
	"fmt"
	"regexp"
	"strings"
)

// Google Drive share links embed the file ID either as a /d/<id> path
// segment or an id= query parameter. Real Drive IDs are 25+ word
// characters, which keeps short path segments from matching.
var (
	drivePathIDPattern  = regexp.MustCompile(`/d/(\w{25,})`)
	driveQueryIDPattern = regexp.MustCompile(`[?&]id=(\w{25,})`)
	looseIDPattern      = regexp.MustCompile(`\w{25,}`)
)

const driveThumbnailTemplate = "https://drive.google.com/thumbnail?id=%s&sz=w1000"

// TransformImageURL rewrites a Google Drive share link into a directly
// embeddable thumbnail URL. Non-Drive URLs pass through trimmed; blank
// input yields an empty string. The function is pure and total — when no
// identifier can be extracted the trimmed input is returned unchanged.
func TransformImageURL(raw string) string {
	url := strings.TrimSpace(raw)
	if url == "" {
		return ""
	}
	if !strings.Contains(url, driveDomain) {
		return url
	}

	if m := drivePathIDPattern.FindStringSubmatch(url); m != nil {
		return fmt.Sprintf(driveThumbnailTemplate, m[1])
	}
	if m := driveQueryIDPattern.FindStringSubmatch(url); m != nil {
		return fmt.Sprintf(driveThumbnailTemplate, m[1])
	}
	// Loose fallback: any long word-character run is taken as the ID.
	if id := looseIDPattern.FindString(url); id != "" {
		return fmt.Sprintf(driveThumbnailTemplate, id)
	}
	return url
}
