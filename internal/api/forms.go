package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"campusfound/internal/imaging"
)

// maxUploadSize limits multipart submissions, photo included.
const maxUploadSize = 10 << 20

// itemSubmission holds the descriptive fields shared by lost reports and
// found records.
type itemSubmission struct {
	Name        string
	Category    string
	Description string
	Location    string
	OccurredAt  time.Time
}

// parseItemSubmission extracts and validates the required descriptive fields
// from a multipart form. dateField names the timestamp field (lost_at or
// found_at). All fields are trimmed and must be non-empty.
func parseItemSubmission(r *http.Request, dateField string) (*itemSubmission, error) {
	s := &itemSubmission{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Category:    strings.TrimSpace(r.FormValue("category")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Location:    strings.TrimSpace(r.FormValue("location")),
	}

	if s.Name == "" || s.Category == "" || s.Description == "" || s.Location == "" {
		return nil, fmt.Errorf("name, category, description, and location required")
	}

	raw := strings.TrimSpace(r.FormValue(dateField))
	if raw == "" {
		return nil, fmt.Errorf("%s required", dateField)
	}
	occurred, err := parseDateTime(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %v", dateField, err)
	}
	s.OccurredAt = occurred

	return s, nil
}

// parseDateTime accepts RFC 3339 or the HTML datetime-local format.
func parseDateTime(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02T15:04", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected RFC 3339 or YYYY-MM-DDTHH:MM")
	}
	return t, nil
}

// formPhoto reads and processes an uploaded photo from the named multipart
// field. Returns nil data when the field is absent and required is false.
func formPhoto(r *http.Request, field string, required bool) ([]byte, string, error) {
	file, _, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		if required {
			return nil, "", fmt.Errorf("%s photo required", field)
		}
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %v", field, err)
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		return nil, "", err
	}
	return result.Data, result.MIME, nil
}
