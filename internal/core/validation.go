// internal/core/validation.go
package core

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Annany2002/collecta-backend/internal/domain"
)

// Value ranges for numeric fields.
const (
	MinImportance = 0
	MaxImportance = 10
	MinRating     = 0
	MaxRating     = 5
)

// Regular expression for identifiers used in query parameters (alphanumeric + underscore)
var nameValidationRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// Allowed image extensions (lowercase, no dot) mapped to their canonical form
var AllowedImageExtensions = map[string]string{
	"jpg":  "jpg",
	"jpeg": "jpg",
	"png":  "png",
	"webp": "webp",
}

// AllowedImageMIMETypes lists the sniffed content types accepted for uploads.
var AllowedImageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// IsValidIdentifier checks if a string is a valid identifier (e.g. a sort column name)
func IsValidIdentifier(name string) bool {
	return len(name) > 0 && len(name) <= 64 && nameValidationRegex.MatchString(name)
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar date.
func IsValidDate(s string) bool {
	_, err := time.Parse(domain.DateLayout, s)
	return err == nil
}

// NormalizeImageExtension takes a filename or bare extension and returns the canonical
// extension if it is allowed.
func NormalizeImageExtension(name string) (string, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		ext = strings.ToLower(strings.TrimPrefix(name, "."))
	}
	normalized, ok := AllowedImageExtensions[ext]
	return normalized, ok
}

// IsPast reports whether the calendar date has fully started before now, i.e. the date is
// today or earlier in now's location.
func IsPast(date string, now time.Time) bool {
	d, err := time.ParseInLocation(domain.DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	return !d.After(now)
}
