package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"
)

// MaxIDLength bounds item identifiers accepted at the boundary.
const MaxIDLength = 256

// ValidateID validates an item identifier.
//
// IDs end up in SVG attributes, file names and JSON keys, so the rules are
// conservative:
//   - No empty IDs
//   - No control characters or null bytes
//   - Maximum length of MaxIDLength bytes
func ValidateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidID, "item id cannot be empty")
	}

	if len(id) > MaxIDLength {
		return New(ErrCodeInvalidID, "item id too long (max %d characters)", MaxIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "item id %q contains control characters", id)
		}
	}

	return nil
}

// ValidateHeat checks that a single heat value is finite and non-negative.
// The returned error is attributed to id.
func ValidateHeat(id string, heat float64) error {
	if math.IsNaN(heat) || math.IsInf(heat, 0) {
		return New(ErrCodeNonFiniteHeat, "heat %g is not finite", heat).WithItem(id)
	}
	if heat < 0 {
		return New(ErrCodeNegativeHeat, "heat %g is negative", heat).WithItem(id)
	}
	return nil
}

// ValidateContainer checks that a container has a finite origin and a finite,
// strictly positive size.
func ValidateContainer(x, y, width, height float64) error {
	for _, v := range []float64{x, y, width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidContainer, "container (%g, %g, %g, %g) is not finite", x, y, width, height)
		}
	}
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidContainer, "container size %gx%g must be positive", width, height)
	}
	return nil
}

var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor accepts an empty string (no override) or a #rgb / #rrggbb hex color.
func ValidateColor(color string) error {
	if color == "" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", color)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https). Empty is allowed.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL %q must use http or https scheme", rawURL)
	}

	return nil
}
