package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PaperSize is a page size in inches.
type PaperSize struct {
	Width  float64
	Height float64
}

var paperSizes = map[string]PaperSize{
	"letter":  {Width: 8.5, Height: 11},
	"legal":   {Width: 8.5, Height: 14},
	"tabloid": {Width: 11, Height: 17},
	"ledger":  {Width: 17, Height: 11},
	"a0":      {Width: 33.1, Height: 46.8},
	"a1":      {Width: 23.4, Height: 33.1},
	"a2":      {Width: 16.54, Height: 23.4},
	"a3":      {Width: 11.7, Height: 16.54},
	"a4":      {Width: 8.27, Height: 11.7},
	"a5":      {Width: 5.83, Height: 8.27},
	"a6":      {Width: 4.13, Height: 5.83},
}

// LookupPaperSize returns the size of a named paper format, case-insensitively.
func LookupPaperSize(format string) (PaperSize, bool) {
	size, ok := paperSizes[strings.ToLower(strings.TrimSpace(format))]
	return size, ok
}

// PaperFormats returns the accepted format names, sorted.
func PaperFormats() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var unitsPerInch = map[string]float64{
	"px": 96,
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
}

// ParseLength converts a CSS length ("1cm", "10mm", "0.5in", "20px") to
// inches. A bare number is read as pixels.
func ParseLength(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty length", ErrInvalidValue)
	}

	unit := "px"
	number := s
	for u := range unitsPerInch {
		if strings.HasSuffix(s, u) {
			unit = u
			number = strings.TrimSpace(strings.TrimSuffix(s, u))
			break
		}
	}

	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: length %q", ErrInvalidValue, s)
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: length %q is negative", ErrInvalidValue, s)
	}
	return v / unitsPerInch[unit], nil
}
