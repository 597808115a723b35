// Package core provides the overtime tracker's domain types.
//
// This file contains the exact-decimal hour quantity and its parsing.
// Hours are stored as int64 hundredths so that sums over many entries
// stay exact; floating point is only used at the rendering edge.
package core

import (
	"strconv"
	"strings"
)

// Hours is a duration of worked hours in hundredths (2.5h == 250).
type Hours int64

// ParseHours converts a decimal string to hundredths of an hour.
//
// It accepts both dot (2.5) and comma (2,5) decimal separators and at most
// two fraction digits. Returns an error for invalid formats, negative or
// zero values, and over-precision input.
//
// Examples:
//
//	ParseHours("2.5")   -> 250, nil
//	ParseHours("2,25")  -> 225, nil
//	ParseHours("2.255") -> 0, ErrInvalidHours (three fraction digits)
//	ParseHours("0")     -> 0, ErrInvalidHours
func ParseHours(s string) (Hours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidHours
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed
		return 0, ErrInvalidHours
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidHours
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > 2 {
		return 0, ErrInvalidHours
	}
	// ASCII digits only; the hundredths decode below reads bytes.
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidHours
		}
	}
	for _, r := range fracPart {
		if r < '0' || r > '9' {
			return 0, ErrInvalidHours
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidHours
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidHours
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
		}
	}
	h := Hours(iv*100 + frac)
	if h <= 0 {
		return 0, ErrInvalidHours
	}
	return h, nil
}

// Validate reports whether the quantity is a recordable amount.
func (h Hours) Validate() error {
	if h <= 0 {
		return ErrInvalidHours
	}
	return nil
}

// Float returns the hour value as a float64 for chart data.
// Use Hours itself for arithmetic; this is display-only.
func (h Hours) Float() float64 {
	return float64(h) / 100.0
}

// Format renders the value as a plain decimal with trailing zeros
// stripped: 250 -> "2.5", 200 -> "2", 225 -> "2.25".
func (h Hours) Format() string {
	whole := int64(h) / 100
	frac := int64(h) % 100
	if frac < 0 {
		frac = -frac
	}
	switch {
	case frac == 0:
		return strconv.FormatInt(whole, 10)
	case frac%10 == 0:
		return strconv.FormatInt(whole, 10) + "." + strconv.FormatInt(frac/10, 10)
	default:
		out := strconv.FormatInt(whole, 10) + "."
		if frac < 10 {
			out += "0"
		}
		return out + strconv.FormatInt(frac, 10)
	}
}
