package schema

// validators.go provides the building blocks for per-field custom rules.
// Rule messages are in Spanish because they are shown verbatim to the
// administrators correcting an import file.

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// validEmail checks basic email shape (user@host.tld).
func validEmail(v Value) string {
	if !emailRegex.MatchString(v.String()) {
		return "debe ser un email válido"
	}
	return ""
}

// minLength requires at least n characters.
func minLength(n int) func(Value) string {
	return func(v Value) string {
		if len([]rune(v.String())) < n {
			return fmt.Sprintf("debe tener al menos %d caracteres", n)
		}
		return ""
	}
}

// oneOf restricts a value to a closed set, case-insensitively.
func oneOf(allowed ...string) func(Value) string {
	return func(v Value) string {
		s := v.String()
		for _, a := range allowed {
			if strings.EqualFold(s, a) {
				return ""
			}
		}
		return "debe ser uno de: " + strings.Join(allowed, ", ")
	}
}

// numberBetween requires a numeric value within [min, max].
// Type mismatch is reported separately by the validation engine, so a
// non-numeric value passes here without a duplicate message.
func numberBetween(min, max float64) func(Value) string {
	return func(v Value) string {
		f, ok := v.AsNumber()
		if !ok {
			return ""
		}
		if f < min || f > max {
			return fmt.Sprintf("debe estar entre %g y %g", min, max)
		}
		return ""
	}
}

// hexColor requires a #RRGGBB color code.
func hexColor(v Value) string {
	if !hexColorRegex.MatchString(v.String()) {
		return "debe ser un color hexadecimal (#RRGGBB)"
	}
	return ""
}

// listOf requires a comma-separated list drawn from a closed set.
func listOf(allowed ...string) func(Value) string {
	set := make(map[string]struct{}, len(allowed))
	for _, a := range allowed {
		set[strings.ToLower(a)] = struct{}{}
	}
	return func(v Value) string {
		for _, item := range strings.Split(v.String(), ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			if _, ok := set[strings.ToLower(item)]; !ok {
				return fmt.Sprintf("%q no es un valor permitido (permitidos: %s)", item, strings.Join(allowed, ", "))
			}
		}
		return ""
	}
}
