package schema

// value.go implements the tagged value type carried by import records.
//
// Import files arrive with loosely typed cells: CSV is all text, JSON mixes
// strings, numbers, booleans and nulls. Values are decoded toward their
// declared field type at parse time; a cell that cannot be coerced stays as
// its original string so validation can report exactly what was wrong.
//
// The coercion helpers handle the messy reality of user-provided data:
//   - multiple date formats (US, EU, ISO) including 2-digit years
//   - currency symbols, thousands separators and accounting negatives
//   - the boolean tokens true/false/1/0

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// Value is one loosely typed cell of an import record.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string // original textual form, kept for display and search
	num  float64
	b    bool
	t    time.Time
}

// Null returns the null Value.
func Null() Value { return Value{} }

// String wraps a plain string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f, str: strconv.FormatFloat(f, 'f', -1, 64)}
}

// Bool wraps a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool, b: b, str: "false"}
	if b {
		v.str = "true"
	}
	return v
}

// Date wraps a calendar date.
func Date(t time.Time) Value {
	return Value{kind: KindDate, t: t, str: t.Format("2006-01-02")}
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// IsEmpty reports whether the value is null or an empty string.
// Required-field checks treat both the same way.
func (v Value) IsEmpty() bool {
	return v.kind == KindNull || (v.kind == KindString && v.str == "")
}

// String returns the display form of the value.
func (v Value) String() string {
	if v.kind == KindNull {
		return ""
	}
	return v.str
}

// AsNumber returns the numeric interpretation of the value, if any.
func (v Value) AsNumber() (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.num, true
	case KindString:
		return ParseNumber(v.str)
	default:
		return 0, false
	}
}

// AsBool returns the boolean interpretation of the value, if any.
func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindString:
		return ParseBool(v.str)
	default:
		return false, false
	}
}

// AsDate returns the calendar-date interpretation of the value, if any.
func (v Value) AsDate() (time.Time, bool) {
	switch v.kind {
	case KindDate:
		return v.t, true
	case KindString:
		return ParseDate(v.str)
	default:
		return time.Time{}, false
	}
}

// MarshalJSON renders the value in its native JSON type: null, string,
// number, boolean, or an ISO date string.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		return json.Marshal(v.num)
	case KindBool:
		return json.Marshal(v.b)
	case KindDate:
		return json.Marshal(v.t.Format("2006-01-02"))
	default:
		return json.Marshal(v.str)
	}
}

// UnmarshalJSON decodes a native JSON value: null, string, number or
// boolean. Dates arrive as strings; AsDate re-parses them on demand.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch x := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = String(x)
	case float64:
		*v = Number(x)
	case bool:
		*v = Bool(x)
	default:
		// Arrays and objects keep their raw JSON text.
		*v = String(string(data))
	}
	return nil
}

// Coerce decodes a raw text cell toward the declared field type.
// Unparseable cells are kept as strings for validation to flag.
func Coerce(raw string, ft FieldType) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Null()
	}

	switch ft {
	case FieldNumber:
		if f, ok := ParseNumber(raw); ok {
			v := Number(f)
			v.str = raw
			return v
		}
	case FieldBool:
		if b, ok := ParseBool(raw); ok {
			v := Bool(b)
			v.str = raw
			return v
		}
	case FieldDate:
		if t, ok := ParseDate(raw); ok {
			v := Date(t)
			v.str = raw
			return v
		}
	}
	return String(raw)
}

// numberRegex validates a numeric string after cleanup.
// Matches integers, decimals, and scientific notation.
var numberRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber parses a numeric string, tolerating currency symbols,
// thousands separators, and accounting format (parentheses for negative).
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	if !numberRegex.MatchString(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseBool accepts the literal tokens true/false/1/0, case-insensitively.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1":
		return true, true
	case "false", "0":
		return false, true
	default:
		return false, false
	}
}

// TwoDigitYearPivot defines how 2-digit years are interpreted. Years that
// would land more than this many years in the future are assumed to be in
// the previous century.
var TwoDigitYearPivot = 20

// Date layouts split by year format for proper 2-digit year handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"2006-01-02", "2006/01/02", "2006.01.02",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
		time.RFC3339,
	}
)

// ParseDate parses a calendar date in any of the supported layouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	pivotYear := time.Now().Year() + TwoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return t, true
		}
	}

	return time.Time{}, false
}
