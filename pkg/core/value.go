package core

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindNumber
	KindBool
	KindDate
	KindArray
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// isoDatePrefix matches values that start like an ISO calendar date.
var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// HasDatePrefix reports whether s starts with a YYYY-MM-DD date.
func HasDatePrefix(s string) bool {
	return isoDatePrefix.MatchString(s)
}

// Value is a front-matter or body-derived value. The variant is decided once,
// when the value is built, and never probed again afterwards.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
	Bool bool
	// Date holds the parsed time for KindDate. It is the zero time when Str
	// carries a date prefix that does not denote a real calendar day.
	Date time.Time
	List []string
}

// String builds a string value.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Number builds a numeric value.
func Number(n float64) Value { return Value{Kind: KindNumber, Num: n} }

// Bool builds a boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Array builds an array-of-string value. A nil slice becomes an empty array.
func Array(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{Kind: KindArray, List: items}
}

// Date builds a date value from its raw text. The raw text is kept verbatim
// so the value can be echoed back exactly; the time is parsed best-effort.
func Date(raw string) Value {
	return Value{Kind: KindDate, Str: raw, Date: parseDate(raw)}
}

func parseDate(raw string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	if len(raw) >= 10 {
		if t, err := time.Parse(time.DateOnly, raw[:10]); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Interface returns the value as a plain Go value.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNumber:
		if math.IsInf(v.Num, 0) || math.IsNaN(v.Num) {
			return v.Text()
		}
		if v.Num == float64(int64(v.Num)) {
			return int64(v.Num)
		}
		return v.Num
	case KindBool:
		return v.Bool
	case KindArray:
		out := make([]string, len(v.List))
		copy(out, v.List)
		return out
	default:
		return v.Str
	}
}

// Text renders the value as a single line of text.
func (v Value) Text() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindArray:
		return strings.Join(v.List, ", ")
	default:
		return v.Str
	}
}

// Equal reports whether two values hold the same variant and content.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindNumber:
		return v.Num == o.Num
	case KindBool:
		return v.Bool == o.Bool
	case KindArray:
		if len(v.List) != len(o.List) {
			return false
		}
		for i := range v.List {
			if v.List[i] != o.List[i] {
				return false
			}
		}
		return true
	default:
		return v.Str == o.Str
	}
}

// MarshalJSON encodes the value as its native JSON scalar or array.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.Interface(), nil
}
