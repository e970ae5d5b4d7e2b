package textutil

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseInt converts a JSON value to an int. Numbers truncate toward zero,
// booleans map to 1/0 and strings must hold an integer literal.
func ParseInt(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		if n, err := strconv.Atoi(v.Raw); err == nil {
			return n, true
		}

		if math.IsNaN(v.Num) || math.Abs(v.Num) >= math.MaxInt64 {
			return 0, false
		}

		return int(v.Num), true
	case gjson.True:
		return 1, true
	case gjson.False:
		return 0, true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		if err != nil {
			return 0, false
		}

		return n, true
	default:
		return 0, false
	}
}

// ParseFloat converts a JSON value to a float64 using the same rules as ParseInt,
// except that strings may hold any float literal.
func ParseFloat(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.True:
		return 1, true
	case gjson.False:
		return 0, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}

// SafeInt returns the integer value of v, or def when v is missing or not convertible.
func SafeInt(v gjson.Result, def int) int {
	if n, ok := ParseInt(v); ok {
		return n
	}

	return def
}

// SafeFloat returns the float value of v, or def when v is missing or not convertible.
func SafeFloat(v gjson.Result, def float64) float64 {
	if f, ok := ParseFloat(v); ok {
		return f
	}

	return def
}

// OptionalInt returns a pointer to the integer value of v, or nil when it is
// missing or not convertible.
func OptionalInt(v gjson.Result) *int {
	n, ok := ParseInt(v)
	if !ok {
		return nil
	}

	return &n
}

// Text returns the string form of a scalar JSON value; objects, arrays and
// null yield "".
func Text(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw
	default:
		return ""
	}
}

// Truthy reports whether a JSON value would count as set: true, non-zero
// numbers, non-empty strings and non-empty containers.
func Truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		empty := true

		v.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})

		return !empty
	default:
		return false
	}
}
