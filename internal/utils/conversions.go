package utils

import (
	"strconv"
)

func ToStringSlice(slice []any) []string {
	stringSlice := make([]string, 0)
	for _, v := range slice {
		if s, ok := v.(string); ok {
			stringSlice = append(stringSlice, s)
		}
	}
	return stringSlice
}

// ClaimString renders a decoded JSON scalar as a string. JSON numbers arrive as float64
// and are printed without a fractional part when they are integral.
func ClaimString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// ClaimBool is true only for the JSON boolean true. Strings and numbers are false.
func ClaimBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// Value dereferences v, returning the zero value for nil.
func Value[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}
