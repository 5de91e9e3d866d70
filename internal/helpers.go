package internal

import "strconv"

// ParamType constrains the typed parameter helpers to the kinds a URL
// component can carry. uint is included because entity and subject
// identifiers are unsigned.
type ParamType interface {
	~string | ~int | ~int64 | ~uint | ~float64 | ~bool
}

// ContextValue retrieves a typed request-scoped value. Returns the zero
// value when the key is absent or holds a different type.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns the named path parameter converted to T. Conversion
// failures yield the zero value; use Context.Param when the raw string
// or the failure itself matters.
func Param[T ParamType](c Context, name string) T {
	v, _ := parseAs[T](c.Param(name))
	return v
}

// Query returns the query parameter converted to T, or the zero value
// when absent or unparsable.
func Query[T ParamType](c Context, name string) T {
	v, _ := parseAs[T](c.Query(name))
	return v
}

// QueryDefault returns the query parameter converted to T, falling back
// to defaultValue when the parameter is empty or cannot be parsed.
func QueryDefault[T ParamType](c Context, name string, defaultValue T) T {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}
	v, ok := parseAs[T](raw)
	if !ok {
		return defaultValue
	}
	return v
}

// parseAs converts a raw URL component to the target type.
func parseAs[T ParamType](raw string) (T, bool) {
	var zero T
	switch any(zero).(type) {
	case string:
		return any(raw).(T), true
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case uint:
		v, err := strconv.ParseUint(raw, 10, strconv.IntSize)
		if err != nil {
			return zero, false
		}
		return any(uint(v)).(T), true
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		return any(v).(T), true
	}
	return zero, false
}
