package gateway

import (
	"encoding/json"
	"math"
	"strconv"

	"godotmcp/internal/apperr"
)

// Args are the decoded arguments of one call, as produced by encoding/json.
type Args map[string]any

// String returns a string argument. A missing key yields "" unless required.
func (a Args) String(key string, required bool) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		if required {
			return "", apperr.New(apperr.MalformedInput, "missing required argument %q", key)
		}
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", apperr.New(apperr.MalformedInput, "argument %q must be a string", key)
	}
	if required && s == "" {
		return "", apperr.New(apperr.MalformedInput, "argument %q cannot be empty", key)
	}
	return s, nil
}

// Strings returns an optional list of strings.
func (a Args) Strings(key string) ([]string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, apperr.New(apperr.MalformedInput, "argument %q[%d] must be a string", key, i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, apperr.New(apperr.MalformedInput, "argument %q must be a list of strings", key)
	}
}

// Int returns an optional integer argument, or 0 when absent.
func (a Args) Int(key string) (int, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, apperr.New(apperr.MalformedInput, "argument %q must be an integer", key)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, apperr.Wrap(apperr.MalformedInput, err, "argument %q must be an integer", key)
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, apperr.Wrap(apperr.MalformedInput, err, "argument %q must be an integer", key)
		}
		return i, nil
	default:
		return 0, apperr.New(apperr.MalformedInput, "argument %q must be an integer", key)
	}
}

// Value returns a required argument of any JSON type.
func (a Args) Value(key string) (any, error) {
	v, ok := a[key]
	if !ok {
		return nil, apperr.New(apperr.MalformedInput, "missing required argument %q", key)
	}
	return v, nil
}
