package decl

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

var typesByName = map[string]reflect.Type{
	"string":   reflect.TypeFor[string](),
	"bool":     reflect.TypeFor[bool](),
	"int":      reflect.TypeFor[int](),
	"int64":    reflect.TypeFor[int64](),
	"uint":     reflect.TypeFor[uint](),
	"float64":  reflect.TypeFor[float64](),
	"duration": reflect.TypeFor[time.Duration](),
	"[]string": reflect.TypeFor[[]string](),
}

// LookupType maps a declaration type name to its Go type.
func LookupType(name string) (reflect.Type, bool) {
	t, ok := typesByName[name]
	return t, ok
}

// TypeNames lists the supported declaration type names, sorted.
func TypeNames() []string {
	out := make([]string, 0, len(typesByName))
	for k := range typesByName {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GoType returns the Go spelling of a declaration type name ("duration" is
// time.Duration).
func GoType(name string) string {
	if name == "duration" {
		return "time.Duration"
	}
	return name
}

// convertDefault turns a decoded declaration literal into a value of the
// declared type. YAML yields int/float64/string/bool/[]any; JSON yields
// json.Number for numbers.
func convertDefault(v any, typeName string) (any, error) {
	switch typeName {
	case "string":
		if s, ok := v.(string); ok {
			return s, nil
		}
	case "bool":
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case "int":
		n, err := toInt64(v)
		if err != nil {
			return nil, err
		}
		if n < math.MinInt || n > math.MaxInt {
			return nil, fmt.Errorf("%d overflows int", n)
		}
		return int(n), nil
	case "int64":
		return toInt64(v)
	case "uint":
		n, err := toUint64(v)
		if err != nil {
			return nil, err
		}
		if n > math.MaxUint {
			return nil, fmt.Errorf("%d overflows uint", n)
		}
		return uint(n), nil
	case "float64":
		switch t := v.(type) {
		case float64:
			return t, nil
		case int:
			return float64(t), nil
		case json.Number:
			return t.Float64()
		}
	case "duration":
		if s, ok := v.(string); ok {
			return time.ParseDuration(s)
		}
	case "[]string":
		if items, ok := v.([]any); ok {
			out := make([]string, 0, len(items))
			for i, it := range items {
				s, ok := it.(string)
				if !ok {
					return nil, fmt.Errorf("item %d: expected string, got %T", i, it)
				}
				out = append(out, s)
			}
			return out, nil
		}
	}
	return nil, fmt.Errorf("cannot use %T literal as %s", v, typeName)
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case uint64:
		if t > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", t)
		}
		return int64(t), nil
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		if t < math.MinInt64 || t >= math.MaxInt64 {
			return 0, fmt.Errorf("%v overflows int64", t)
		}
		return int64(t), nil
	case json.Number:
		return t.Int64()
	}
	return 0, fmt.Errorf("cannot use %T literal as integer", v)
}

func toUint64(v any) (uint64, error) {
	switch t := v.(type) {
	case uint64:
		return t, nil
	case json.Number:
		return strconv.ParseUint(t.String(), 10, 64)
	case float64:
		if t != math.Trunc(t) {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		if t < 0 || t >= math.MaxUint64 {
			return 0, fmt.Errorf("%v overflows uint64", t)
		}
		return uint64(t), nil
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return uint64(n), nil
}
