package namedargs

import (
	"reflect"
	"strings"
)

// ResolveStructKey resolves the parameter name a struct field binds to.
// Priority: namedargs:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if nt := sf.Tag.Get("namedargs"); nt != "" {
		if nt == "-" {
			return "-"
		}
		parts := strings.Split(nt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i > 0 {
			return jt[:i]
		} else if i < 0 {
			return jt
		}
	}
	return sf.Name
}
