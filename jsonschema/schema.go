// Package jsonschema projects a parameter schema into JSON Schema. The
// projection describes the labeled argument object of one call: properties in
// declaration order, required parameters listed, declared defaults exported,
// and no additional properties (unknown arguments are rejected).
package jsonschema

import (
	"reflect"

	js "github.com/invopop/jsonschema"

	namedargs "github.com/reoring/namedargs"
)

// Options tunes the projection. When several are passed the last one wins.
type Options struct {
	Title        string
	Description  string
	Descriptions map[string]string // per-parameter descriptions keyed by name
	// WithVersion sets the $schema keyword.
	WithVersion bool
}

// FromSchema returns the JSON Schema of the argument object accepted by s.
func FromSchema(s *namedargs.Schema, opts ...Options) *js.Schema {
	var opt Options
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	out := &js.Schema{
		Type:                 "object",
		Title:                opt.Title,
		Description:          opt.Description,
		Properties:           js.NewProperties(),
		AdditionalProperties: js.FalseSchema,
	}
	if opt.WithVersion {
		out.Version = js.Version
	}
	for _, k := range s.Kinds() {
		p := forType(k.Type())
		p.Description = opt.Descriptions[k.Name()]
		if def, ok := k.Default(); ok {
			p.Default = def
		}
		out.Properties.Set(k.Name(), p)
		if k.Requiredness() == namedargs.Required {
			out.Required = append(out.Required, k.Name())
		}
	}
	return out
}

func forType(t reflect.Type) *js.Schema {
	switch t.Kind() {
	case reflect.String:
		return &js.Schema{Type: "string"}
	case reflect.Bool:
		return &js.Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &js.Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &js.Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &js.Schema{Type: "array", Items: forType(t.Elem())}
	case reflect.Map, reflect.Struct:
		return &js.Schema{Type: "object"}
	case reflect.Pointer:
		return forType(t.Elem())
	default:
		// interfaces, funcs, channels: any value
		return &js.Schema{}
	}
}
