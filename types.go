package namedargs

import (
	"reflect"

	"github.com/reoring/namedargs/i18n"
)

// Requiredness classifies how a parameter may be omitted.
type Requiredness uint8

const (
	Required  Requiredness = iota // Must be supplied.
	Optional                      // May be omitted; binds to an explicit absent value.
	Defaulted                     // May be omitted; binds to the declared default.
)

func (r Requiredness) String() string {
	switch r {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case Defaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}

// Kind describes one declared parameter. The pointer is the parameter's
// identity: two kinds with equal names are still different parameters.
// A Kind is immutable once created and safe to share across goroutines.
type Kind struct {
	name string
	req  Requiredness
	typ  reflect.Type
	def  any
}

// Param is anything that names a declared parameter: a *Kind or a Marker.
type Param interface {
	Kind() *Kind
}

// NewKind creates a parameter kind for a value type known only at run time.
// def must be nil unless req is Defaulted, in which case it must be assignable
// to typ.
func NewKind(name string, req Requiredness, typ reflect.Type, def any) (*Kind, error) {
	p := Root().Field(name)
	var iss Issues
	if name == "" {
		iss = AppendIssues(iss, Issue{Path: "/", Code: CodeInvalidSchema, Message: i18n.T(CodeInvalidSchema, nil), Hint: "parameter name must not be empty"})
	}
	if typ == nil {
		iss = AppendIssues(iss, Issue{Path: p.Pointer(), Code: CodeInvalidSchema, Message: i18n.T(CodeInvalidSchema, nil), Hint: "parameter value type must not be nil"})
	}
	switch req {
	case Required, Optional:
		if def != nil {
			iss = AppendIssues(iss, Issue{Path: p.Pointer(), Code: CodeInvalidSchema, Message: i18n.T(CodeInvalidSchema, nil), Hint: req.String() + " parameter must not carry a default"})
		}
	case Defaulted:
		if typ != nil && !assignableValue(def, typ) {
			iss = AppendIssues(iss, Issue{Path: p.Pointer(), Code: CodeInvalidType, Message: i18n.T(CodeInvalidType, nil), Hint: "default is not assignable to " + typ.String()})
		}
	default:
		iss = AppendIssues(iss, Issue{Path: p.Pointer(), Code: CodeInvalidSchema, Message: i18n.T(CodeInvalidSchema, nil), Hint: "unknown requiredness"})
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return &Kind{name: name, req: req, typ: typ, def: cloneValue(def)}, nil
}

// Kind implements Param.
func (k *Kind) Kind() *Kind { return k }

func (k *Kind) Name() string               { return k.name }
func (k *Kind) Requiredness() Requiredness { return k.req }

// Type is the declared value type.
func (k *Kind) Type() reflect.Type { return k.typ }

// BoundType is the type of the bound value: T for Required and Defaulted
// kinds, *T for Optional kinds (nil meaning absent).
func (k *Kind) BoundType() reflect.Type {
	if k.req == Optional {
		return reflect.PointerTo(k.typ)
	}
	return k.typ
}

// Default returns a copy of the declared default; ok is false unless the kind
// is Defaulted.
func (k *Kind) Default() (v any, ok bool) {
	if k.req != Defaulted {
		return nil, false
	}
	return cloneValue(k.def), true
}

// Arg pairs the kind with a dynamically typed value. No conversion is
// attempted: the value's type must be assignable to the declared type.
func (k *Kind) Arg(v any) (Arg, error) {
	if !assignableValue(v, k.typ) {
		return Arg{}, Issues{Root().Field(k.name).Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil), "param", k.name, "expected", k.typ.String())}
	}
	return Arg{kind: k, value: v}, nil
}

func (k *Kind) String() string {
	if k == nil {
		return "<nil>"
	}
	return k.name + ":" + k.req.String() + "<" + k.typ.String() + ">"
}

// bound converts a supplied value to its bound representation.
func (k *Kind) bound(v any) any {
	if k.req != Optional {
		return v
	}
	p := reflect.New(k.typ)
	if v != nil {
		p.Elem().Set(reflect.ValueOf(v))
	}
	return p.Interface()
}

// cloneValue copies the top level of slices, maps and pointers so a bound
// default never aliases the kind's own value.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		c := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(c, rv)
		return c.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		c := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		for it := rv.MapRange(); it.Next(); {
			c.SetMapIndex(it.Key(), it.Value())
		}
		return c.Interface()
	case reflect.Pointer:
		if rv.IsNil() {
			return v
		}
		c := reflect.New(rv.Type().Elem())
		c.Elem().Set(rv.Elem())
		return c.Interface()
	default:
		return v
	}
}

// absent is the typed nil pointer used for an omitted Optional kind.
func (k *Kind) absent() any {
	return reflect.Zero(reflect.PointerTo(k.typ)).Interface()
}

func assignableValue(v any, typ reflect.Type) bool {
	if v == nil {
		switch typ.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return true
		default:
			return false
		}
	}
	return reflect.TypeOf(v).AssignableTo(typ)
}

// Arg is one supplied, labeled value (the result of `marker = value`). The
// zero Arg names no parameter and always classifies as unknown.
type Arg struct {
	kind  *Kind
	value any
}

func (a Arg) Kind() *Kind { return a.kind }
func (a Arg) Value() any  { return a.value }

// Name returns the parameter name, or "" for the zero Arg.
func (a Arg) Name() string {
	if a.kind == nil {
		return ""
	}
	return a.kind.name
}
