package namedargs

import (
	"fmt"
	"reflect"

	"github.com/reoring/namedargs/i18n"
)

// Bound is the resolved, positional value sequence for one call: one Value
// per declared parameter, in schema order.
type Bound struct {
	schema *Schema
	values []Value
}

// Bind resolves args against s. Calling Bind with an argument set that does
// not validate is a programming error: it panics with a *PreconditionError.
func Bind(s *Schema, args ...Arg) Bound {
	b, err := TryBind(s, args...)
	if err != nil {
		panic(err)
	}
	return b
}

// TryBind is like Bind but returns the *PreconditionError instead of
// panicking.
func TryBind(s *Schema, args ...Arg) (Bound, error) {
	if r := Validate(s, args...); !r.Valid() {
		return Bound{}, &PreconditionError{Report: r}
	}
	return bindValidated(s, args), nil
}

// bindValidated assumes Validate(s, args) is valid.
func bindValidated(s *Schema, args []Arg) Bound {
	vals := make([]Value, len(s.kinds))
	for _, a := range args {
		i := s.index[a.kind]
		vals[i] = Value{Kind: a.kind, V: a.kind.bound(a.value), Presence: PresenceSupplied}
	}
	for i, k := range s.kinds {
		if vals[i].Kind != nil {
			continue
		}
		switch k.req {
		case Defaulted:
			vals[i] = Value{Kind: k, V: cloneValue(k.def), Presence: PresenceDefaultApplied}
		case Optional:
			vals[i] = Value{Kind: k, V: k.absent()}
		}
	}
	return Bound{schema: s, values: vals}
}

func (b Bound) Schema() *Schema { return b.schema }
func (b Bound) Len() int        { return len(b.values) }

// At returns the i-th value in declaration order.
func (b Bound) At(i int) Value { return b.values[i] }

// Values returns the bound representations in declaration order.
func (b Bound) Values() []any {
	out := make([]any, len(b.values))
	for i, v := range b.values {
		out[i] = v.V
	}
	return out
}

// Value returns the slot bound for p.
func (b Bound) Value(p Param) (Value, bool) {
	if b.schema == nil {
		return Value{}, false
	}
	i, ok := b.schema.Index(p)
	if !ok {
		return Value{}, false
	}
	return b.values[i], true
}

// Supplied reports whether p was given explicitly by the caller.
func (b Bound) Supplied(p Param) bool {
	v, ok := b.Value(p)
	return ok && v.Supplied()
}

// DefaultApplied reports whether p was filled from its declared default.
func (b Bound) DefaultApplied(p Param) bool {
	v, ok := b.Value(p)
	return ok && v.DefaultApplied()
}

// Get returns the value bound for m. An absent Optional yields the zero T.
// It panics if m is not a parameter of the bound schema.
func Get[T any](b Bound, m Marker[T]) T {
	v, _ := Lookup(b, m)
	return v
}

// Lookup returns the value bound for m and whether one is present (supplied
// or defaulted). It panics if m is not a parameter of the bound schema.
func Lookup[T any](b Bound, m Marker[T]) (T, bool) {
	var zero T
	v, ok := b.Value(m)
	if !ok {
		panic(fmt.Sprintf("namedargs.Lookup: %q is not a parameter of the bound schema", m.Name()))
	}
	if m.k.req == Optional {
		p, _ := v.V.(*T)
		if p == nil {
			return zero, false
		}
		return *p, true
	}
	t, _ := v.V.(T)
	return t, true
}

// BindStruct copies the bound values into a new S. Fields are matched by key:
// namedargs:"name=..." tag > json tag name > field name. Optional parameters
// need a *T field. Parameters without a matching field are skipped.
func BindStruct[S any](b Bound) (S, error) {
	var zero S
	rt := reflect.TypeFor[S]()
	if rt.Kind() != reflect.Struct {
		return zero, singleIssue(CodeInvalidType, "/", "BindStruct[S] requires struct S")
	}
	idxByName := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		idxByName[name] = i
	}
	rv := reflect.New(rt).Elem()
	var iss Issues
	for _, v := range b.values {
		idx, ok := idxByName[v.Kind.name]
		if !ok {
			continue
		}
		fv := rv.Field(idx)
		if !v.Kind.BoundType().AssignableTo(fv.Type()) {
			iss = AppendIssues(iss, Root().Field(v.Kind.name).Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil), "expected", v.Kind.BoundType().String(), "field", rt.Field(idx).Name))
			continue
		}
		if v.V == nil {
			continue
		}
		fv.Set(reflect.ValueOf(v.V))
	}
	if len(iss) > 0 {
		return zero, iss
	}
	return rv.Interface().(S), nil
}
