package namedargs

import (
	"reflect"

	"github.com/reoring/namedargs/i18n"
)

// Marker is the caller-facing handle for one parameter of value type T.
// Markers are stateless and reusable; m.Is(v) stands for `m = v` at a call
// site.
type Marker[T any] struct {
	k *Kind
}

// Req declares a parameter that must be supplied.
func Req[T any](name string) Marker[T] {
	return mustMarker[T](NewKind(name, Required, reflect.TypeFor[T](), nil))
}

// Opt declares a parameter that may be omitted; it binds to a *T that is
// nil when omitted.
func Opt[T any](name string) Marker[T] {
	return mustMarker[T](NewKind(name, Optional, reflect.TypeFor[T](), nil))
}

// Def declares a parameter that binds to def when omitted.
func Def[T any](name string, def T) Marker[T] {
	return mustMarker[T](NewKind(name, Defaulted, reflect.TypeFor[T](), any(def)))
}

func mustMarker[T any](k *Kind, err error) Marker[T] {
	if err != nil {
		panic(err)
	}
	return Marker[T]{k: k}
}

// MarkerOf returns a typed marker for a kind created at run time. T must be
// exactly the kind's declared value type.
func MarkerOf[T any](p Param) (Marker[T], error) {
	k := p.Kind()
	if k == nil {
		return Marker[T]{}, singleIssue(CodeInvalidSchema, "/", i18n.T(CodeInvalidSchema, nil))
	}
	if want := reflect.TypeFor[T](); k.typ != want {
		return Marker[T]{}, Issues{Root().Field(k.name).Issue(CodeInvalidType, i18n.T(CodeInvalidType, nil), "expected", k.typ.String(), "got", want.String())}
	}
	return Marker[T]{k: k}, nil
}

// Is supplies v for this parameter.
func (m Marker[T]) Is(v T) Arg { return Arg{kind: m.k, value: any(v)} }

// Kind implements Param.
func (m Marker[T]) Kind() *Kind { return m.k }

// Name returns the parameter name.
func (m Marker[T]) Name() string {
	if m.k == nil {
		return ""
	}
	return m.k.name
}
