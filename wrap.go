package namedargs

import (
	"context"
	"reflect"

	"github.com/reoring/namedargs/i18n"
)

var (
	_ctxType   = reflect.TypeFor[context.Context]()
	_errorType = reflect.TypeFor[error]()
)

// Wrap adapts an ordinary function to a Func. fn takes the schema's bound
// types in declaration order (T, or *T for Optional parameters), optionally
// preceded by a context.Context, and returns nothing, R, error, or (R, error).
// The signature is checked here, before fn can ever be called.
func Wrap[R any](name string, s *Schema, fn any, opts ...FuncOpt) (*Func[R], error) {
	if s == nil {
		return nil, singleIssue(CodeInvalidSchema, "/", i18n.T(CodeInvalidSchema, nil))
	}
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, Issues{Root().Issue(CodeSignatureMismatch, i18n.T(CodeSignatureMismatch, nil), "func", name)}
	}
	ft := fv.Type()
	shape, iss := checkSignature[R](ft, s, reflect.TypeFor[R]())
	if len(iss) > 0 {
		return nil, iss
	}
	impl := func(ctx context.Context, b Bound) (R, error) {
		in := make([]reflect.Value, 0, ft.NumIn())
		if shape.withCtx {
			in = append(in, reflect.ValueOf(&ctx).Elem())
		}
		for i, v := range b.values {
			pt := ft.In(i + shape.offset())
			if v.V == nil {
				in = append(in, reflect.Zero(pt))
				continue
			}
			in = append(in, reflect.ValueOf(v.V))
		}
		return shape.unpack(fv.Call(in))
	}
	return Define(name, s, impl, opts...), nil
}

// MustWrap is like Wrap but panics on error.
func MustWrap[R any](name string, s *Schema, fn any, opts ...FuncOpt) *Func[R] {
	f, err := Wrap[R](name, s, fn, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

type callShape[R any] struct {
	withCtx   bool
	resultIdx int // index of the R result, -1 when absent
	errIdx    int // index of the error result, -1 when absent
}

func (c callShape[R]) offset() int {
	if c.withCtx {
		return 1
	}
	return 0
}

func (c callShape[R]) unpack(outs []reflect.Value) (R, error) {
	var out R
	if c.resultIdx >= 0 {
		reflect.ValueOf(&out).Elem().Set(outs[c.resultIdx])
	}
	if c.errIdx >= 0 {
		if err, _ := outs[c.errIdx].Interface().(error); err != nil {
			return out, err
		}
	}
	return out, nil
}

func checkSignature[R any](ft reflect.Type, s *Schema, rt reflect.Type) (callShape[R], Issues) {
	shape := callShape[R]{resultIdx: -1, errIdx: -1}
	var iss Issues
	mismatch := func(p PathRef, kv ...any) {
		iss = AppendIssues(iss, p.Issue(CodeSignatureMismatch, i18n.T(CodeSignatureMismatch, nil), kv...))
	}
	if ft.IsVariadic() {
		mismatch(Root(), "reason", "variadic")
	}
	n := ft.NumIn()
	if n == s.Len()+1 && ft.In(0) == _ctxType {
		shape.withCtx = true
	}
	if got := n - shape.offset(); got != s.Len() {
		mismatch(Root(), "expected", s.Len(), "got", got)
	} else {
		for i, k := range s.kinds {
			pt := ft.In(i + shape.offset())
			if !k.BoundType().AssignableTo(pt) {
				mismatch(Root().Field(k.name), "param", k.name, "expected", k.BoundType().String(), "got", pt.String())
			}
		}
	}
	switch ft.NumOut() {
	case 0:
	case 1:
		if ft.Out(0) == _errorType {
			shape.errIdx = 0
		} else if ft.Out(0).AssignableTo(rt) {
			shape.resultIdx = 0
		} else {
			mismatch(Root().Field("result"), "expected", rt.String(), "got", ft.Out(0).String())
		}
	case 2:
		if !ft.Out(0).AssignableTo(rt) {
			mismatch(Root().Field("result"), "expected", rt.String(), "got", ft.Out(0).String())
		}
		if ft.Out(1) != _errorType {
			mismatch(Root().Field("result").Index(1), "expected", "error", "got", ft.Out(1).String())
		}
		shape.resultIdx, shape.errIdx = 0, 1
	default:
		mismatch(Root().Field("result"), "reason", "too many results")
	}
	return shape, iss
}
