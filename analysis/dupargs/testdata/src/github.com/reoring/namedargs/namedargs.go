package namedargs

import "context"

type Kind struct{}

type Arg struct{}

type Schema struct{}

type Report struct{}

type Bound struct{}

type Marker[T any] struct{ k *Kind }

func (m Marker[T]) Is(v T) Arg { return Arg{} }

func Req[T any](name string) Marker[T] { return Marker[T]{} }

func Validate(s *Schema, args ...Arg) Report { return Report{} }

func Bind(s *Schema, args ...Arg) Bound { return Bound{} }

func TryBind(s *Schema, args ...Arg) (Bound, error) { return Bound{}, nil }

type Func[R any] struct{}

func (f *Func[R]) Call(ctx context.Context, args ...Arg) (R, error) {
	var zero R
	return zero, nil
}

func (f *Func[R]) Check(args ...Arg) Report { return Report{} }
