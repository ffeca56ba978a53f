package a

import (
	"context"

	"github.com/reoring/namedargs"
)

var (
	name = namedargs.Req[string]("name")
	age  = namedargs.Req[int]("age")
	s    *namedargs.Schema
	f    *namedargs.Func[string]
)

type holder struct {
	m namedargs.Marker[int]
}

func calls(ctx context.Context, h, g holder) {
	namedargs.Validate(s, name.Is("a"), age.Is(1))

	namedargs.Validate(s, name.Is("a"), name.Is("b")) // want `marker name is passed more than once`

	namedargs.Bind(s, age.Is(1), name.Is("x"), age.Is(2)) // want `marker age is passed more than once`

	_, _ = namedargs.TryBind(s, (name.Is("a")), name.Is("a")) // want `marker name is passed more than once`

	_, _ = f.Call(ctx, name.Is("a"), name.Is("b"), name.Is("c")) // want `marker name is passed more than once` `marker name is passed more than once`

	f.Check(age.Is(1), age.Is(1)) // want `marker age is passed more than once`

	local := namedargs.Req[bool]("local")
	namedargs.Validate(s, local.Is(true), local.Is(false)) // want `marker local is passed more than once`

	namedargs.Validate(s, h.m.Is(1), g.m.Is(2))

	args := []namedargs.Arg{name.Is("a"), name.Is("b")}
	namedargs.Validate(s, args...)

	other(name.Is("a"), name.Is("b"))
}

func other(args ...namedargs.Arg) {}
