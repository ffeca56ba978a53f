// Package namedargs provides:
//
// - Named, order-independent arguments for Go functions via typed markers
// - A Validator that classifies an argument set three ways (missing required,
//   duplicated, unknown) and reports all findings together
// - A Binder that resolves the positional value sequence, applying declared
//   defaults and an explicit "absent" for omitted optional parameters
// - Func wrappers that refuse to invoke the target operation unless the call
//   validates
//
// Design policy:
// - Keep only public APIs in the root package; declaration files live under
//   decl/, projections under jsonschema/, code generation under internal/gen/ and the
//   CLI under cmd/namedargs.
// - Schemas and markers are immutable and may be shared freely. Argument sets
//   and bound sequences belong to one call.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	var (
//	    name   = namedargs.Req[string]("name")
//	    age    = namedargs.Opt[int]("age")
//	    bufsiz = namedargs.Def[int]("bufsiz", 4096)
//	)
//
//	var open = namedargs.MustWrap[string]("open",
//	    namedargs.MustSchema(name, age, bufsiz),
//	    func(name string, age *int, bufsiz int) string { ... })
//
//	out, err := open.Call(ctx, bufsiz.Is(8192), name.Is("foo"))
//
// The duplicate check is also available at vet time through the analyzer in
// analysis/dupargs.
package namedargs
