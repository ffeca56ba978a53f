package namedargs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// FuncOpt bundles options for Define and Wrap. When several are passed the
// last one wins.
type FuncOpt struct {
	// Logger receives call outcomes: rejections at info, bindings at debug.
	// Nil disables logging.
	Logger *slog.Logger
	// CallID generates the per-call correlation id used in log records.
	// Defaults to uuid.NewString.
	CallID func() string
}

// Func is a target operation behind a schema. It is immutable and safe for
// concurrent use; every Call validates and binds its own argument set.
type Func[R any] struct {
	name   string
	schema *Schema
	impl   func(context.Context, Bound) (R, error)
	logger *slog.Logger
	callID func() string
}

// Define wraps impl so it can only be reached through a validated, fully
// bound argument set. It panics on a nil schema or impl.
func Define[R any](name string, s *Schema, impl func(context.Context, Bound) (R, error), opts ...FuncOpt) *Func[R] {
	if s == nil {
		panic("namedargs.Define: schema must not be nil")
	}
	if impl == nil {
		panic("namedargs.Define: impl must not be nil")
	}
	var opt FuncOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	callID := opt.CallID
	if callID == nil {
		callID = uuid.NewString
	}
	return &Func[R]{name: name, schema: s, impl: impl, logger: opt.Logger, callID: callID}
}

func (f *Func[R]) Name() string     { return f.name }
func (f *Func[R]) Schema() *Schema { return f.schema }

// Check validates args without invoking the operation.
func (f *Func[R]) Check(args ...Arg) Report { return Validate(f.schema, args...) }

// Call validates args, binds them and invokes the operation with the bound
// sequence. When validation fails the operation is not invoked and the
// returned error is the report's Issues.
func (f *Func[R]) Call(ctx context.Context, args ...Arg) (R, error) {
	r := Validate(f.schema, args...)
	if !r.Valid() {
		if f.logger != nil {
			f.logger.LogAttrs(ctx, slog.LevelInfo, "named call rejected",
				slog.String("func", f.name),
				slog.String("call_id", f.callID()),
				slog.Any("missing_required", r.MissingNames()),
				slog.Any("duplicated", r.DuplicatedNames()),
				slog.Any("invalid", r.InvalidNames()),
			)
		}
		var zero R
		return zero, r.Issues()
	}
	b := bindValidated(f.schema, args)
	if f.logger != nil && f.logger.Enabled(ctx, slog.LevelDebug) {
		f.logger.LogAttrs(ctx, slog.LevelDebug, "named call bound",
			slog.String("func", f.name),
			slog.String("call_id", f.callID()),
			slog.Int("supplied", len(args)),
			slog.Int("params", b.Len()),
		)
	}
	return f.impl(ctx, b)
}
