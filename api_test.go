package namedargs_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"

	namedargs "github.com/reoring/namedargs"
)

func describe(name string, age *int, bufsiz int) string {
	if age == nil {
		return fmt.Sprintf("%s/-/%d", name, bufsiz)
	}
	return fmt.Sprintf("%s/%d/%d", name, *age, bufsiz)
}

func TestWrap_CallScenario(t *testing.T) {
	ctx := context.Background()
	f := namedargs.MustWrap[string]("describe", testSchema, describe)
	cases := []struct {
		args []namedargs.Arg
		want string
	}{
		{[]namedargs.Arg{pName.Is("foo"), pAge.Is(42), pBufsiz.Is(8192)}, "foo/42/8192"},
		{[]namedargs.Arg{pBufsiz.Is(8192), pName.Is("foo"), pAge.Is(42)}, "foo/42/8192"},
		{[]namedargs.Arg{pName.Is("bar"), pAge.Is(1337)}, "bar/1337/4096"},
		{[]namedargs.Arg{pName.Is("baz")}, "baz/-/4096"},
	}
	for _, tc := range cases {
		got, err := f.Call(ctx, tc.args...)
		if err != nil {
			t.Fatalf("call: %v", err)
		}
		if got != tc.want {
			t.Fatalf("got %q, want %q", got, tc.want)
		}
	}
}

func TestCall_RejectsWithoutInvoking(t *testing.T) {
	called := false
	f := namedargs.Define("probe", testSchema, func(ctx context.Context, b namedargs.Bound) (int, error) {
		called = true
		return 1, nil
	})
	_, err := f.Call(context.Background(), pName.Is("a"), pName.Is("b"), pNickname.Is("x"))
	if called {
		t.Fatalf("operation must not run on an invalid call")
	}
	iss, ok := namedargs.AsIssues(err)
	if !ok {
		t.Fatalf("expected Issues, got %v", err)
	}
	if got := strings.Join(iss.Codes(), ","); got != "duplicate_argument,unknown_argument" {
		t.Fatalf("codes=%s", got)
	}
	if r := f.Check(); r.Valid() {
		t.Fatalf("Check must report the missing name")
	}
	if called {
		t.Fatalf("Check must not invoke the operation")
	}
}

func TestWrap_ContextAndErrorResults(t *testing.T) {
	type key struct{}
	boom := errors.New("boom")
	s := namedargs.MustSchema(pName)
	f, err := namedargs.Wrap[int]("ctx", s, func(ctx context.Context, name string) (int, error) {
		if name == "fail" {
			return 0, boom
		}
		return ctx.Value(key{}).(int) + len(name), nil
	})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	ctx := context.WithValue(context.Background(), key{}, 10)
	if got, err := f.Call(ctx, pName.Is("abc")); err != nil || got != 13 {
		t.Fatalf("got (%d,%v)", got, err)
	}
	if _, err := f.Call(ctx, pName.Is("fail")); !errors.Is(err, boom) {
		t.Fatalf("expected operation error, got %v", err)
	}
}

func TestWrap_ErrorOnlyAndNoResults(t *testing.T) {
	s := namedargs.MustSchema(pName)
	var seen string
	f := namedargs.MustWrap[struct{}]("void", s, func(name string) { seen = name })
	if _, err := f.Call(context.Background(), pName.Is("v")); err != nil || seen != "v" {
		t.Fatalf("void call failed: %v %q", err, seen)
	}
	g := namedargs.MustWrap[struct{}]("err", s, func(name string) error { return errors.New(name) })
	if _, err := g.Call(context.Background(), pName.Is("e")); err == nil || err.Error() != "e" {
		t.Fatalf("expected error e, got %v", err)
	}
}

func TestWrap_SignatureMismatch(t *testing.T) {
	cases := []struct {
		name  string
		fn    any
		paths []string
	}{
		{"not a func", 42, []string{"/"}},
		{"arity", func(string, *int) string { return "" }, []string{"/"}},
		{"optional by value", func(string, int, int) string { return "" }, []string{"/age"}},
		{"wrong types", func(int, *int, string) string { return "" }, []string{"/name", "/bufsiz"}},
		{"result", func(string, *int, int) int { return 0 }, []string{"/result"}},
		{"second result", func(string, *int, int) (string, int) { return "", 0 }, []string{"/result/1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := namedargs.Wrap[string]("bad", testSchema, tc.fn)
			iss, ok := namedargs.AsIssues(err)
			if !ok {
				t.Fatalf("expected issues, got %v", err)
			}
			if len(iss) != len(tc.paths) {
				t.Fatalf("issues=%v, want paths %v", iss, tc.paths)
			}
			for i, it := range iss {
				if it.Code != namedargs.CodeSignatureMismatch || it.Path != tc.paths[i] {
					t.Fatalf("issue %d: %+v", i, it)
				}
			}
		})
	}
}

func TestCall_LogsRejectionAndBinding(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := namedargs.MustWrap[string]("describe", testSchema, describe,
		namedargs.FuncOpt{Logger: logger, CallID: func() string { return "call-1" }})

	_, _ = f.Call(context.Background(), pNickname.Is("x"))
	out := buf.String()
	for _, want := range []string{"named call rejected", "func=describe", "call_id=call-1", "missing_required=[name]", "invalid=[nickname]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log %q missing %q", out, want)
		}
	}

	buf.Reset()
	if _, err := f.Call(context.Background(), pName.Is("ok")); err != nil {
		t.Fatalf("call: %v", err)
	}
	if !strings.Contains(buf.String(), "named call bound") {
		t.Fatalf("expected debug bind record, got %q", buf.String())
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := namedargs.Issues{
		{Path: "/a", Code: namedargs.CodeMissingRequired},
		{Path: "/b", Code: namedargs.CodeDuplicateArgument},
		{Path: "/args/0", Code: namedargs.CodeUnknownArgument},
		{Path: "/args/1", Code: namedargs.CodeUnknownArgument},
	}
	want := "missing_required at /a; duplicate_argument at /b; unknown_argument at /args/0; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("summary=%q", got)
	}
}

func TestCall_DefaultIsNotShared(t *testing.T) {
	tags := namedargs.Def[[]string]("tags", []string{"a"})
	f := namedargs.MustWrap[string]("tag", namedargs.MustSchema(tags), func(tags []string) string {
		first := tags[0]
		tags[0] = "mutated"
		return first
	})
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		got, err := f.Call(ctx)
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if got != "a" {
			t.Fatalf("call %d saw %q", i, got)
		}
	}
	if d, _ := tags.Kind().Default(); d.([]string)[0] != "a" {
		t.Fatalf("declared default changed: %v", d)
	}
}

func TestCall_ConcurrentUse(t *testing.T) {
	tags := namedargs.Def[[]string]("tags", []string{"x", "y"})
	limits := namedargs.Def[map[string]int]("limits", map[string]int{"n": 1})
	s := namedargs.MustSchema(pName, tags, limits)
	f := namedargs.Define("fill", s, func(ctx context.Context, b namedargs.Bound) (string, error) {
		ts := namedargs.Get(b, tags)
		ls := namedargs.Get(b, limits)
		name := namedargs.Get(b, pName)
		ts[0] = name
		ls["n"]++
		return ts[0] + ts[1], nil
	})

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("w%d", i)
			for j := 0; j < 50; j++ {
				got, err := f.Call(context.Background(), pName.Is(name))
				if err != nil {
					errs <- err
					return
				}
				if got != name+"y" {
					errs <- fmt.Errorf("worker %d got %q", i, got)
					return
				}
				if r := f.Check(pName.Is(name), pName.Is(name)); r.Valid() {
					errs <- fmt.Errorf("worker %d: duplicate not reported", i)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
	if d, _ := limits.Kind().Default(); d.(map[string]int)["n"] != 1 {
		t.Fatalf("declared default changed: %v", d)
	}
}
