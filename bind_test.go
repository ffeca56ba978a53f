package namedargs_test

import (
	"errors"
	"testing"

	namedargs "github.com/reoring/namedargs"
)

func TestBind_ScenarioValues(t *testing.T) {
	cases := []struct {
		name    string
		args    []namedargs.Arg
		wantN   string
		wantAge *int
		wantBuf int
	}{
		{"all supplied", []namedargs.Arg{pName.Is("foo"), pAge.Is(42), pBufsiz.Is(8192)}, "foo", intp(42), 8192},
		{"reordered", []namedargs.Arg{pBufsiz.Is(8192), pName.Is("foo"), pAge.Is(42)}, "foo", intp(42), 8192},
		{"default used", []namedargs.Arg{pName.Is("bar"), pAge.Is(1337)}, "bar", intp(1337), 4096},
		{"only required", []namedargs.Arg{pName.Is("baz")}, "baz", nil, 4096},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := namedargs.Bind(testSchema, tc.args...)
			if b.Len() != testSchema.Len() {
				t.Fatalf("len=%d, want %d", b.Len(), testSchema.Len())
			}
			vals := b.Values()
			if vals[0] != tc.wantN {
				t.Fatalf("name=%v, want %v", vals[0], tc.wantN)
			}
			age, ok := vals[1].(*int)
			if !ok {
				t.Fatalf("age bound as %T, want *int", vals[1])
			}
			switch {
			case tc.wantAge == nil && age != nil:
				t.Fatalf("age=%d, want absent", *age)
			case tc.wantAge != nil && (age == nil || *age != *tc.wantAge):
				t.Fatalf("age=%v, want %d", age, *tc.wantAge)
			}
			if vals[2] != tc.wantBuf {
				t.Fatalf("bufsiz=%v, want %d", vals[2], tc.wantBuf)
			}
		})
	}
}

func intp(i int) *int { return &i }

func TestBind_PresenceDistinguishesSuppliedFromDefault(t *testing.T) {
	explicit := namedargs.Bind(testSchema, pName.Is("a"), pBufsiz.Is(4096))
	implicit := namedargs.Bind(testSchema, pName.Is("a"))

	if namedargs.Get(explicit, pBufsiz) != namedargs.Get(implicit, pBufsiz) {
		t.Fatalf("expected equal bufsiz values")
	}
	if !explicit.Supplied(pBufsiz) || explicit.DefaultApplied(pBufsiz) {
		t.Fatalf("explicit 4096 must be supplied, not defaulted")
	}
	if implicit.Supplied(pBufsiz) || !implicit.DefaultApplied(pBufsiz) {
		t.Fatalf("omitted bufsiz must be defaulted")
	}
	v, _ := implicit.Value(pAge)
	if !v.Absent() || v.Supplied() || v.DefaultApplied() {
		t.Fatalf("omitted optional must be absent, got presence %v", v.Presence)
	}
}

func TestGetAndLookup(t *testing.T) {
	b := namedargs.Bind(testSchema, pName.Is("n"), pAge.Is(0))
	if got := namedargs.Get(b, pName); got != "n" {
		t.Fatalf("name=%q", got)
	}
	// age supplied as the zero value is still present
	if v, ok := namedargs.Lookup(b, pAge); !ok || v != 0 {
		t.Fatalf("age=(%d,%v), want (0,true)", v, ok)
	}
	if v, ok := namedargs.Lookup(b, pBufsiz); !ok || v != 4096 {
		t.Fatalf("bufsiz=(%d,%v)", v, ok)
	}

	absent := namedargs.Bind(testSchema, pName.Is("n"))
	if v, ok := namedargs.Lookup(absent, pAge); ok || v != 0 {
		t.Fatalf("absent age=(%d,%v), want (0,false)", v, ok)
	}
	if got := namedargs.Get(absent, pAge); got != 0 {
		t.Fatalf("Get on absent optional should be zero, got %d", got)
	}
}

func TestLookup_ForeignMarkerPanics(t *testing.T) {
	b := namedargs.Bind(testSchema, pName.Is("n"))
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for marker outside the schema")
		}
	}()
	_ = namedargs.Get(b, pNickname)
}

func TestBind_PreconditionViolationPanics(t *testing.T) {
	defer func() {
		rec := recover()
		err, ok := rec.(error)
		if !ok {
			t.Fatalf("expected error panic, got %#v", rec)
		}
		if !errors.Is(err, namedargs.ErrPrecondition) {
			t.Fatalf("expected ErrPrecondition, got %v", err)
		}
		iss, ok := namedargs.AsIssues(err)
		if !ok || len(iss) != 1 || iss[0].Code != namedargs.CodeMissingRequired {
			t.Fatalf("expected wrapped issues, got %v", err)
		}
	}()
	namedargs.Bind(testSchema, pAge.Is(3))
}

func TestTryBind_ReturnsPreconditionError(t *testing.T) {
	_, err := namedargs.TryBind(testSchema, pName.Is("a"), pName.Is("b"), pNickname.Is("x"))
	var pe *namedargs.PreconditionError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *PreconditionError, got %T", err)
	}
	if len(pe.Report.Duplicated) != 1 || len(pe.Report.Invalid) != 1 {
		t.Fatalf("report lost findings: %v", pe.Report.Issues())
	}
}

// Every valid argument set binds to exactly one value per declared parameter.
func TestBind_CompletenessOfDefaults(t *testing.T) {
	subsets := [][]namedargs.Arg{
		{pName.Is("a")},
		{pName.Is("a"), pAge.Is(1)},
		{pName.Is("a"), pBufsiz.Is(2)},
		{pBufsiz.Is(2), pAge.Is(1), pName.Is("a")},
	}
	for _, args := range subsets {
		b := namedargs.Bind(testSchema, args...)
		if b.Len() != 3 {
			t.Fatalf("len=%d", b.Len())
		}
		for i, k := range testSchema.Kinds() {
			if b.At(i).Kind != k {
				t.Fatalf("slot %d bound to %v, want %v", i, b.At(i).Kind, k)
			}
		}
	}
}

type openArgs struct {
	Name   string `json:"name"`
	Age    *int   `namedargs:"name=age"`
	Buffer int    `json:"bufsiz,omitempty"`
	Extra  string `json:"-"`
}

func TestBindStruct(t *testing.T) {
	b := namedargs.Bind(testSchema, pName.Is("s"), pAge.Is(7))
	v, err := namedargs.BindStruct[openArgs](b)
	if err != nil {
		t.Fatalf("bind struct: %v", err)
	}
	if v.Name != "s" || v.Age == nil || *v.Age != 7 || v.Buffer != 4096 {
		t.Fatalf("unexpected struct: %+v", v)
	}

	absent, err := namedargs.BindStruct[openArgs](namedargs.Bind(testSchema, pName.Is("s")))
	if err != nil {
		t.Fatalf("bind struct: %v", err)
	}
	if absent.Age != nil {
		t.Fatalf("absent age should stay nil")
	}
}

type wrongArgs struct {
	Age int `json:"age"`
}

func TestBindStruct_OptionalNeedsPointerField(t *testing.T) {
	_, err := namedargs.BindStruct[wrongArgs](namedargs.Bind(testSchema, pName.Is("s")))
	iss, ok := namedargs.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Path != "/age" || iss[0].Code != namedargs.CodeInvalidType {
		t.Fatalf("unexpected err: %v", err)
	}
}
