package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_EmbedsParam(t *testing.T) {
	got := T("missing_required", map[string]string{"param": "name"})
	if got != "missing required argument name" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := T("unknown_argument", nil); got != "unknown argument" {
		t.Fatalf("unexpected message without param: %q", got)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(upper{})
	if got := T("duplicate_argument", nil); got != "X:duplicate_argument" {
		t.Fatalf("custom translator not used: %q", got)
	}
	SetTranslator(nil)
	if got := T("duplicate_argument", nil); got != "argument supplied more than once" {
		t.Fatalf("nil translator should reset to en, got %q", got)
	}
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if got := T("no_such_code", nil); got != "no_such_code" {
		t.Fatalf("expected code passthrough, got %q", got)
	}
}
