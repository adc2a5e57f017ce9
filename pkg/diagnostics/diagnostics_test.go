package diagnostics

import (
	"fmt"
	"testing"
)

func TestErrorRendering(t *testing.T) {
	err := Errorf(KindSyntax, Position{Line: 3, Column: 7}, "expecting 'end', found '%s'", "var")
	want := "Syntax Error: expecting 'end', found 'var' at line 3 column 7"
	if got := err.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestErrorRenderingWithoutPosition(t *testing.T) {
	err := New(KindSemantic, Position{}, "undefined 'main' function")
	want := "Semantic Error: undefined 'main' function"
	if got := err.Error(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAsUnwrapsChain(t *testing.T) {
	base := New(KindRuntime, Position{Line: 1, Column: 1}, "division by zero")
	wrapped := fmt.Errorf("run main.mypl: %w", base)
	diag, ok := As(wrapped)
	if !ok || diag != base {
		t.Fatalf("expected wrapped diagnostics error, got %#v", diag)
	}
	kind, ok := KindOf(wrapped)
	if !ok || kind != KindRuntime {
		t.Fatalf("expected runtime kind, got %v", kind)
	}
	if _, ok := As(fmt.Errorf("plain")); ok {
		t.Fatalf("plain error must not match")
	}
}

func TestParseKind(t *testing.T) {
	cases := map[string]Kind{"lexer": KindLexer, "Syntax": KindSyntax, " semantic ": KindSemantic, "RUNTIME": KindRuntime}
	for name, want := range cases {
		got, ok := ParseKind(name)
		if !ok || got != want {
			t.Fatalf("ParseKind(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseKind("panic"); ok {
		t.Fatalf("unexpected kind match")
	}
}
