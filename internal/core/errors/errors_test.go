package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := New(CodeConfiguration, "select and ignore are mutually exclusive")
		want := "[CONFIGURATION_ERROR] select and ignore are mutually exclusive"
		if err.Error() != want {
			t.Errorf("expected %s, got %s", want, err.Error())
		}
	})

	t.Run("Newf", func(t *testing.T) {
		err := Newf(CodeDuplicateRule, "rule %s registered twice", "D100")
		if err.Error() != "[DUPLICATE_RULE_CODE] rule D100 registered twice" {
			t.Errorf("unexpected message %s", err.Error())
		}
	})

	t.Run("Wrap", func(t *testing.T) {
		original := errors.New("unexpected token")
		err := Wrap(original, CodeParse, "cannot parse file")
		expected := "[PARSE_ERROR] cannot parse file: unexpected token"
		if err.Error() != expected {
			t.Errorf("expected %s, got %s", expected, err.Error())
		}
		if !errors.Is(err, original) {
			t.Error("expected wrapped error to unwrap to the original")
		}
	})

	t.Run("IsCode", func(t *testing.T) {
		err := New(CodeMissingDocstring, "node has no docstring")
		if !IsCode(err, CodeMissingDocstring) {
			t.Error("expected IsCode to return true for CodeMissingDocstring")
		}
		if IsCode(err, CodeNotFound) {
			t.Error("expected IsCode to return false for CodeNotFound")
		}
	})

	t.Run("IsCodeThroughFmtWrap", func(t *testing.T) {
		err := fmt.Errorf("load: %w", New(CodeConfiguration, "bad convention"))
		if !IsCode(err, CodeConfiguration) {
			t.Error("expected IsCode to see through fmt wrapping")
		}
	})

	t.Run("AddContext", func(t *testing.T) {
		err := AddContext(New(CodeParse, "cannot parse"), CtxPath, "pkg/mod.py")
		if !IsCode(err, CodeParse) {
			t.Fatalf("expected code to survive AddContext, got %v", err)
		}
		if !strings.Contains(err.Error(), "pkg/mod.py") {
			t.Errorf("expected context in message, got %s", err.Error())
		}

		foreign := AddContext(errors.New("boom"), CtxOperation, "walk")
		if !IsCode(foreign, CodeInternal) {
			t.Errorf("expected foreign error to become internal, got %v", foreign)
		}
	})
}

func TestDescribe(t *testing.T) {
	inner := Wrap(errors.New("line 3: unexpected indent"), CodeParse, "cannot parse file")
	err := AddContext(fmt.Errorf("check: %w", inner), CtxPath, "pkg/mod.py")

	if got := CodeOf(err); got != CodeParse {
		t.Errorf("CodeOf = %s, want %s", got, CodeParse)
	}
	if got, want := Describe(inner), "cannot parse file: line 3: unexpected indent"; got != want {
		t.Errorf("Describe = %q, want %q", got, want)
	}
	if got := Describe(errors.New("boom")); got != "boom" {
		t.Errorf("Describe(foreign) = %q", got)
	}
	if CodeOf(errors.New("boom")) != CodeInternal {
		t.Error("foreign errors should report CodeInternal")
	}
}

func TestErrorContextIsSorted(t *testing.T) {
	err := New(CodeParse, "cannot parse")
	err = AddContext(err, CtxPath, "mod.py")
	err = AddContext(err, CtxNode, "run")
	want := "[PARSE_ERROR] cannot parse (node=run path=mod.py)"
	if err.Error() != want {
		t.Errorf("expected %s, got %s", want, err.Error())
	}
}
