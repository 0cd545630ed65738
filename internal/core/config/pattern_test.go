package config

import "testing"

func TestCompilePattern(t *testing.T) {
	cases := []struct {
		pattern string
		name    string
		want    bool
	}{
		{DefaultMatch, "module.py", true},
		{DefaultMatch, "test_module.py", false},
		{DefaultMatch, "module_test.py", true},
		{DefaultMatch, "module.pyc", false},
		{DefaultMatch, "module.pyi", false},
		{DefaultMatchDir, "src", true},
		{DefaultMatchDir, ".git", false},
		{`(?!tests|docs).*`, "docs", false},
		{`(?!tests|docs).*`, "pkg", true},
		{`(?!(a|b)\)).*`, "a)x", false},
		{`[a-z]+\.py`, "abc.py", true},
		{`[a-z]+\.py`, "Abc.py", false},
	}
	for _, tc := range cases {
		p, err := CompilePattern(tc.pattern)
		if err != nil {
			t.Fatalf("CompilePattern(%q): %v", tc.pattern, err)
		}
		if got := p.Match(tc.name); got != tc.want {
			t.Errorf("%q.Match(%q) = %v, want %v", tc.pattern, tc.name, got, tc.want)
		}
	}
}

func TestCompilePattern_Invalid(t *testing.T) {
	for _, pattern := range []string{`(?!abc`, `([a-z]`, `(?!x)[`} {
		if _, err := CompilePattern(pattern); err == nil {
			t.Errorf("CompilePattern(%q) should fail", pattern)
		}
	}
}
