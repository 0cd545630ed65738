package parser

import "testing"

func TestDecodeStringLiteral(t *testing.T) {
	cases := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"triple double", `"""Summary."""`, "Summary.", true},
		{"triple single", `'''Summary.'''`, "Summary.", true},
		{"single quote", `'Summary.'`, "Summary.", true},
		{"escaped newline", `"""a\nb"""`, "a\nb", true},
		{"raw keeps backslash", `r"""a\nb"""`, `a\nb`, true},
		{"upper raw", `R"""a\d"""`, `a\d`, true},
		{"unicode prefix", `u"""caf\u00e9"""`, "café", true},
		{"hex escape", `"\x41"`, "A", true},
		{"octal escape", `"\101"`, "A", true},
		{"unknown escape kept", `"\d"`, `\d`, true},
		{"line continuation", "\"a\\\nb\"", "ab", true},
		{"bytes rejected", `b"""x"""`, "", false},
		{"fstring rejected", `f"""x"""`, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := decodeStringLiteral(tc.text)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("decodeStringLiteral(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
