package checker

import "testing"

func TestTextHelpers(t *testing.T) {
	t.Run("leadingSpace", func(t *testing.T) {
		if got := leadingSpace(" \t x "); got != " \t " {
			t.Errorf("leadingSpace = %q", got)
		}
		if got := leadingSpace("   "); got != "   " {
			t.Errorf("leadingSpace of blank = %q", got)
		}
	})

	t.Run("leadingWords", func(t *testing.T) {
		cases := map[string]string{
			"  Hello world!!!": "Hello world",
			"Returns:":         "Returns",
			"See Also":         "See Also",
			"--- ":             "",
		}
		for in, want := range cases {
			if got := leadingWords(in); got != want {
				t.Errorf("leadingWords(%q) = %q, want %q", in, got, want)
			}
		}
	})

	t.Run("titleCase", func(t *testing.T) {
		cases := map[string]string{
			"parameters":   "Parameters",
			"see also":     "See Also",
			"KEYWORD ARGS": "Keyword Args",
			"other_params": "Other_Params",
		}
		for in, want := range cases {
			if got := titleCase(in); got != want {
				t.Errorf("titleCase(%q) = %q, want %q", in, got, want)
			}
		}
	})

	t.Run("capitalize", func(t *testing.T) {
		if got := capitalize("rETURN"); got != "Return" {
			t.Errorf("capitalize = %q", got)
		}
	})

	t.Run("expandTabs", func(t *testing.T) {
		if got := expandTabs("a\tb\n\tc", 8); got != "a       b\n        c" {
			t.Errorf("expandTabs = %q", got)
		}
	})

	t.Run("takeBlank", func(t *testing.T) {
		if got := takeBlank([]string{"", "  ", "x", ""}); got != 2 {
			t.Errorf("takeBlank = %d, want 2", got)
		}
	})

	t.Run("stem", func(t *testing.T) {
		if stem("returns") != stem("return") {
			t.Errorf("returns and return should share a stem: %q vs %q", stem("returns"), stem("return"))
		}
	})

	t.Run("quote", func(t *testing.T) {
		cases := map[string]string{
			".":    "'.'",
			"it's": `"it's"`,
			"a\nb": `'a\nb'`,
		}
		for in, want := range cases {
			if got := quote(in); got != want {
				t.Errorf("quote(%q) = %s, want %s", in, got, want)
			}
		}
	})
}
