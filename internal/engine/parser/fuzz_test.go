package parser

import "testing"

func FuzzParseFile(f *testing.F) {
	f.Add([]byte(`def main():
    """Run."""
    print("hello")
if __name__ == "__main__":
    main()`))
	f.Add([]byte("class A:\n    '''Doc \\x41.'''\n"))
	p := NewParser()
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = p.ParseFile("fuzz.py", data)
	})
}
