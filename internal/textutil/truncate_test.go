package textutil

import "testing"

func TestTruncateKeepsShortText(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 7, "this is..."},
		{"héllo wörld", 5, "héllo..."},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.limit); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestPrefixAlwaysAppendsEllipsis(t *testing.T) {
	if got := Prefix("u", 100); got != "u..." {
		t.Fatalf("unexpected prefix %q", got)
	}
	if got := Prefix("abcdef", 3); got != "abc..." {
		t.Fatalf("unexpected prefix %q", got)
	}
}

func TestSnippetCollapsesWhitespace(t *testing.T) {
	if got := Snippet("line one\n\n  line\ttwo", 100); got != "line one line two" {
		t.Fatalf("unexpected snippet %q", got)
	}
	if got := Snippet("a  b  c  d", 3); got != "a b..." {
		t.Fatalf("unexpected snippet %q", got)
	}
}
