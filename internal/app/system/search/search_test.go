package search

import (
	"regexp"
	"testing"
)

func TestNeutralize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a.b(", "ab"},
		{"(a|b)*", "ab"},
		{"plain words", "plain words"},
		{`back\slash`, "backslash"},
		{"^start$", "start$"}, // only the listed metacharacters are stripped
	}
	for _, tc := range cases {
		if got := Neutralize(tc.in); got != tc.want {
			t.Errorf("Neutralize(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestContainsPattern_NeverInterpretsInput(t *testing.T) {
	p := ContainsPattern("a.b(")

	re, err := regexp.Compile("(?i)" + p.Pattern)
	if err != nil {
		t.Fatalf("pattern does not compile: %v", err)
	}

	// The dot was stripped, not turned into a wildcard: "ab" matches as a
	// literal substring, "a?b" does not.
	if !re.MatchString("Kebab Drive") {
		t.Error("expected literal substring match on remaining characters")
	}
	if re.MatchString("aXb") {
		t.Error("stripped dot must not act as a wildcard")
	}

	if p.Options != "i" {
		t.Errorf("Options: got %q, want %q", p.Options, "i")
	}
}

func TestContainsPattern_RemainderIsQuoted(t *testing.T) {
	// '}' and '$' are not in the strip list; they must come out quoted so the
	// pattern still cannot error or gain meaning.
	p := ContainsPattern("a}b$")
	if _, err := regexp.Compile("(?i)" + p.Pattern); err != nil {
		t.Fatalf("pattern does not compile: %v", err)
	}
	re := regexp.MustCompile("(?i)" + p.Pattern)
	if !re.MatchString("xa}b$y") {
		t.Error("expected literal match including unstripped metacharacters")
	}
}
