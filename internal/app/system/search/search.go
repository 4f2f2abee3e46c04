// internal/app/system/search/search.go
package search

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stripper removes the regex metacharacters that could turn a user-supplied
// search string into pattern syntax (or a catastrophically backtracking
// pattern). Stripping, rather than escaping, matches the input contract:
// these characters are not searchable.
var stripper = strings.NewReplacer(
	"(", "", "\\", "", "^", "", ".", "", "|", "",
	"?", "", "*", "", "+", "", ")", "", "[", "", "{", "",
)

// Neutralize strips pattern metacharacters from a user-supplied search term.
func Neutralize(s string) string {
	return stripper.Replace(s)
}

// ContainsPattern builds a case-insensitive substring matcher for a
// user-supplied term, safe to hand to the database as a regex filter. The
// term is neutralized first and the remainder quoted, so nothing the caller
// types is ever interpreted as pattern syntax.
func ContainsPattern(term string) primitive.Regex {
	return primitive.Regex{
		Pattern: regexp.QuoteMeta(Neutralize(term)),
		Options: "i",
	}
}
