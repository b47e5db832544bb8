package rank

import "strings"

// suffixRule is a single greedy stemmer rewrite: words ending in from are
// rewritten to end in to instead, unless that would shorten the word
// below 3 characters.
type suffixRule struct {
	from, to string
}

var suffixRules = []suffixRule{
	{"tion", "t"},
	{"sion", "s"},
	{"ies", "y"},
	{"ied", "y"},
	{"ation", ""},
	{"ement", ""},
	{"ment", ""},
	{"ing", ""},
	{"ed", ""},
	{"es", ""},
	{"er", ""},
	{"ly", ""},
	{"e", ""},
	{"s", ""},
}

// Stem applies the first matching suffix rule. Words shorter than 4
// characters are returned unchanged.
func Stem(word string) string {
	if len(word) < 4 {
		return word
	}
	for _, r := range suffixRules {
		if strings.HasSuffix(word, r.from) {
			stemmed := strings.TrimSuffix(word, r.from) + r.to
			if len(stemmed) >= 3 {
				return stemmed
			}
		}
	}
	return word
}
