package rank

import (
	"regexp"
	"strings"
)

var stopwords = map[string]bool{
	"a": true, "about": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "by": true, "can": true, "do": true, "does": true,
	"for": true, "from": true, "has": true, "have": true, "how": true, "i": true,
	"in": true, "is": true, "it": true, "of": true, "on": true, "or": true,
	"that": true, "the": true, "this": true, "to": true, "was": true, "we": true,
	"what": true, "when": true, "where": true, "which": true, "who": true,
	"why": true, "will": true, "with": true, "you": true, "your": true,
	// domain-generic noise words that dilute code-search queries
	"function": true, "class": true, "file": true, "code": true, "explain": true,
	"show": true, "me": true, "please": true, "get": true, "use": true,
	"used": true, "using": true, "works": true, "work": true,
}

var camelBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
var nonWord = regexp.MustCompile(`[^a-zA-Z0-9]+`)
var quotedRe = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
var dotWordRe = regexp.MustCompile(`\.([A-Za-z_][A-Za-z0-9_]*)`)

// splitWords performs camelCase splitting, underscore/hyphen replacement,
// lowercasing, and non-word splitting. It does not stem or filter.
func splitWords(s string) []string {
	s = camelBoundary.ReplaceAllString(s, "$1 $2")
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ToLower(s)
	fields := nonWord.Split(s, -1)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Tokenize splits, lowercases, and stems s without dropping stopwords or
// short tokens — used for chunk content, path, and name, where every
// token participates in matching.
func Tokenize(s string) []string {
	words := splitWords(s)
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, Stem(w))
	}
	return out
}

// QueryTokens tokenizes a query, dropping length<=1 tokens and stopwords,
// and stemming what remains.
func QueryTokens(query string) []string {
	words := splitWords(query)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) <= 1 || stopwords[w] {
			continue
		}
		out = append(out, Stem(w))
	}
	return out
}

// ImportantTerms extracts `.word` suffixes and quoted substrings from the
// raw query, lowercased and stemmed, for the 5x scoring boost.
func ImportantTerms(query string) map[string]bool {
	terms := make(map[string]bool)
	for _, m := range dotWordRe.FindAllStringSubmatch(query, -1) {
		terms[Stem(strings.ToLower(m[1]))] = true
	}
	for _, m := range quotedRe.FindAllStringSubmatch(query, -1) {
		inner := m[1]
		if inner == "" {
			inner = m[2]
		}
		for _, w := range splitWords(inner) {
			terms[Stem(w)] = true
		}
	}
	return terms
}
