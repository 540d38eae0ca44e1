package matcher

import (
	"regexp"
	"sort"
	"strings"
)

// StopWords is a lookup set of lowercase words ignored during normalization
type StopWords map[string]bool

// minTokenLen is the shortest token kept by Normalize
const minTokenLen = 3

// TokenSet is an unordered, deduplicated set of normalized tokens
type TokenSet map[string]struct{}

// NewTokenSet builds a set from the given tokens as-is
func NewTokenSet(tokens ...string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether token is in the set
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Sorted returns the tokens in lexicographic order
func (s TokenSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Text renders the set back to text. Normalizing the result yields the same set.
func (s TokenSet) Text() string {
	return strings.Join(s.Sorted(), " ")
}

// Intersect returns the tokens present in both s and other
func (s TokenSet) Intersect(other TokenSet) TokenSet {
	out := make(TokenSet)
	for t := range s {
		if other.Has(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Difference returns the tokens of s that are not in other
func (s TokenSet) Difference(other TokenSet) TokenSet {
	out := make(TokenSet)
	for t := range s {
		if !other.Has(t) {
			out[t] = struct{}{}
		}
	}
	return out
}

// Normalize lowercases text, replaces everything outside [a-z ] with a space,
// splits on whitespace and drops short tokens and stop words.
// Malformed or empty input yields an empty set.
func Normalize(text string, stop StopWords) TokenSet {
	lowered := strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	set := make(TokenSet)
	for _, tok := range strings.Fields(lowered) {
		if len(tok) < minTokenLen || stop[tok] {
			continue
		}
		set[tok] = struct{}{}
	}
	return set
}

// ExtractSkills normalizes a resume and a job description into token sets
func ExtractSkills(resumeText, jdText string, stop StopWords) (resume, jd TokenSet) {
	return Normalize(resumeText, stop), Normalize(jdText, stop)
}

var wordRe = regexp.MustCompile(`[a-z]+`)

// words returns every alphabetic word of text in order, lowercased, with no
// length or stop word filtering. Role matching needs short skills like "bi".
func words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}
