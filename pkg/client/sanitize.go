package client

import "strings"

// MaxQuestionLength caps a question in runes before it is sent.
const MaxQuestionLength = 1000

// Sanitize collapses whitespace runs, trims, and truncates overly long
// questions at a word boundary with a trailing "...".
func Sanitize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= MaxQuestionLength {
		return s
	}
	cut := string(r[:MaxQuestionLength-3])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
