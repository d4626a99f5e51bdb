// Package sanitize strips conversational preamble from model output.
//
// A Sanitizer holds an ordered table of rules. Each rule matches one preamble
// shape anchored at the start of the text and terminated by a blank line.
// Clean applies at most one rule: the first rule that matches removes its
// prefix and evaluation stops. Text that matches no rule is returned as-is.
package sanitize

import "regexp"

// Rule pairs a name with a start-anchored pattern whose match is removed.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// Apply removes the rule's match from the start of text.
// Reports false, leaving text untouched, when the rule does not match.
func (r Rule) Apply(text string) (string, bool) {
	loc := r.Pattern.FindStringIndex(text)
	if loc == nil || loc[0] != 0 {
		return text, false
	}
	return text[loc[1]:], true
}

// Sanitizer evaluates rules in priority order.
type Sanitizer struct {
	rules []Rule
}

// New creates a Sanitizer that evaluates rules in the order given.
func New(rules ...Rule) *Sanitizer {
	return &Sanitizer{rules: rules}
}

// Default returns a Sanitizer over DefaultRules.
func Default() *Sanitizer {
	return New(DefaultRules()...)
}

// Rules returns the sanitizer's rules in evaluation order.
func (s *Sanitizer) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Clean removes the prefix matched by the first applicable rule.
func (s *Sanitizer) Clean(text string) string {
	for _, rule := range s.rules {
		if cleaned, ok := rule.Apply(text); ok {
			return cleaned
		}
	}
	return text
}

var std = Default()

// Clean sanitizes text with the default rule table.
func Clean(text string) string {
	return std.Clean(text)
}
