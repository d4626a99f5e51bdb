package sanitize

import "regexp"

// Rule names in default priority order.
const (
	RuleAcknowledgement = "acknowledgement"
	RulePresentation    = "presentation"
	RuleContext         = "context"
	RuleNote            = "note"
)

// Patterns never cross a line break before the terminating blank line,
// so a match removes exactly one leading paragraph.
var defaultRules = []Rule{
	{
		Name: RuleAcknowledgement,
		Pattern: regexp.MustCompile(
			`(?i)^(Okay|Sure|Here|I've).*?(refined|enhanced|improved|modified|updated|adapted|created|generated|written).*?prompt.*?\n\n`,
		),
	},
	{
		Name: RulePresentation,
		Pattern: regexp.MustCompile(
			`(?i)^(Here's|The following is|I've created|This is).*?(the refined|an enhanced|the improved).*?prompt.*?\n\n`,
		),
	},
	{
		Name: RuleContext,
		Pattern: regexp.MustCompile(
			`(?i)^(Based on|Incorporating|Adding|With|The).*?(input|feedback|context|additional information).*?\n\n`,
		),
	},
	{
		Name:    RuleNote,
		Pattern: regexp.MustCompile(`(?i)^(Note:|Note that).*?\n\n`),
	},
}

// DefaultRules returns a copy of the built-in preamble rules.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
