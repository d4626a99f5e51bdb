// Package templates holds the catalog of prompt-shaping instructions.
// Each instruction carries a single topic placeholder that is replaced with
// the user's raw idea before it is sent to the completion service.
package templates

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// Placeholder is the substitution slot present exactly once in every template.
const Placeholder = "{topic}"

// ErrUnknownType is returned by Parse for identifiers outside the catalog.
var ErrUnknownType = errors.New("template must be one of: " + joinTypes())

// Type identifies a content category in the catalog.
type Type string

// Catalog identifiers.
const (
	General           Type = "general"
	Research          Type = "research"
	Creative          Type = "creative"
	Tech              Type = "tech"
	TechnicalTutorial Type = "technical_tutorial"
	BusinessCaseStudy Type = "business_case_study"
	NarrativeEssay    Type = "narrative_essay"
	CodeDocumentation Type = "code_documentation"
)

var types = []Type{
	General,
	Research,
	Creative,
	Tech,
	TechnicalTutorial,
	BusinessCaseStudy,
	NarrativeEssay,
	CodeDocumentation,
}

// Types returns the catalog identifiers in declaration order.
func Types() []Type {
	return slices.Clone(types)
}

// Parse validates s as a catalog identifier.
func Parse(s string) (Type, error) {
	t := Type(s)
	if !slices.Contains(types, t) {
		return "", ErrUnknownType
	}
	return t, nil
}

// UnmarshalJSON rejects identifiers outside the catalog.
func (t *Type) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := Parse(raw)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Lookup returns the instruction template for t.
// Identifiers outside the catalog resolve to the general template.
func Lookup(t string) string {
	if tmpl, ok := catalog[Type(t)]; ok {
		return tmpl
	}
	return catalog[General]
}

// Interpolate resolves the template for t and substitutes topic into its
// placeholder. The topic is inserted verbatim.
func Interpolate(t string, topic string) string {
	return strings.Replace(Lookup(t), Placeholder, topic, 1)
}

func joinTypes() string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
