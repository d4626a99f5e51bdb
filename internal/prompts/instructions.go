package prompts

import "fmt"

const refineInstructions = `Refine this detailed prompt by incorporating the extra context '%s', preserving its comprehensive structure and depth, suitable for a 500-2000 word response. IMPORTANT: Do not include any explanatory text at the beginning like "Here's the refined prompt". Just output the refined prompt directly: '%s'`

// RefineInstructions builds the completion request for one refinement pass.
func RefineInstructions(prompt, additionalInput string) string {
	return fmt.Sprintf(refineInstructions, additionalInput, prompt)
}
