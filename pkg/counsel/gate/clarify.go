// Package gate holds the two early-termination checks: the clarification gate
// before evidence planning and the no-evidence safety gate after aggregation.
package gate

import (
	"genegpt-be/pkg/counsel/intent"
)

// ClarificationMessage is the fixed prompt returned when the question cannot
// be answered without the user naming a gene or result.
const ClarificationMessage = "I can help with that, but I'm not sure which gene or variant you are referring to. Could you please provide the gene symbol (e.g., BRCA1) or the specific result you are asking about?"

// CheckClarification stops the turn when the phrasing is ambiguous and no
// usable gene context exists from this turn or from history.
func CheckClarification(it intent.Intent, effectiveGene string) (proceed bool, message string) {
	if it.Ambiguous && effectiveGene == "" && it.Variant == nil {
		return false, ClarificationMessage
	}
	return true, ""
}
