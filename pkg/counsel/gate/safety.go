package gate

import (
	"genegpt-be/pkg/counsel/evidence"
	"genegpt-be/pkg/counsel/intent"
)

// NoEvidenceMessage is the fixed answer returned when a medically substantive
// question found nothing in any consulted database. Refusing beats guessing.
const NoEvidenceMessage = "I checked the medical databases (OMIM, ClinVar, PubMed, GeneReviews, gnomAD) but could not find specific evidence for this question. I don't want to guess about something medically important, so please double-check the gene or variant name, or ask your clinician for the exact result."

// CheckSafety aborts synthesis when a risk or variant question produced no
// usable evidence at all. Education and general questions never abort;
// definitional answers don't need specialized evidence.
func CheckSafety(category intent.Category, bundle *evidence.Bundle) (proceed bool, message string) {
	if category != intent.CategoryRisk && category != intent.CategoryVariant {
		return true, ""
	}
	if bundle.AllRequestedUnused() {
		return false, NoEvidenceMessage
	}
	return true, ""
}
