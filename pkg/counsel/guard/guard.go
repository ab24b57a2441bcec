// Package guard implements the context transition rules that decide whether a
// new message continues, resets, or links the session's gene context.
package guard

import (
	"strings"

	"genegpt-be/pkg/counsel/intent"
	"genegpt-be/pkg/store"
)

type Action string

const (
	ActionContinue Action = "CONTINUE"
	ActionReset    Action = "RESET"
	ActionLink     Action = "LINK"
)

// Decision carries the guard outcome for one turn. SecondaryGene is only set
// on LINK and is never persisted to the session.
type Decision struct {
	Action        Action
	EffectiveGene string
	SecondaryGene string
}

// linkingCues are explicit comparison/reference phrases. "what about X" is
// deliberately NOT a linking cue: it names a new topic, so the old context
// must not bleed into it.
var linkingCues = []string{
	"compare", "compared with", "compared to", "vs", "versus",
	"and also", "along with", "together with", "both",
}

func hasLinkingCue(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range linkingCues {
		if strings.Contains(lower, " "+cue+" ") ||
			strings.HasPrefix(lower, cue+" ") ||
			strings.HasSuffix(lower, " "+cue) {
			return true
		}
	}
	return false
}

// Decide applies the transition rules and mutates the session accordingly.
// The session write is the single context mutation of the turn; it holds even
// when a later gate terminates the pipeline early.
func Decide(session *store.Session, it intent.Intent) Decision {
	candidate := it.CandidateGene
	prior := session.TopicGene

	// A linked secondary gene only lives for the turn that linked it.
	session.SecondaryGene = ""

	// Broad educational question with no gene reference wipes the context so
	// a stale gene cannot leak into an unrelated definition.
	if candidate == "" && it.Category == intent.CategoryEducation && !intent.IsFollowUp(it.RawQuestion) {
		session.ResetClinicalContext()
		return Decision{Action: ActionReset, EffectiveGene: ""}
	}

	if candidate == "" || candidate == prior {
		session.LastCategory = string(it.Category)
		return Decision{Action: ActionContinue, EffectiveGene: prior}
	}

	// New, non-null gene.
	if prior != "" && hasLinkingCue(it.RawQuestion) {
		session.TopicGene = candidate
		session.SecondaryGene = prior
		session.LastCategory = string(it.Category)
		return Decision{Action: ActionLink, EffectiveGene: candidate, SecondaryGene: prior}
	}

	session.ResetClinicalContext()
	session.TopicGene = candidate
	session.LastCategory = string(it.Category)
	return Decision{Action: ActionReset, EffectiveGene: candidate}
}
