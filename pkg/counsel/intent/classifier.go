// Package intent classifies a user message into the closed question-category
// enumeration the rest of the pipeline branches on.
package intent

import (
	"regexp"
	"strings"

	"genegpt-be/pkg/genetics"
)

type Category string

const (
	CategoryRisk      Category = "risk"
	CategoryVariant   Category = "variant"
	CategoryEducation Category = "education"
	CategoryGeneral   Category = "general"
)

// Intent is the per-turn classification result. Immutable once produced.
type Intent struct {
	RawQuestion   string
	CandidateGene string
	Variant       *genetics.Variant
	Category      Category
	Ambiguous     bool
	SmallTalk     bool
}

var riskWords = []string{
	"mutation", "dangerous", "pathogenic", "risk", "cancer", "tumor",
	"worry", "worried", "serious", "harmful", "inherit", "hereditary",
}

var educationWords = []string{
	"what is", "what are", "what does", "explain", "define", "tell me about",
	"function", "how does", "mean",
}

// ambiguousPhrases are vague result questions that only make sense against an
// established gene or variant context.
var ambiguousPhrases = []string{
	"is it dangerous", "is this bad", "should i worry", "should i be worried",
	"what does this mean", "is it pathogenic", "is it benign",
	"what should i do", "more concerning",
}

// followUpCues signal the user is continuing the prior topic rather than
// opening a new one.
var followUpCues = []string{
	"this", "it", "that", "these", "those",
	"my", "our", "their",
	"children", "family", "relatives",
	"screening", "worry", "concerned",
	"should i", "what about", "how about",
}

var smallTalkPhrases = map[string]struct{}{
	"hi": {}, "hii": {}, "hello": {}, "hey": {}, "hey there": {}, "hi there": {},
	"how are you": {}, "who are you": {}, "can you help me": {}, "i need help": {},
	"help": {}, "good morning": {}, "good evening": {}, "thanks": {}, "thank you": {},
}

var punctPattern = regexp.MustCompile(`[^\w\s]`)

func containsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

func containsWord(text, word string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	return re.MatchString(text)
}

// IsFollowUp reports whether the message reads like a continuation of an
// established topic (pronouns, vague references, "what about ..."). Only
// meaningful when the session already carries a topic gene.
func IsFollowUp(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range followUpCues {
		if containsWord(lower, cue) {
			return true
		}
	}
	return false
}

func isSmallTalk(text string) bool {
	clean := strings.TrimSpace(punctPattern.ReplaceAllString(strings.ToLower(text), ""))
	if _, ok := smallTalkPhrases[clean]; ok {
		return true
	}
	// Very short message with no digits and nothing gene-shaped.
	words := strings.Fields(clean)
	if len(words) <= 3 && !strings.ContainsAny(clean, "0123456789") &&
		genetics.ExtractSymbol(text) == "" && genetics.ExtractVariant(text) == nil {
		return true
	}
	return false
}

// Classifier is the narrow contract the pipeline depends on. The default is
// the rule-based implementation; a model-backed one can be swapped in.
type Classifier interface {
	Classify(text string) Intent
}

// RuleBased is the default Classifier.
type RuleBased struct{}

func (RuleBased) Classify(text string) Intent { return Classify(text) }

// Classify derives the per-turn Intent from the raw message. The candidate
// gene has already passed the symbol validity filter; implausible tokens come
// back as empty, never as a hallucinated symbol.
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	it := Intent{
		RawQuestion:   text,
		CandidateGene: genetics.ExtractSymbol(text),
		Variant:       genetics.ExtractVariant(text),
	}

	it.Ambiguous = containsAny(lower, ambiguousPhrases)

	switch {
	case it.Variant != nil:
		it.Category = CategoryVariant
	case containsAny(lower, riskWords):
		it.Category = CategoryRisk
	case it.CandidateGene != "" || containsAny(lower, educationWords):
		it.Category = CategoryEducation
	default:
		it.Category = CategoryGeneral
	}

	// Broad science questions ("do genes cause heart disease") get the
	// education treatment even without a recognized symbol.
	if it.Category == CategoryGeneral &&
		(containsWord(lower, "gene") || containsWord(lower, "genes") ||
			containsWord(lower, "genetic") || containsWord(lower, "genetics")) {
		it.Category = CategoryEducation
	}

	if it.Category == CategoryGeneral && isSmallTalk(text) {
		it.SmallTalk = true
	}

	// Ambiguous phrasing with a freshly named gene is not ambiguous; the gene
	// disambiguates the question.
	if it.Ambiguous && it.CandidateGene != "" {
		it.Ambiguous = false
	}

	return it
}
