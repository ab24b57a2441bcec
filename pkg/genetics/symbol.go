package genetics

import (
	"regexp"
	"strings"
)

// symbolPattern is the plausibility filter for gene symbols: short
// alphanumeric uppercase tokens (BRCA1, TP53, CFTR, CHRNA1...).
var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)

// synonyms maps common nicknames/spellings to canonical HGNC symbols.
var synonyms = map[string]string{
	"BRCA-1": "BRCA1",
	"BRCA-2": "BRCA2",
	"P53":    "TP53",
	"P-53":   "TP53",
}

// blocklist holds uppercase tokens that match the symbol pattern but are
// generic biology terms, common English words, or emotionally charged words
// the extractor must never treat as a gene.
var blocklist = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// generic biology
		"DNA", "RNA", "GENE", "GENES", "VARIANT", "MUTATION", "CHROMOSOME",
		"PROTEIN", "GENOME", "CELL", "ALLELE", "LOCUS", "GENOTYPE", "PHENOTYPE",
		"ENZYME", "RECEPTOR", "PATHWAY", "TISSUE", "ORGAN", "BLOOD",
		// clinical vocabulary
		"RISK", "TEST", "RESULT", "VUS", "PATHOGENIC", "BENIGN", "POSITIVE",
		"NEGATIVE", "UNKNOWN", "DISEASE", "SYNDROME", "DISORDER", "CONDITION",
		"SCREENING", "REPORT", "SAMPLE", "PATIENT", "DOCTOR", "CLINIC", "LAB",
		// emotionally charged / conversational
		"DANGEROUS", "SCARY", "WORRIED", "BAD", "GOOD", "HELP", "YES", "NO",
		"SURE", "OKAY", "THANKS", "THANK", "HELLO", "HEY", "PLEASE",
		// question words and frequent stopwords that survive the pattern
		"WHAT", "WHY", "HOW", "WHEN", "WHERE", "WHO", "THE", "AND", "FOR",
		"WITH", "THAT", "THIS", "THESE", "THOSE", "ABOUT", "TELL", "SHOW",
		"LIST", "FIND", "SHOULD", "WOULD", "COULD", "HAVE", "HAS", "ARE",
		"WAS", "WERE", "NOT", "ANY", "ALL", "SOME", "MORE", "LESS",
	} {
		blocklist[w] = struct{}{}
	}
}

// Normalize maps a token to its canonical symbol, uppercasing and resolving
// synonyms. It does not validate; combine with IsValidSymbol.
func Normalize(token string) string {
	upper := strings.ToUpper(strings.TrimSpace(token))
	if canonical, ok := synonyms[upper]; ok {
		return canonical
	}
	return upper
}

// IsValidSymbol reports whether token is a plausible gene symbol: matches the
// alphanumeric pattern, contains at least one letter, and is not blocklisted.
func IsValidSymbol(token string) bool {
	sym := Normalize(token)
	if !symbolPattern.MatchString(sym) {
		return false
	}
	hasLetter := false
	for _, c := range sym {
		if c >= 'A' && c <= 'Z' {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return false
	}
	_, blocked := blocklist[sym]
	return !blocked
}

var tokenPattern = regexp.MustCompile(`\b[A-Za-z0-9-]+\b`)

// ExtractSymbol is a best-effort scan of free text for a gene symbol.
// All-caps tokens passing the validity filter are candidates; when several
// appear, the last one wins ("Tell me about the CHRNA1 gene" → CHRNA1).
func ExtractSymbol(text string) string {
	var candidates []string
	for _, t := range tokenPattern.FindAllString(text, -1) {
		norm := Normalize(t)
		if t != strings.ToLower(t) && t == strings.ToUpper(t) && IsValidSymbol(norm) {
			candidates = append(candidates, norm)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[len(candidates)-1]
}
