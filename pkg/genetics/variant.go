package genetics

import "regexp"

// Variant holds the notations recognized for a single variant mention.
type Variant struct {
	RsID  string `json:"rs_id,omitempty"`
	HgvsC string `json:"hgvs_c,omitempty"`
	HgvsP string `json:"hgvs_p,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

var (
	rsPattern    = regexp.MustCompile(`\brs\d{3,}\b`)
	hgvsCPattern = regexp.MustCompile(`\bc\.[0-9_]+[A-Za-z>_+-]*[0-9]*[A-Za-z]*\b`)
	hgvsPPattern = regexp.MustCompile(`\bp\.[A-Z][a-z]{2}\d+(?:[A-Z][a-z]{2}|\*|fs)?\b`)
)

// ExtractVariant scans free text for rsIDs and HGVS c./p. notation.
// Returns nil when nothing variant-shaped is present.
func ExtractVariant(text string) *Variant {
	v := &Variant{
		RsID:  rsPattern.FindString(text),
		HgvsC: hgvsCPattern.FindString(text),
		HgvsP: hgvsPPattern.FindString(text),
	}
	if v.RsID == "" && v.HgvsC == "" && v.HgvsP == "" {
		return nil
	}
	v.Raw = text
	return v
}

// SearchToken picks the single token to send to a variant database.
// Priority: rsID > c. HGVS > p. HGVS (rsIDs are unambiguous; coding HGVS
// beats protein HGVS for ClinVar matching).
func (v *Variant) SearchToken() string {
	if v == nil {
		return ""
	}
	switch {
	case v.RsID != "":
		return v.RsID
	case v.HgvsC != "":
		return v.HgvsC
	default:
		return v.HgvsP
	}
}
