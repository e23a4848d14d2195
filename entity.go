package doxhund

// ScoredPhrase is a ranked name or keyword.
type ScoredPhrase struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Entities holds the ranked names and keywords of a text.
type Entities struct {
	// Names are multi-word proper-noun spans in their original case.
	Names []ScoredPhrase `json:"names"`

	// Keywords are single-word proper nouns, lowercased.
	Keywords []ScoredPhrase `json:"keywords"`
}

// EntityExtractor ranks the named entities and keywords of a text.
//
// Extraction is heuristic: results are usefully good and fast, not
// guaranteed-correct named-entity recognition. Empty text yields empty lists.
type EntityExtractor interface {
	Extract(title, text string) *Entities
}

// FingerprintFilter remembers content fingerprints that were already seen.
type FingerprintFilter interface {
	Add(fingerprint string)

	// Test reports whether fingerprint was probably added before.
	Test(fingerprint string) bool

	// TestAndAdd reports what Test would and then adds fingerprint, atomically.
	TestAndAdd(fingerprint string) bool
}

// Phrases returns the text of each phrase in order.
func Phrases(ps []ScoredPhrase) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Text
	}
	return out
}
