package tokenizer

import "silkmoth/internal/domain"

// EditTokenizer produces two token spaces per element, for the Edit and
// NormEdit similarity functions: overlapping q-grams (index, check/NN
// filters) and non-overlapping q-chunks (WEIGHTED signature construction).
type EditTokenizer struct {
	simFunc domain.SimFunc
	q       int
}

// NewEditTokenizer builds an EditTokenizer for Edit or NormEdit with q-gram
// length q.
func NewEditTokenizer(simFunc domain.SimFunc, q int) *EditTokenizer {
	return &EditTokenizer{simFunc: simFunc, q: q}
}

func (t *EditTokenizer) Func() domain.SimFunc { return t.simFunc }
func (t *EditTokenizer) Q() int                { return t.q }

func (t *EditTokenizer) Tokenize(set domain.RawSet) (domain.TokenizedSet, []string, error) {
	out := make(domain.TokenizedSet, 0, len(set))
	var warnings []string
	for _, elem := range set {
		raw, err := coerceElement(elem)
		if err != nil {
			return nil, warnings, err
		}
		grams := qGrams(raw, t.q)
		chunks := qChunks(raw, t.q)
		group := domain.TokenGroup{QGrams: grams, QChunks: chunks, Raw: raw}
		if raw == "" || len(grams) == 0 {
			group.Empty = true
			warnings = append(warnings, domain.WarnEmptyElement)
		}
		out = append(out, group)
	}
	return out, warnings, nil
}
