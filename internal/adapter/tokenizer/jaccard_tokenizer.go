package tokenizer

import "silkmoth/internal/domain"

// JaccardTokenizer splits each element into whitespace-delimited tokens.
type JaccardTokenizer struct{}

func NewJaccardTokenizer() *JaccardTokenizer { return &JaccardTokenizer{} }

func (t *JaccardTokenizer) Func() domain.SimFunc { return domain.Jaccard }
func (t *JaccardTokenizer) Q() int                { return 0 }

func (t *JaccardTokenizer) Tokenize(set domain.RawSet) (domain.TokenizedSet, []string, error) {
	out := make(domain.TokenizedSet, 0, len(set))
	var warnings []string
	for _, elem := range set {
		raw, err := coerceElement(elem)
		if err != nil {
			return nil, warnings, err
		}
		tokens := splitWhitespace(raw)
		group := domain.TokenGroup{Tokens: tokens, Raw: raw}
		if len(tokens) == 0 {
			group.Empty = true
			warnings = append(warnings, domain.WarnEmptyElement)
		}
		out = append(out, group)
	}
	return out, warnings, nil
}
