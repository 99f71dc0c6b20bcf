package tokenizer

import (
	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// New resolves the configured SimFunc to a Tokenizer.
func New(simFunc domain.SimFunc, q int) (port.Tokenizer, error) {
	switch simFunc {
	case domain.Jaccard:
		return NewJaccardTokenizer(), nil
	case domain.Edit, domain.NormEdit:
		return NewEditTokenizer(simFunc, q), nil
	default:
		return nil, domain.ErrUnsupportedSimilarity
	}
}
