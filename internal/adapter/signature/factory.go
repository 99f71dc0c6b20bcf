package signature

import (
	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// New resolves a SigType to its SignatureGenerator.
func New(sigType domain.SigType, simFunc domain.SimFunc, q int) (port.SignatureGenerator, error) {
	switch sigType {
	case domain.Weighted:
		return NewWeighted(simFunc, q), nil
	case domain.Skyline:
		return NewSkyline(simFunc, q), nil
	case domain.Dichotomy:
		return NewDichotomy(simFunc, q), nil
	default:
		return nil, domain.ErrUnsupportedSimilarity
	}
}
