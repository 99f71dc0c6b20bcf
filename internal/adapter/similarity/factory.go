package similarity

import (
	"silkmoth/internal/domain"
	"silkmoth/internal/port"
)

// NewElementSimilarity resolves the configured SimFunc to its implementation.
func NewElementSimilarity(f domain.SimFunc) (port.ElementSimilarity, error) {
	switch f {
	case domain.Jaccard:
		return JaccardFunc{}, nil
	case domain.Edit:
		return EditFunc{}, nil
	case domain.NormEdit:
		return NormEditFunc{}, nil
	default:
		return nil, domain.ErrUnsupportedSimilarity
	}
}

// NewSetMetric resolves the configured SimMetric to its implementation.
func NewSetMetric(m domain.SimMetric) (port.SetMetric, error) {
	switch m {
	case domain.SetSimilarity:
		return SetSimilarityMetric{}, nil
	case domain.SetContainment:
		return SetContainmentMetric{}, nil
	default:
		return nil, domain.ErrUnsupportedSimilarity
	}
}
