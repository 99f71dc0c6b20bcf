package similarity

import (
	"github.com/antzucaro/matchr"

	"silkmoth/internal/domain"
)

// EditFunc implements φ_E, the SILKMOTH paper's edit similarity:
// 1 − 2·LD(x,y)/(|x|+|y|+LD(x,y)).
type EditFunc struct{}

func (EditFunc) Func() domain.SimFunc { return domain.Edit }

func (EditFunc) Similarity(x, y domain.TokenGroup, alpha float64) float64 {
	return EditSim(x.Raw, y.Raw, alpha)
}

// EditSim computes φ_E directly over two reconstructed element strings.
func EditSim(x, y string, alpha float64) float64 {
	if x == "" || y == "" {
		return 0
	}
	ld := matchr.Levenshtein(x, y)
	eds := 1 - (2 * float64(ld) / float64(len(x)+len(y)+ld))
	if eds < alpha {
		return 0
	}
	return eds
}

// NormEditFunc implements φ_NE, the normalized edit similarity:
// 1 − LD(x,y)/max(|x|,|y|).
type NormEditFunc struct{}

func (NormEditFunc) Func() domain.SimFunc { return domain.NormEdit }

func (NormEditFunc) Similarity(x, y domain.TokenGroup, alpha float64) float64 {
	return NormEditSim(x.Raw, y.Raw, alpha)
}

// NormEditSim computes φ_NE directly over two reconstructed element strings.
func NormEditSim(x, y string, alpha float64) float64 {
	if x == "" || y == "" {
		return 0
	}
	ld := matchr.Levenshtein(x, y)
	maxLen := len(x)
	if len(y) > maxLen {
		maxLen = len(y)
	}
	if maxLen == 0 {
		return 1.0
	}
	neds := 1 - float64(ld)/float64(maxLen)
	if neds < alpha {
		return 0
	}
	return neds
}
