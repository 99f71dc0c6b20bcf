// Package tokenizer implements the Jaccard and edit-similarity tokenizers
// from spec §4.2: coercing raw elements to strings, splitting on whitespace
// for Jaccard, and producing overlapping q-grams for the edit-similarity
// variants.
package tokenizer

import (
	"fmt"
	"strings"

	"silkmoth/internal/domain"
)

// coerceElement flattens a raw element to its string form: scalars are
// stringified, nested sequences are flattened with a space separator, and
// maps fail with domain.ErrUnsupportedElementType.
func coerceElement(e domain.RawElement) (string, error) {
	switch v := e.(type) {
	case string:
		return v, nil
	case []domain.RawElement:
		parts := make([]string, 0, len(v))
		for _, sub := range v {
			s, err := coerceElement(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), nil
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, sub := range v {
			s, err := coerceElement(sub)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), nil
	case map[string]interface{}, map[interface{}]interface{}:
		return "", fmt.Errorf("%w: %T", domain.ErrUnsupportedElementType, v)
	case nil:
		return "", nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

func splitWhitespace(s string) []string {
	return strings.Fields(s)
}

// qGrams returns the overlapping length-q substrings of s, stepping by 1.
func qGrams(s string, q int) []string {
	if q <= 0 || len(s) < q {
		return nil
	}
	grams := make([]string, 0, len(s)-q+1)
	for i := 0; i+q <= len(s); i++ {
		grams = append(grams, s[i:i+q])
	}
	return grams
}

// qChunks returns the non-overlapping length-q substrings of s, stepping by
// q: the token space signature construction uses instead of the overlapping
// q-grams used by the index and the check/NN filters.
func qChunks(s string, q int) []string {
	if q <= 0 || len(s) < q {
		return nil
	}
	chunks := make([]string, 0, len(s)/q)
	for i := 0; i+q <= len(s); i += q {
		chunks = append(chunks, s[i:i+q])
	}
	return chunks
}

