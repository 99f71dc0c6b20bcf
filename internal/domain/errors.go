package domain

import "errors"

// Sentinel errors per the pipeline's error-handling design. UnknownToken is
// deliberately not among them: a probe for a token absent from the index is
// locally suppressed (treated as zero postings) rather than surfaced.
var (
	// ErrInvalidSetID is returned when a set index is out of range.
	ErrInvalidSetID = errors.New("silkmoth: invalid set id")

	// ErrReferenceTooLarge is returned by set-containment when |R| > |S|.
	ErrReferenceTooLarge = errors.New("silkmoth: reference set too large for set-containment")

	// ErrUnsupportedSimilarity is returned for an unrecognized SimFunc,
	// SimMetric or SigType, and by the edit-similarity WEIGHTED signature
	// generator when delta >= 1.
	ErrUnsupportedSimilarity = errors.New("silkmoth: unsupported similarity configuration")

	// ErrUnsupportedElementType is returned when a raw element cannot be
	// coerced to a string (e.g. it is a map).
	ErrUnsupportedElementType = errors.New("silkmoth: unsupported element type")
)

const (
	// WarnEmptyElement marks a tokenized element with no tokens, skipped by
	// the signature generator.
	WarnEmptyElement = "empty element skipped"

	// WarnSignatureInfeasible marks the edit-similarity WEIGHTED scheme's
	// fallback to a brute-force (all q-chunks) signature because q is too
	// large relative to delta.
	WarnSignatureInfeasible = "signature infeasible at this q/delta; falling back to brute-force signature"

	// WarnReductionIncompatible marks the verifier silently disabling the
	// triangle-inequality reduction because alpha > 0.
	WarnReductionIncompatible = "triangle-inequality reduction disabled: incompatible with alpha > 0"
)
