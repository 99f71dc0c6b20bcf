// Package index implements the in-memory inverted index over a fixed,
// tokenized source collection: token -> ordered posting list, plus the
// tokenized sets themselves.
package index

import (
	"sort"

	"silkmoth/internal/domain"
)

// InvertedIndex is a read-only, build-once index. Its posting lists are
// sorted first by set index and then by element index within the set,
// which is what lets PostingsInSet resolve via binary search.
type InvertedIndex struct {
	sets     []domain.TokenizedSet
	postings map[string][]domain.Posting
	tokens   []string
}

// tokensOf picks the token representation a set's elements are indexed
// under, given the similarity function the index was built for.
func tokensOf(g domain.TokenGroup, simFunc domain.SimFunc) []string {
	if simFunc.IsEdit() {
		return g.QGrams
	}
	return g.Tokens
}

// Build constructs an InvertedIndex over tokenized sets, indexing each
// element under its Tokens (Jaccard) or QGrams (Edit/NormEdit) representation
// as selected by simFunc.
func Build(sets []domain.TokenizedSet, simFunc domain.SimFunc) *InvertedIndex {
	idx := &InvertedIndex{
		sets:     sets,
		postings: make(map[string][]domain.Posting),
	}

	for setIdx, set := range sets {
		for elemIdx, group := range set {
			seen := make(map[string]struct{})
			for _, token := range tokensOf(group, simFunc) {
				if _, dup := seen[token]; dup {
					continue
				}
				seen[token] = struct{}{}
				list := idx.postings[token]
				key := domain.Posting{SetIdx: setIdx, ElemIdx: elemIdx}
				if len(list) == 0 || list[len(list)-1] != key {
					idx.postings[token] = append(list, key)
				}
			}
		}
	}

	idx.tokens = make([]string, 0, len(idx.postings))
	for token := range idx.postings {
		idx.tokens = append(idx.tokens, token)
	}
	return idx
}

func (idx *InvertedIndex) Postings(token string) ([]domain.Posting, error) {
	return idx.postings[token], nil
}

// PostingsInSet restricts Postings(token) to one setIdx via binary search:
// posting lists are sorted by (setIdx, elemIdx), so the matching run is
// contiguous.
func (idx *InvertedIndex) PostingsInSet(token string, setIdx int) ([]domain.Posting, error) {
	list := idx.postings[token]
	if len(list) == 0 {
		return nil, nil
	}
	lo := sort.Search(len(list), func(i int) bool { return list[i].SetIdx >= setIdx })
	hi := sort.Search(len(list), func(i int) bool { return list[i].SetIdx > setIdx })
	if lo >= hi {
		return nil, nil
	}
	return list[lo:hi], nil
}

func (idx *InvertedIndex) Set(setIdx int) (domain.TokenizedSet, error) {
	if setIdx < 0 || setIdx >= len(idx.sets) {
		return nil, domain.ErrInvalidSetID
	}
	return idx.sets[setIdx], nil
}

func (idx *InvertedIndex) SetSize(setIdx int) (int, error) {
	if setIdx < 0 || setIdx >= len(idx.sets) {
		return 0, domain.ErrInvalidSetID
	}
	return len(idx.sets[setIdx]), nil
}

func (idx *InvertedIndex) NumSets() int {
	return len(idx.sets)
}

func (idx *InvertedIndex) Tokens() []string {
	return idx.tokens
}
