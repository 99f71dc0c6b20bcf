package tokenizer

import (
	"testing"

	"silkmoth/internal/domain"
)

func TestJaccardTokenizer(t *testing.T) {
	tok := NewJaccardTokenizer()
	set := domain.RawSet{"77 Mass Ave Boston MA", "5th St 02115 Seattle WA"}
	out, warnings, err := tok.Tokenize(set)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if len(out[0].Tokens) != 5 {
		t.Errorf("out[0].Tokens = %v, want 5 tokens", out[0].Tokens)
	}
}

func TestJaccardTokenizerEmptyElement(t *testing.T) {
	tok := NewJaccardTokenizer()
	out, warnings, err := tok.Tokenize(domain.RawSet{"", "a b"})
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if !out[0].Empty {
		t.Errorf("expected out[0].Empty = true")
	}
	if len(warnings) != 1 {
		t.Errorf("warnings = %v, want 1 entry", warnings)
	}
}

func TestJaccardTokenizerUnsupportedElement(t *testing.T) {
	tok := NewJaccardTokenizer()
	_, _, err := tok.Tokenize(domain.RawSet{map[string]interface{}{"a": 1}})
	if err == nil {
		t.Fatal("expected error for map element")
	}
}

func TestEditTokenizer(t *testing.T) {
	tok := NewEditTokenizer(domain.Edit, 3)
	out, _, err := tok.Tokenize(domain.RawSet{"abcdef"})
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	// overlapping q-grams of "abcdef", q=3: abc,bcd,cde,def (4 entries)
	if len(out[0].QGrams) != 4 {
		t.Errorf("QGrams = %v, want 4 entries", out[0].QGrams)
	}
	// non-overlapping q-chunks of "abcdef", q=3: abc,def (2 entries)
	if want := []string{"abc", "def"}; !stringsEqual(out[0].QChunks, want) {
		t.Errorf("QChunks = %v, want %v", out[0].QChunks, want)
	}
	if out[0].Raw != "abcdef" {
		t.Errorf("Raw = %q, want abcdef", out[0].Raw)
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestQGramsShortInput(t *testing.T) {
	if got := qGrams("ab", 3); got != nil {
		t.Errorf("qGrams(short) = %v, want nil", got)
	}
}

func TestQChunksShortInput(t *testing.T) {
	if got := qChunks("ab", 3); got != nil {
		t.Errorf("qChunks(short) = %v, want nil", got)
	}
}

func TestQChunksStepsByQ(t *testing.T) {
	got := qChunks("abcdefghij", 2)
	want := []string{"ab", "cd", "ef", "gh", "ij"}
	if !stringsEqual(got, want) {
		t.Errorf("qChunks(\"abcdefghij\", 2) = %v, want %v", got, want)
	}
}
