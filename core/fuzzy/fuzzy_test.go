package fuzzy

import "testing"

func TestCompareIdentical(t *testing.T) {
	cases := []string{
		"Yellow Submarine",
		"a",
		"with  double  spaces",
		"ütf-8 ラベル",
		"",
	}
	for _, s := range cases {
		if got := Compare(s, s); got != 1.0 {
			t.Errorf("Compare(%q, %q) = %v, want 1.0", s, s, got)
		}
	}
}

func TestCompareBounds(t *testing.T) {
	pairs := [][2]string{
		{"Yellow Submarine", "Red Sub"},
		{"", "anything at all"},
		{"anything at all", ""},
		{"short", "a much longer candidate string"},
		{"a much longer candidate string", "short"},
	}
	for _, p := range pairs {
		got := Compare(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("Compare(%q, %q) = %v, out of [0, 1]", p[0], p[1], got)
		}
	}
}

// The score is normalized by the length of the first argument only, so it
// must not be symmetric for differing-length inputs that share trigrams.
func TestCompareAsymmetry(t *testing.T) {
	forward := Compare("ab", "abcdef")
	backward := Compare("abcdef", "ab")
	if forward == backward {
		t.Errorf("Compare is unexpectedly symmetric: both directions scored %v", forward)
	}
}

func TestCompareEmptyCandidate(t *testing.T) {
	if got := Compare("some query", ""); got != 0.0 {
		t.Errorf("Compare(%q, %q) = %v, want 0.0", "some query", "", got)
	}
	// Both empty share the all-spaces trigram; this edge scores 1.0.
	if got := Compare("", ""); got != 1.0 {
		t.Errorf("Compare(%q, %q) = %v, want 1.0", "", "", got)
	}
}

func TestBestNRanking(t *testing.T) {
	candidates := []string{"Yellow Submarine", "Yellow Su bmarine", "Red Sub"}
	got := BestN("Yellow Submarine", candidates, func(s string) string { return s }, 2)

	if len(got) != 2 {
		t.Fatalf("BestN returned %d results, want 2", len(got))
	}
	if got[0].Value != "Yellow Submarine" || got[0].Score != 1.0 {
		t.Errorf("best match = (%q, %v), want (%q, 1.0)", got[0].Value, got[0].Score, "Yellow Submarine")
	}
	if got[1].Value != "Yellow Su bmarine" {
		t.Errorf("second match = %q, want %q", got[1].Value, "Yellow Su bmarine")
	}
	if got[1].Score >= 1.0 {
		t.Errorf("near-miss score = %v, want < 1.0", got[1].Score)
	}
	redSub := Compare("Yellow Submarine", "Red Sub")
	if got[1].Score <= redSub {
		t.Errorf("near-miss score %v not above unrelated score %v", got[1].Score, redSub)
	}
}

func TestBestNLimit(t *testing.T) {
	candidates := []string{"a", "b", "c"}
	key := func(s string) string { return s }

	if got := BestN("a", candidates, key, 2); len(got) != 2 {
		t.Errorf("BestN limit 2 returned %d results", len(got))
	}
	if got := BestN("a", candidates, key, 10); len(got) != 3 {
		t.Errorf("BestN limit 10 returned %d results, want all 3", len(got))
	}
	if got := BestN("a", candidates, key, 0); len(got) != 0 {
		t.Errorf("BestN limit 0 returned %d results, want 0", len(got))
	}
}

// Equal-scoring candidates must keep their input order.
func TestBestNStable(t *testing.T) {
	type entry struct {
		name  string
		field string
	}
	candidates := []entry{
		{"first", "same text"},
		{"second", "same text"},
		{"third", "same text"},
	}
	got := BestN("same text", candidates, func(e entry) string { return e.field }, 3)

	want := []string{"first", "second", "third"}
	for i, m := range got {
		if m.Value.name != want[i] {
			t.Errorf("result[%d] = %q, want %q", i, m.Value.name, want[i])
		}
	}
}
