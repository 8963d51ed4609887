package pedometer

import "testing"

func TestAvailable(t *testing.T) {
	t.Parallel()
	if Available() {
		t.Fatalf("no step source exists on a terminal host")
	}
}

func TestSuggestBreak(t *testing.T) {
	t.Parallel()
	cases := []struct {
		minutes int
		want    bool
	}{
		{0, false},
		{45, false},
		{60, false},
		{61, true},
		{180, true},
	}
	for _, tc := range cases {
		if got := SuggestBreak(0, tc.minutes); got != tc.want {
			t.Fatalf("SuggestBreak(0, %d) = %v, want %v", tc.minutes, got, tc.want)
		}
	}
}
