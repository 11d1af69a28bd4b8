package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrectCountPrefixes(t *testing.T) {
	ref := "To be, or not to be."
	runes := []rune(ref)
	for i := 0; i <= len(runes); i++ {
		prefix := string(runes[:i])
		assert.Equal(t, i, CorrectCount(prefix, ref), "prefix %q", prefix)
	}
}

func TestCorrectCountBounded(t *testing.T) {
	cases := []struct {
		typed string
		ref   string
		want  int
	}{
		{"", "abc", 0},
		{"abc", "", 0},
		{"axc", "abc", 2},
		{"abcdef", "abc", 3},
		{"ABC", "abc", 0},
		{"a c", "a  c", 2},
		{"résumé", "resume", 4},
	}
	for _, tc := range cases {
		got := CorrectCount(tc.typed, tc.ref)
		assert.Equal(t, tc.want, got, "CorrectCount(%q, %q)", tc.typed, tc.ref)
		limit := min(len([]rune(tc.typed)), len([]rune(tc.ref)))
		assert.LessOrEqual(t, got, limit)
	}
}

func TestGrossWPM(t *testing.T) {
	assert.Equal(t, 0.0, GrossWPM(120, 0))
	assert.Equal(t, 0.0, GrossWPM(0, 30))
	assert.InDelta(t, 50.0, GrossWPM(250, 60), 1e-9)
	assert.InDelta(t, 24.0, GrossWPM(60, 30), 1e-9)
}

func TestAccuracy(t *testing.T) {
	assert.Equal(t, 100.0, Accuracy(0, 0))
	assert.Equal(t, 0.0, Accuracy(0, 1))
	assert.Equal(t, 50.0, Accuracy(1, 2))
	assert.Equal(t, 66.67, Accuracy(2, 3))
	assert.Equal(t, 33.33, Accuracy(1, 3))
}

func TestNetWPMNeverExceedsGross(t *testing.T) {
	gross := GrossWPM(250, 60)
	for _, typed := range []int{1, 3, 7, 250} {
		for correct := 0; correct <= typed; correct++ {
			acc := Accuracy(correct, typed)
			net := NetWPM(gross, acc)
			assert.LessOrEqual(t, net, gross)
			if acc == 100 {
				assert.Equal(t, gross, net)
			} else {
				assert.Less(t, net, gross)
			}
		}
	}
}
