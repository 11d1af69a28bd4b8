// Package scoring computes typing correctness, speed and accuracy.
package scoring

import "math"

const charsPerWord = 5.0

// CorrectCount counts positions where typed and reference hold the same rune.
// Only the overlapping prefix of the two strings is compared.
func CorrectCount(typed, reference string) int {
	t := []rune(typed)
	r := []rune(reference)
	n := min(len(t), len(r))
	count := 0
	for i := 0; i < n; i++ {
		if t[i] == r[i] {
			count++
		}
	}
	return count
}

// GrossWPM returns typed words per minute, one word being five characters.
// Zero elapsed time yields 0.
func GrossWPM(typedChars, elapsedSeconds int) float64 {
	if elapsedSeconds <= 0 || typedChars <= 0 {
		return 0
	}
	words := float64(typedChars) / charsPerWord
	minutes := float64(elapsedSeconds) / 60.0
	return words / minutes
}

// Accuracy returns the percentage of correct characters, rounded to two
// decimals. Nothing typed counts as 100%.
func Accuracy(correctChars, typedChars int) float64 {
	if typedChars <= 0 {
		return 100
	}
	return Round2(float64(correctChars) / float64(typedChars) * 100)
}

// NetWPM penalizes gross speed by the accuracy percentage.
func NetWPM(grossWPM, accuracy float64) float64 {
	if accuracy >= 100 {
		return grossWPM
	}
	if accuracy <= 0 {
		return 0
	}
	return grossWPM * (accuracy / 100)
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
