// Package sentiment scores free-text reflections on the 1-5 mood scale.
package sentiment

import "strings"

const (
	neutral = 3.0
	step    = 0.5
	minimum = 1.0
	maximum = 5.0
)

var (
	positive = []string{"happy", "peaceful", "calm", "grateful", "joy", "love", "good", "better", "clear", "light"}
	negative = []string{"anxious", "stressed", "sad", "tired", "overwhelmed", "worried", "pain", "difficult", "heavy"}
)

// Score rates text from 1 (negative) to 5 (positive). Each whitespace-separated
// word containing a positive keyword adds 0.5 and each containing a negative
// keyword subtracts 0.5; a word may do both.
func Score(text string) float64 {
	score := neutral
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if containsAny(word, positive) {
			score += step
		}
		if containsAny(word, negative) {
			score -= step
		}
	}
	if score < minimum {
		return minimum
	}
	if score > maximum {
		return maximum
	}
	return score
}

func containsAny(word string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(word, k) {
			return true
		}
	}
	return false
}
