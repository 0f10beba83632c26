package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaesarShift(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		shift float64
		want  string
	}{
		{"shifts and uppercases", "abc", 2, "CDE"},
		{"wraps past Z", "xyz", 3, "ABC"},
		{"zero shift", "Hello", 0, "HELLO"},
		{"rot13 keeps punctuation", "Hello, World!", 13, "URYYB, JBEYQ!"},
		{"large shift", "abc", 28, "CDE"},
		{"negative shift inside alphabet", "d", -3, "A"},
		{"negative shift is not wrapped", "A", -1, "@"},
		{"negative shift below A", "B", -5, "="},
		{"one past Z is in range", "[", 0, "A"},
		{"one past Z shifted", "[", 1, "B"},
		{"fractional shift", "A", 1.5, "B"},
		{"negative fractional shift", "A", -1.5, "?"},
		{"non ascii passes through", "café", 1, "DBGÉ"},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CaesarShift(tt.text, tt.shift))
		})
	}
}

func TestCaesarShift_RoundTrip(t *testing.T) {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	for k := 0; k < 26; k++ {
		shifted := CaesarShift(alphabet, float64(k))
		assert.Equal(t, alphabet, CaesarShift(shifted, float64(26-k)), "shift %d", k)
	}
}

func TestCaesarShift_NonLettersAreFixedPoints(t *testing.T) {
	const nonLetters = " 0123456789!\"#$%&'()*+,-./:;<=>?@\\]^_`{|}~\t\n"

	for _, shift := range []float64{-27, -1, 0, 1, 13, 25, 1000} {
		assert.Equal(t, nonLetters, CaesarShift(nonLetters, shift), "shift %v", shift)
	}
}

func TestCaesarShift_PreservesPositions(t *testing.T) {
	got := CaesarShift("a-b c", 1)
	assert.Equal(t, "B-C D", got)
}
