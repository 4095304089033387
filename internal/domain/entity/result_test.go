package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateScore(t *testing.T) {
	tests := []struct {
		name     string
		correct  int
		total    int
		expected int
	}{
		{"7 из 10", 7, 10, 70},
		{"1 из 3 округляется вверх", 1, 3, 33},
		{"2 из 3 округляется вверх", 2, 3, 67},
		{"все правильно", 10, 10, 100},
		{"ни одного", 0, 10, 0},
		{"1 из 8", 1, 8, 13},
		{"нет вопросов", 0, 0, 0},
		{"отрицательный total", 3, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateScore(tt.correct, tt.total))
		})
	}
}
