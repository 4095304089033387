package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_IsCorrect_CorrectAnswer(t *testing.T) {
	// Arrange
	question := &ExamQuestion{
		ID:            1,
		ExamID:        1,
		QuestionText:  "Сколько будет 2 + 2?",
		OptionA:       "3",
		OptionB:       "4",
		OptionC:       "5",
		OptionD:       "22",
		CorrectOption: "B",
	}

	// Act & Assert
	assert.True(t, question.IsCorrect(OptionB), "IsCorrect должен вернуть true для правильного ответа")
}

func TestQuestion_IsCorrect_CaseInsensitive(t *testing.T) {
	// Arrange
	question := &ExamQuestion{CorrectOption: "C"}

	// Act & Assert: регистр не должен влиять на проверку
	assert.True(t, question.IsCorrect("c"), "строчный вариант должен засчитываться")
	assert.True(t, question.IsCorrect("C"), "прописной вариант должен засчитываться")
}

func TestQuestion_IsCorrect_IncorrectAnswer(t *testing.T) {
	// Arrange
	question := &ExamQuestion{CorrectOption: "A"}

	// Act & Assert
	assert.False(t, question.IsCorrect(OptionB), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(OptionC), "IsCorrect должен вернуть false для неправильного ответа")
	assert.False(t, question.IsCorrect(""), "пустой ответ не должен засчитываться")
}

func TestParseAnswerOption(t *testing.T) {
	tests := []struct {
		raw      string
		expected AnswerOption
		ok       bool
	}{
		{"A", OptionA, true},
		{"b", OptionB, true},
		{" C ", OptionC, true},
		{"d", OptionD, true},
		{"E", "", false},
		{"", "", false},
		{"AB", "", false},
		{"1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			opt, ok := ParseAnswerOption(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, opt)
		})
	}
}

func TestQuestion_OptionText(t *testing.T) {
	question := &ExamQuestion{
		OptionA: "Первый",
		OptionB: "Второй",
		OptionC: "Третий",
		OptionD: "Четвертый",
	}

	assert.Equal(t, "Первый", question.OptionText(OptionA))
	assert.Equal(t, "Четвертый", question.OptionText(OptionD))
	assert.Equal(t, "", question.OptionText("X"), "неизвестный вариант дает пустой текст")
}
