package entity

import "strings"

// AnswerOption - ограниченный тип для варианта ответа (A, B, C или D)
type AnswerOption string

// Допустимые варианты ответа
const (
	OptionA AnswerOption = "A"
	OptionB AnswerOption = "B"
	OptionC AnswerOption = "C"
	OptionD AnswerOption = "D"
)

// ParseAnswerOption приводит клиентское значение к каноническому варианту.
// Сравнение регистронезависимое; неизвестные значения отбрасываются на границе.
func ParseAnswerOption(raw string) (AnswerOption, bool) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A":
		return OptionA, true
	case "B":
		return OptionB, true
	case "C":
		return OptionC, true
	case "D":
		return OptionD, true
	default:
		return "", false
	}
}

// ExamQuestion представляет вопрос экзамена с четырьмя вариантами ответа
type ExamQuestion struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ExamID        uint   `gorm:"not null;index" json:"exam_id"`
	QuestionText  string `gorm:"size:500;not null" json:"question_text"`
	OptionA       string `gorm:"size:255;not null" json:"option_a"`
	OptionB       string `gorm:"size:255;not null" json:"option_b"`
	OptionC       string `gorm:"size:255;not null" json:"option_c"`
	OptionD       string `gorm:"size:255;not null" json:"option_d"`
	CorrectOption string `gorm:"size:1;not null" json:"-"` // Скрыто от клиента
}

// TableName определяет имя таблицы для GORM
func (ExamQuestion) TableName() string {
	return "exam_questions"
}

// IsCorrect проверяет выбранный вариант регистронезависимо
func (q *ExamQuestion) IsCorrect(selected AnswerOption) bool {
	return strings.EqualFold(string(selected), q.CorrectOption)
}

// OptionText возвращает текст варианта по его ключу
func (q *ExamQuestion) OptionText(opt AnswerOption) string {
	switch opt {
	case OptionA:
		return q.OptionA
	case OptionB:
		return q.OptionB
	case OptionC:
		return q.OptionC
	case OptionD:
		return q.OptionD
	default:
		return ""
	}
}
