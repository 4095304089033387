package entity

import (
	"math"
	"time"
)

// ExamResult представляет итоговый результат завершенной попытки.
// Создается атомарно при отправке экзамена вместе с ответами и не мутируется.
type ExamResult struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `gorm:"not null;index:idx_results_student_exam" json:"student_id"`
	ExamID         uint      `gorm:"not null;index:idx_results_student_exam" json:"exam_id"`
	Score          int       `gorm:"not null;default:0" json:"score"` // 0-100
	CompletionTime time.Time `gorm:"not null" json:"completion_time"`
}

// TableName определяет имя таблицы для GORM
func (ExamResult) TableName() string {
	return "exam_results"
}

// CalculateScore вычисляет процентный балл: round(100 * correct / total).
// При total <= 0 возвращает 0.
func CalculateScore(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

// StudentAnswer представляет сохраненный ответ студента на один вопрос
type StudentAnswer struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ResultID       uint         `gorm:"not null;index" json:"result_id"`
	QuestionID     uint         `gorm:"not null;index" json:"question_id"`
	SelectedOption AnswerOption `gorm:"size:1;not null" json:"selected_option"`
}

// TableName определяет имя таблицы для GORM
func (StudentAnswer) TableName() string {
	return "student_answers"
}
