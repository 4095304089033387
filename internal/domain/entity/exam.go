package entity

import "time"

// Exam представляет экзамен с фиксированным набором вопросов
type Exam struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:100;not null" json:"title"`
	Description    string    `gorm:"size:500;not null;default:''" json:"description"`
	Duration       int       `gorm:"not null;default:15" json:"duration"` // в минутах, > 0
	TotalQuestions int       `gorm:"not null;default:0" json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Exam) TableName() string {
	return "exams"
}

// TimeLimit возвращает продолжительность экзамена как time.Duration
func (e *Exam) TimeLimit() time.Duration {
	return time.Duration(e.Duration) * time.Minute
}
