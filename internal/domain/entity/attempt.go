package entity

import "time"

// ExamAttempt представляет одну попытку прохождения экзамена студентом.
// Создается при старте, один раз мутируется при отправке (completed=true,
// end_time), после этого неизменяема.
type ExamAttempt struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	StudentID uint       `gorm:"not null;index" json:"student_id"`
	ExamID    uint       `gorm:"not null;index" json:"exam_id"`
	StartTime time.Time  `gorm:"not null" json:"start_time"`
	EndTime   *time.Time `gorm:"type:timestamp" json:"end_time,omitempty"`
	Completed bool       `gorm:"not null;default:false" json:"completed"`
	IPAddress string     `gorm:"size:45;not null;default:''" json:"-"`
	UserAgent string     `gorm:"size:255;not null;default:''" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// Elapsed возвращает время, прошедшее с начала попытки
func (a *ExamAttempt) Elapsed(now time.Time) time.Duration {
	return now.Sub(a.StartTime)
}
