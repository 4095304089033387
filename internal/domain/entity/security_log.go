package entity

import "time"

// Типы событий безопасности
const (
	LogTypeExamRetake        = "EXAM_RETAKE"
	LogTypeNavigationAttempt = "NAVIGATION_ATTEMPT"
	LogTypeTabSwitching      = "TAB_SWITCHING"
	LogTypeTimerManipulation = "TIMER_MANIPULATION"
)

// SecurityLog представляет запись аудита о подозрительном или заметном событии.
// Таблица append-only: записи никогда не обновляются и не удаляются.
// Ссылки на студента/экзамен/попытку необязательны - лог должен оставаться
// читаемым, даже если связанные записи были удалены.
type SecurityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID *uint     `gorm:"index" json:"student_id,omitempty"`
	ExamID    *uint     `gorm:"index" json:"exam_id,omitempty"`
	AttemptID *uint     `gorm:"index" json:"attempt_id,omitempty"`
	LogType   string    `gorm:"size:50;not null" json:"log_type"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	IPAddress string    `gorm:"size:45;not null;default:''" json:"ip_address"`
	UserAgent string    `gorm:"size:255;not null;default:''" json:"user_agent"`
	CreatedAt time.Time `gorm:"index" json:"timestamp"`
}

// TableName определяет имя таблицы для GORM
func (SecurityLog) TableName() string {
	return "security_logs"
}
