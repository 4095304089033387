package repository

import (
	"github.com/yourusername/exam-portal-api/internal/domain/entity"
)

// SecurityLogView - строка лога безопасности, обогащенная именем студента и
// названием экзамена. Оба поля nullable: лог обязан отображаться, даже если
// студент или экзамен были удалены после записи.
type SecurityLogView struct {
	Log             entity.SecurityLog
	StudentUsername *string
	ExamTitle       *string
}

// SecurityLogRepository определяет методы для работы с журналом безопасности.
// Журнал append-only: интерфейс намеренно не содержит Update/Delete.
type SecurityLogRepository interface {
	Create(log *entity.SecurityLog) error
	// ListRecent возвращает последние записи (не более limit, максимум 100)
	// в обратном хронологическом порядке.
	ListRecent(limit int) ([]SecurityLogView, error)
	// ListByStudent возвращает все записи одного студента, новые первыми.
	ListByStudent(studentID uint) ([]SecurityLogView, error)
}
