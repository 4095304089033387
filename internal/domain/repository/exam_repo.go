package repository

import (
	"github.com/yourusername/exam-portal-api/internal/domain/entity"
)

// ExamRepository определяет методы для работы с экзаменами
type ExamRepository interface {
	GetByID(id uint) (*entity.Exam, error)
	List() ([]entity.Exam, error)
	Count() (int64, error)
}

// QuestionRepository определяет методы для работы с вопросами экзаменов
type QuestionRepository interface {
	// GetByExamID возвращает вопросы экзамена в стабильном порядке (по id),
	// одинаковом между стартом и отправкой одной попытки.
	GetByExamID(examID uint) ([]entity.ExamQuestion, error)
}
