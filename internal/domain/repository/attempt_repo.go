package repository

import (
	"github.com/yourusername/exam-portal-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками экзаменов
type AttemptRepository interface {
	Create(attempt *entity.ExamAttempt) error
	GetByID(id uint) (*entity.ExamAttempt, error)
	Count() (int64, error)
}
