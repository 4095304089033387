package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Create создает новую попытку экзамена
func (r *AttemptRepo) Create(attempt *entity.ExamAttempt) error {
	return r.db.Create(attempt).Error
}

// GetByID возвращает попытку по ID
func (r *AttemptRepo) GetByID(id uint) (*entity.ExamAttempt, error) {
	var attempt entity.ExamAttempt
	err := r.db.First(&attempt, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// Count возвращает общее количество попыток
func (r *AttemptRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.ExamAttempt{}).Count(&count).Error
	return count, err
}
