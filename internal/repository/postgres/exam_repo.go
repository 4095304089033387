package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

// ExamRepo реализует repository.ExamRepository
type ExamRepo struct {
	db *gorm.DB
}

// NewExamRepo создает новый репозиторий экзаменов
func NewExamRepo(db *gorm.DB) *ExamRepo {
	return &ExamRepo{db: db}
}

// GetByID возвращает экзамен по ID
func (r *ExamRepo) GetByID(id uint) (*entity.Exam, error) {
	var exam entity.Exam
	err := r.db.First(&exam, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &exam, nil
}

// List возвращает все экзамены в порядке создания
func (r *ExamRepo) List() ([]entity.Exam, error) {
	var exams []entity.Exam
	err := r.db.Order("id").Find(&exams).Error
	return exams, err
}

// Count возвращает общее количество экзаменов
func (r *ExamRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Exam{}).Count(&count).Error
	return count, err
}

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// GetByExamID возвращает вопросы экзамена, отсортированные по id.
// Порядок стабилен между стартом и отправкой одной попытки.
func (r *QuestionRepo) GetByExamID(examID uint) ([]entity.ExamQuestion, error) {
	var questions []entity.ExamQuestion
	err := r.db.Where("exam_id = ?", examID).Order("id").Find(&questions).Error
	return questions, err
}
