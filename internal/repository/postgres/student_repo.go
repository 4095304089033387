package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

// StudentRepo реализует repository.StudentRepository
type StudentRepo struct {
	db *gorm.DB
}

// NewStudentRepo создает новый репозиторий студентов
func NewStudentRepo(db *gorm.DB) *StudentRepo {
	return &StudentRepo{db: db}
}

// Create создает нового студента
func (r *StudentRepo) Create(student *entity.Student) error {
	return r.db.Create(student).Error
}

// GetByID возвращает студента по ID
func (r *StudentRepo) GetByID(id uint) (*entity.Student, error) {
	var student entity.Student
	err := r.db.First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetByUsername возвращает студента по имени пользователя.
// Поиск регистрозависимый: точное совпадение username.
func (r *StudentRepo) GetByUsername(username string) (*entity.Student, error) {
	var student entity.Student
	err := r.db.Where("username = ?", username).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// UpdateProfile обновляет профиль студента без изменения пароля
func (r *StudentRepo) UpdateProfile(studentID uint, updates map[string]interface{}) error {
	// Пароль через этот метод не обновляется
	delete(updates, "password")
	updates["updated_at"] = time.Now()

	return r.db.Model(&entity.Student{}).Where("id = ?", studentID).Updates(updates).Error
}

// Count возвращает общее количество студентов
func (r *StudentRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.Student{}).Count(&count).Error
	return count, err
}
