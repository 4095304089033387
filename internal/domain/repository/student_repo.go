package repository

import (
	"github.com/yourusername/exam-portal-api/internal/domain/entity"
)

// StudentRepository определяет методы для работы со студентами
type StudentRepository interface {
	Create(student *entity.Student) error
	GetByID(id uint) (*entity.Student, error)
	GetByUsername(username string) (*entity.Student, error)
	// UpdateProfile обновляет только указанные поля профиля, не затрагивая пароль
	UpdateProfile(studentID uint, updates map[string]interface{}) error
	Count() (int64, error)
}
