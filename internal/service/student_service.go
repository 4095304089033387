package service

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

// UpdateProfileInput содержит редактируемые поля профиля
type UpdateProfileInput struct {
	FullName string
	Email    string
	Bio      string
}

// StudentService предоставляет операции с профилем студента
type StudentService struct {
	studentRepo repository.StudentRepository

	// bioPolicy вычищает HTML из биографии перед сохранением.
	// Биография отображается другим пользователям, поэтому проходит
	// санитизацию на записи, а не при выводе.
	bioPolicy *bluemonday.Policy
}

// NewStudentService создает новый сервис профилей
func NewStudentService(studentRepo repository.StudentRepository) (*StudentService, error) {
	if studentRepo == nil {
		return nil, fmt.Errorf("StudentRepository is required for StudentService")
	}
	return &StudentService{
		studentRepo: studentRepo,
		bioPolicy:   bluemonday.UGCPolicy(),
	}, nil
}

// GetProfile возвращает свежую запись студента из БД
func (s *StudentService) GetProfile(studentID uint) (*entity.Student, error) {
	return s.studentRepo.GetByID(studentID)
}

// UpdateProfile обновляет имя, email и биографию. Пароль и роль этим путем
// недоступны. Возвращает обновленную запись.
func (s *StudentService) UpdateProfile(studentID uint, input UpdateProfileInput) (*entity.Student, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = normalizeEmail(input.Email)

	if input.FullName == "" {
		return nil, fmt.Errorf("%w: fullname is required", apperrors.ErrValidation)
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}

	updates := map[string]interface{}{
		"fullname": input.FullName,
		"email":    input.Email,
		"bio":      s.bioPolicy.Sanitize(input.Bio),
	}
	if err := s.studentRepo.UpdateProfile(studentID, updates); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.studentRepo.GetByID(studentID)
}
