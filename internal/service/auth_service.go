package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

const (
	minPasswordLength = 6
	maxUsernameLength = 50
)

// RegisterInput содержит все данные для регистрации
type RegisterInput struct {
	FullName string
	Username string
	Email    string
	Password string
}

// AuthService предоставляет методы регистрации и входа студентов
type AuthService struct {
	studentRepo repository.StudentRepository
	emailSvc    EmailService
}

// NewAuthService создает новый сервис аутентификации
func NewAuthService(studentRepo repository.StudentRepository, emailSvc EmailService) (*AuthService, error) {
	if studentRepo == nil {
		return nil, fmt.Errorf("StudentRepository is required for AuthService")
	}
	if emailSvc == nil {
		emailSvc = &NoopEmailService{}
	}
	return &AuthService{
		studentRepo: studentRepo,
		emailSvc:    emailSvc,
	}, nil
}

// Register регистрирует нового студента. При занятом имени пользователя
// возвращает ErrConflict, не создавая ни записи, ни сессии.
func (s *AuthService) Register(input RegisterInput) (*entity.Student, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)

	if input.FullName == "" || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", apperrors.ErrValidation)
	}
	if len(input.Username) > maxUsernameLength {
		return nil, fmt.Errorf("%w: username is too long", apperrors.ErrValidation)
	}
	if !strings.Contains(input.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email", apperrors.ErrValidation)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", apperrors.ErrValidation, minPasswordLength)
	}

	// Проверка занятости имени до создания. Уникальный индекс в БД закрывает
	// гонку двух одновременных регистраций.
	existing, err := s.studentRepo.GetByUsername(input.Username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: username is already taken", apperrors.ErrConflict)
	}

	student := &entity.Student{
		FullName: input.FullName,
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password, // хешируется хуком BeforeSave
		Role:     entity.RoleStudent,
	}
	if err := s.studentRepo.Create(student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	// Приветственное письмо best-effort, регистрацию не блокирует
	go func(email, name string) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.emailSvc.SendWelcome(ctx, email, name); err != nil {
			log.Printf("[AuthService] Не удалось отправить приветственное письмо username=%s: %v", student.Username, err)
		}
	}(student.Email, student.FullName)

	log.Printf("[AuthService] Зарегистрирован новый студент username=%s id=%d", student.Username, student.ID)
	return student, nil
}

// Login проверяет учетные данные. Неизвестное имя и неверный пароль дают
// одинаковый ErrUnauthorized, чтобы не раскрывать существование аккаунта.
func (s *AuthService) Login(username, password string) (*entity.Student, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	student, err := s.studentRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to load student: %w", err)
	}

	if !student.CheckPassword(password) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	return student, nil
}

// normalizeEmail приводит email к нижнему регистру без пробелов по краям
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
