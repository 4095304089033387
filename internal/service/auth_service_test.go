package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

// MockStudentRepository реализует repository.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(student *entity.Student) error {
	args := m.Called(student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(id uint) (*entity.Student, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) GetByUsername(username string) (*entity.Student, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Student), args.Error(1)
}

func (m *MockStudentRepository) UpdateProfile(studentID uint, updates map[string]interface{}) error {
	args := m.Called(studentID, updates)
	return args.Error(0)
}

func (m *MockStudentRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func createTestAuthService(studentRepo *MockStudentRepository) *AuthService {
	return &AuthService{
		studentRepo: studentRepo,
		emailSvc:    &NoopEmailService{},
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register_Success(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockRepo.On("GetByUsername", "ivan").Return(nil, apperrors.ErrNotFound)
	mockRepo.On("Create", mock.MatchedBy(func(s *entity.Student) bool {
		return s.Username == "ivan" && s.Role == entity.RoleStudent
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*entity.Student).ID = 1
	}).Return(nil)

	svc := createTestAuthService(mockRepo)

	student, err := svc.Register(RegisterInput{
		FullName: "Иван Иванов",
		Username: "ivan",
		Email:    "Ivan@Example.COM",
		Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), student.ID)
	assert.Equal(t, "ivan@example.com", student.Email, "email нормализуется к нижнему регистру")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	existing := &entity.Student{ID: 1, Username: "ivan"}
	mockRepo.On("GetByUsername", "ivan").Return(existing, nil)

	svc := createTestAuthService(mockRepo)

	student, err := svc.Register(RegisterInput{
		FullName: "Иван Иванов",
		Username: "ivan",
		Email:    "ivan@example.com",
		Password: "secret123",
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Nil(t, student)
	// Запись не создается
	mockRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"пустое имя", RegisterInput{Username: "ivan", Email: "a@b.c", Password: "secret123"}},
		{"пустой username", RegisterInput{FullName: "Иван", Email: "a@b.c", Password: "secret123"}},
		{"невалидный email", RegisterInput{FullName: "Иван", Username: "ivan", Email: "nope", Password: "secret123"}},
		{"короткий пароль", RegisterInput{FullName: "Иван", Username: "ivan", Email: "a@b.c", Password: "123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockStudentRepository)
			mockRepo.On("GetByUsername", mock.Anything).Return(nil, apperrors.ErrNotFound)
			svc := createTestAuthService(mockRepo)

			_, err := svc.Register(tt.input)

			assert.ErrorIs(t, err, apperrors.ErrValidation)
			mockRepo.AssertNotCalled(t, "Create")
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	student := &entity.Student{
		ID:       1,
		Username: "ivan",
		Password: hashPassword(t, "secret123"),
	}
	mockRepo.On("GetByUsername", "ivan").Return(student, nil)

	svc := createTestAuthService(mockRepo)

	got, err := svc.Login("ivan", "secret123")

	require.NoError(t, err)
	assert.Equal(t, uint(1), got.ID)
}

func TestAuthService_Login_GenericError(t *testing.T) {
	// Неизвестное имя и неверный пароль дают неотличимые ошибки
	mockRepo := new(MockStudentRepository)
	student := &entity.Student{
		ID:       1,
		Username: "ivan",
		Password: hashPassword(t, "secret123"),
	}
	mockRepo.On("GetByUsername", "ivan").Return(student, nil)
	mockRepo.On("GetByUsername", "ghost").Return(nil, apperrors.ErrNotFound)

	svc := createTestAuthService(mockRepo)

	_, errWrongPassword := svc.Login("ivan", "wrong")
	_, errUnknownUser := svc.Login("ghost", "secret123")

	assert.ErrorIs(t, errWrongPassword, apperrors.ErrUnauthorized)
	assert.ErrorIs(t, errUnknownUser, apperrors.ErrUnauthorized)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}
