package service

import (
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

func createTestStudentService(repo *MockStudentRepository) *StudentService {
	return &StudentService{
		studentRepo: repo,
		bioPolicy:   bluemonday.UGCPolicy(),
	}
}

func TestStudentService_UpdateProfile_SanitizesBio(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockRepo.On("UpdateProfile", uint(1), mock.MatchedBy(func(updates map[string]interface{}) bool {
		bio := updates["bio"].(string)
		return assert.ObjectsAreEqual("Люблю математику", bio)
	})).Return(nil)
	mockRepo.On("GetByID", uint(1)).Return(&entity.Student{ID: 1}, nil)

	svc := createTestStudentService(mockRepo)

	_, err := svc.UpdateProfile(1, UpdateProfileInput{
		FullName: "Иван Иванов",
		Email:    "ivan@example.com",
		Bio:      `<script>alert("xss")</script>Люблю математику`,
	})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestStudentService_UpdateProfile_KeepsSafeMarkup(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	var savedBio string
	mockRepo.On("UpdateProfile", uint(1), mock.Anything).Run(func(args mock.Arguments) {
		savedBio = args.Get(1).(map[string]interface{})["bio"].(string)
	}).Return(nil)
	mockRepo.On("GetByID", uint(1)).Return(&entity.Student{ID: 1}, nil)

	svc := createTestStudentService(mockRepo)

	_, err := svc.UpdateProfile(1, UpdateProfileInput{
		FullName: "Иван Иванов",
		Email:    "ivan@example.com",
		Bio:      "Учусь на <b>отлично</b>",
	})

	require.NoError(t, err)
	assert.Equal(t, "Учусь на <b>отлично</b>", savedBio, "безопасная разметка сохраняется")
}

func TestStudentService_UpdateProfile_Validation(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	svc := createTestStudentService(mockRepo)

	_, err := svc.UpdateProfile(1, UpdateProfileInput{FullName: "", Email: "ivan@example.com"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpdateProfile(1, UpdateProfileInput{FullName: "Иван", Email: "not-an-email"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	mockRepo.AssertNotCalled(t, "UpdateProfile")
}

func TestStudentService_GetProfile(t *testing.T) {
	mockRepo := new(MockStudentRepository)
	mockRepo.On("GetByID", uint(1)).Return(&entity.Student{ID: 1, Username: "ivan"}, nil)

	svc := createTestStudentService(mockRepo)

	student, err := svc.GetProfile(1)

	require.NoError(t, err)
	assert.Equal(t, "ivan", student.Username)
}
