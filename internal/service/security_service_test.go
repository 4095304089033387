package service

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

func createTestSecurityService() (*SecurityService, *MockSecurityLogRepository, *MockAttemptRepository) {
	logRepo := new(MockSecurityLogRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := &SecurityService{
		logRepo:     logRepo,
		attemptRepo: attemptRepo,
		monitor:     nil,
	}
	return svc, logRepo, attemptRepo
}

func TestSecurityService_RecordSubmitSignals_Navigation(t *testing.T) {
	svc, logRepo, attemptRepo := createTestSecurityService()

	attempt := &entity.ExamAttempt{ID: 7, StudentID: 1, ExamID: 5}
	attemptRepo.On("GetByID", uint(7)).Return(attempt, nil)
	logRepo.On("Create", mock.MatchedBy(func(l *entity.SecurityLog) bool {
		return l.LogType == entity.LogTypeNavigationAttempt &&
			l.ExamID != nil && *l.ExamID == 5 &&
			l.AttemptID != nil && *l.AttemptID == 7
	})).Return(nil).Once()

	svc.RecordSubmitSignals(1, 7, "navigation_attempt", 0, "10.0.0.1", "test-agent")

	logRepo.AssertExpectations(t)
}

func TestSecurityService_RecordSubmitSignals_TabSwitching(t *testing.T) {
	svc, logRepo, attemptRepo := createTestSecurityService()

	attempt := &entity.ExamAttempt{ID: 7, StudentID: 1, ExamID: 5}
	attemptRepo.On("GetByID", uint(7)).Return(attempt, nil)
	logRepo.On("Create", mock.MatchedBy(func(l *entity.SecurityLog) bool {
		return l.LogType == entity.LogTypeTabSwitching
	})).Return(nil).Once()

	svc.RecordSubmitSignals(1, 7, "", 5, "10.0.0.1", "test-agent")

	logRepo.AssertExpectations(t)
}

func TestSecurityService_RecordSubmitSignals_BelowThreshold(t *testing.T) {
	svc, logRepo, attemptRepo := createTestSecurityService()

	// Два переключения вкладок ниже порога, события нет
	svc.RecordSubmitSignals(1, 7, "", 2, "10.0.0.1", "test-agent")

	logRepo.AssertNotCalled(t, "Create")
	attemptRepo.AssertNotCalled(t, "GetByID")
}

func TestSecurityService_RecordSubmitSignals_UnknownAttemptSuppressed(t *testing.T) {
	svc, logRepo, attemptRepo := createTestSecurityService()

	attemptRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	svc.RecordSubmitSignals(1, 99, "navigation_attempt", 5, "10.0.0.1", "test-agent")

	logRepo.AssertNotCalled(t, "Create")
}

func TestSecurityService_RecordSubmitSignals_BothSignals(t *testing.T) {
	svc, logRepo, attemptRepo := createTestSecurityService()

	attempt := &entity.ExamAttempt{ID: 7, StudentID: 1, ExamID: 5}
	attemptRepo.On("GetByID", uint(7)).Return(attempt, nil)
	logRepo.On("Create", mock.AnythingOfType("*entity.SecurityLog")).Return(nil)

	svc.RecordSubmitSignals(1, 7, "navigation_attempt", 4, "10.0.0.1", "test-agent")

	logRepo.AssertNumberOfCalls(t, "Create", 2)
}

func TestSecurityService_LogEvent_FailureSwallowed(t *testing.T) {
	svc, logRepo, _ := createTestSecurityService()

	logRepo.On("Create", mock.Anything).Return(apperrors.ErrNotFound)

	// Паники и ошибки наружу быть не должно
	require.NotPanics(t, func() {
		studentID := uint(1)
		svc.LogEvent(&entity.SecurityLog{
			StudentID: &studentID,
			LogType:   entity.LogTypeNavigationAttempt,
			Message:   "test",
		})
	})
}
