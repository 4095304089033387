package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

type adminServiceMocks struct {
	studentRepo *MockStudentRepository
	examRepo    *MockExamRepository
	attemptRepo *MockAttemptRepository
	resultRepo  *MockResultRepository
	logRepo     *MockSecurityLogRepository
}

func createTestAdminService() (*AdminService, *adminServiceMocks) {
	m := &adminServiceMocks{
		studentRepo: new(MockStudentRepository),
		examRepo:    new(MockExamRepository),
		attemptRepo: new(MockAttemptRepository),
		resultRepo:  new(MockResultRepository),
		logRepo:     new(MockSecurityLogRepository),
	}
	svc := &AdminService{
		studentRepo: m.studentRepo,
		examRepo:    m.examRepo,
		attemptRepo: m.attemptRepo,
		resultRepo:  m.resultRepo,
		logRepo:     m.logRepo,
	}
	return svc, m
}

func TestAdminService_GetDashboardCounts(t *testing.T) {
	svc, m := createTestAdminService()

	m.studentRepo.On("Count").Return(int64(10), nil)
	m.examRepo.On("Count").Return(int64(2), nil)
	m.attemptRepo.On("Count").Return(int64(15), nil)
	m.resultRepo.On("Count").Return(int64(12), nil)

	counts, err := svc.GetDashboardCounts()

	require.NoError(t, err)
	assert.Equal(t, int64(10), counts.Students)
	assert.Equal(t, int64(2), counts.Exams)
	assert.Equal(t, int64(15), counts.Attempts)
	assert.Equal(t, int64(12), counts.Results)
}

func TestAdminService_GetStudentSecurityReport(t *testing.T) {
	svc, m := createTestAdminService()

	student := &entity.Student{ID: 1, Username: "ivan"}
	studentID := uint(1)
	logs := []repository.SecurityLogView{
		{Log: entity.SecurityLog{ID: 3, StudentID: &studentID, LogType: entity.LogTypeTabSwitching}},
		{Log: entity.SecurityLog{ID: 1, StudentID: &studentID, LogType: entity.LogTypeExamRetake}},
	}

	m.studentRepo.On("GetByID", uint(1)).Return(student, nil)
	m.logRepo.On("ListByStudent", uint(1)).Return(logs, nil)

	report, err := svc.GetStudentSecurityReport(1)

	require.NoError(t, err)
	assert.Equal(t, "ivan", report.Student.Username)
	assert.Len(t, report.Logs, 2)
}

func TestAdminService_GetStudentSecurityReport_StudentNotFound(t *testing.T) {
	svc, m := createTestAdminService()

	m.studentRepo.On("GetByID", uint(99)).Return(nil, apperrors.ErrNotFound)

	_, err := svc.GetStudentSecurityReport(99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	m.logRepo.AssertNotCalled(t, "ListByStudent")
}

func TestAdminService_GetSecurityLogs(t *testing.T) {
	svc, m := createTestAdminService()

	m.logRepo.On("ListRecent", 50).Return([]repository.SecurityLogView{}, nil)

	logs, err := svc.GetSecurityLogs(50)

	require.NoError(t, err)
	assert.Empty(t, logs)
	m.logRepo.AssertExpectations(t)
}
