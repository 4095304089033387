package service

import (
	"fmt"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
)

// DashboardCounts - сводные счетчики административного дашборда
type DashboardCounts struct {
	Students int64 `json:"students"`
	Exams    int64 `json:"exams"`
	Attempts int64 `json:"attempts"`
	Results  int64 `json:"results"`
}

// StudentSecurityReport - студент вместе со всей его историей событий
type StudentSecurityReport struct {
	Student *entity.Student
	Logs    []repository.SecurityLogView
}

// AdminService предоставляет административную отчетность
type AdminService struct {
	studentRepo repository.StudentRepository
	examRepo    repository.ExamRepository
	attemptRepo repository.AttemptRepository
	resultRepo  repository.ResultRepository
	logRepo     repository.SecurityLogRepository
}

// NewAdminService создает новый административный сервис
func NewAdminService(
	studentRepo repository.StudentRepository,
	examRepo repository.ExamRepository,
	attemptRepo repository.AttemptRepository,
	resultRepo repository.ResultRepository,
	logRepo repository.SecurityLogRepository,
) (*AdminService, error) {
	if studentRepo == nil {
		return nil, fmt.Errorf("StudentRepository is required for AdminService")
	}
	if examRepo == nil {
		return nil, fmt.Errorf("ExamRepository is required for AdminService")
	}
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for AdminService")
	}
	if resultRepo == nil {
		return nil, fmt.Errorf("ResultRepository is required for AdminService")
	}
	if logRepo == nil {
		return nil, fmt.Errorf("SecurityLogRepository is required for AdminService")
	}
	return &AdminService{
		studentRepo: studentRepo,
		examRepo:    examRepo,
		attemptRepo: attemptRepo,
		resultRepo:  resultRepo,
		logRepo:     logRepo,
	}, nil
}

// GetDashboardCounts возвращает сводные счетчики по всем таблицам
func (s *AdminService) GetDashboardCounts() (*DashboardCounts, error) {
	students, err := s.studentRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}
	exams, err := s.examRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count exams: %w", err)
	}
	attempts, err := s.attemptRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count attempts: %w", err)
	}
	results, err := s.resultRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count results: %w", err)
	}

	return &DashboardCounts{
		Students: students,
		Exams:    exams,
		Attempts: attempts,
		Results:  results,
	}, nil
}

// GetSecurityLogs возвращает последние события журнала безопасности.
// Репозиторий ограничивает выборку сотней записей.
func (s *AdminService) GetSecurityLogs(limit int) ([]repository.SecurityLogView, error) {
	return s.logRepo.ListRecent(limit)
}

// GetStudentSecurityReport возвращает студента и всю его историю событий.
// Для несуществующего студента ErrNotFound.
func (s *AdminService) GetStudentSecurityReport(studentID uint) (*StudentSecurityReport, error) {
	student, err := s.studentRepo.GetByID(studentID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load security logs: %w", err)
	}

	return &StudentSecurityReport{Student: student, Logs: logs}, nil
}

// GetResultsForExport возвращает все результаты для выгрузки в Excel
func (s *AdminService) GetResultsForExport() ([]repository.ResultExportRow, error) {
	return s.resultRepo.ListAllForExport()
}
