package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	"github.com/yourusername/exam-portal-api/internal/websocket"
)

const (
	// securityEventNavigation - значение поля security_event из клиента,
	// сигнализирующее попытку ухода со страницы экзамена
	securityEventNavigation = "navigation_attempt"

	// tabSwitchThreshold - минимальное число переключений вкладок,
	// начиная с которого пишется запись TAB_SWITCHING
	tabSwitchThreshold = 3

	// minTimeFraction и highScoreThreshold задают эвристику манипуляции
	// таймером: подозрительно быстрая сдача с высоким баллом
	minTimeFraction    = 0.3
	highScoreThreshold = 70
)

// SecurityService ведет журнал событий безопасности. Сервис строго
// консультативный: ни одна ошибка записи не прерывает операцию студента,
// сбои логируются на сервере и проглатываются.
type SecurityService struct {
	logRepo     repository.SecurityLogRepository
	attemptRepo repository.AttemptRepository

	// monitor опционален; nil отключает живую ленту
	monitor *websocket.Monitor
}

// NewSecurityService создает новый сервис мониторинга безопасности
func NewSecurityService(
	logRepo repository.SecurityLogRepository,
	attemptRepo repository.AttemptRepository,
	monitor *websocket.Monitor,
) (*SecurityService, error) {
	if logRepo == nil {
		return nil, fmt.Errorf("SecurityLogRepository is required for SecurityService")
	}
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for SecurityService")
	}
	return &SecurityService{
		logRepo:     logRepo,
		attemptRepo: attemptRepo,
		monitor:     monitor,
	}, nil
}

// LogEvent добавляет запись в журнал best-effort и публикует ее в живую
// ленту администраторов
func (s *SecurityService) LogEvent(entry *entity.SecurityLog) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if err := s.logRepo.Create(entry); err != nil {
		log.Printf("[SecurityService] Ошибка записи события %s: %v", entry.LogType, err)
		return
	}
	if s.monitor != nil {
		s.monitor.Publish("security_log", entry)
	}
}

// LogRetake фиксирует разрешение на пересдачу экзамена. Вызывается до
// создания новой попытки, чтобы след пересдачи существовал даже при сбое
// последующего старта.
func (s *SecurityService) LogRetake(studentID, examID uint, ip, userAgent string) {
	s.LogEvent(&entity.SecurityLog{
		StudentID: &studentID,
		ExamID:    &examID,
		LogType:   entity.LogTypeExamRetake,
		Message:   "Student granted an exam retake",
		IPAddress: ip,
		UserAgent: userAgent,
	})
}

// RecordSubmitSignals обрабатывает клиентские сигналы, пришедшие вместе с
// отправкой экзамена. Id экзамена берется из попытки; для неизвестной
// попытки сигналы молча игнорируются.
func (s *SecurityService) RecordSubmitSignals(studentID, attemptID uint, securityEvent string, tabSwitchCount int, ip, userAgent string) {
	if securityEvent != securityEventNavigation && tabSwitchCount < tabSwitchThreshold {
		return
	}

	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return
	}

	if securityEvent == securityEventNavigation {
		s.LogEvent(&entity.SecurityLog{
			StudentID: &studentID,
			ExamID:    &attempt.ExamID,
			AttemptID: &attempt.ID,
			LogType:   entity.LogTypeNavigationAttempt,
			Message:   "Student attempted to navigate away from the exam page",
			IPAddress: ip,
			UserAgent: userAgent,
		})
	}

	if tabSwitchCount >= tabSwitchThreshold {
		s.LogEvent(&entity.SecurityLog{
			StudentID: &studentID,
			ExamID:    &attempt.ExamID,
			AttemptID: &attempt.ID,
			LogType:   entity.LogTypeTabSwitching,
			Message:   fmt.Sprintf("Student switched tabs %d times during the exam", tabSwitchCount),
			IPAddress: ip,
			UserAgent: userAgent,
		})
	}
}

// CheckTimerAnomaly применяет эвристику манипуляции таймером: сдача раньше
// минимальной доли отведенного времени с баллом выше порога. Запись
// консультативная, результат сдачи никогда не блокируется.
func (s *SecurityService) CheckTimerAnomaly(attempt *entity.ExamAttempt, exam *entity.Exam, score int, now time.Time) {
	minTime := time.Duration(float64(exam.TimeLimit()) * minTimeFraction)
	if now.Sub(attempt.StartTime) >= minTime || score <= highScoreThreshold {
		return
	}

	s.LogEvent(&entity.SecurityLog{
		StudentID: &attempt.StudentID,
		ExamID:    &attempt.ExamID,
		AttemptID: &attempt.ID,
		LogType:   entity.LogTypeTimerManipulation,
		Message:   fmt.Sprintf("Suspiciously fast submission: score %d in under %d%% of the allotted time", score, int(minTimeFraction*100)),
		IPAddress: attempt.IPAddress,
		UserAgent: attempt.UserAgent,
	})
}
