package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

// ExamAlreadyTakenError возвращается стартом экзамена без разрешения на
// пересдачу, когда завершенный результат уже существует. Несет id этого
// результата, чтобы обработчик мог отправить клиента к нему.
type ExamAlreadyTakenError struct {
	ResultID uint
}

func (e *ExamAlreadyTakenError) Error() string {
	return fmt.Sprintf("exam already taken, existing result #%d", e.ResultID)
}

func (e *ExamAlreadyTakenError) Unwrap() error {
	return apperrors.ErrAlreadyCompleted
}

// DashboardData - данные дашборда студента: все экзамены и его результаты
type DashboardData struct {
	Exams   []entity.Exam
	Results []entity.ExamResult
}

// StartedExam - данные начатой попытки для страницы прохождения экзамена
type StartedExam struct {
	Exam      *entity.Exam
	Questions []entity.ExamQuestion
	AttemptID uint
}

// SubmitInput содержит все данные отправки экзамена
type SubmitInput struct {
	StudentID uint
	AttemptID uint
	// Answers - ответы по id вопросов. Ключи, не принадлежащие экзамену
	// попытки, отбрасываются и никогда не сохраняются.
	Answers map[uint]entity.AnswerOption

	// Клиентские сигналы мониторинга
	SecurityEvent  string
	TabSwitchCount int

	// Метаданные
	IP        string
	UserAgent string
}

// ResultView - результат вместе с разбором ответов по всем вопросам экзамена
type ResultView struct {
	Result    *entity.ExamResult
	Exam      *entity.Exam
	Questions []repository.QuestionWithAnswer
}

// ExamService реализует жизненный цикл экзамена: дашборд, старт, пересдача,
// отправка с подсчетом балла и просмотр результата
type ExamService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
	attemptRepo  repository.AttemptRepository
	resultRepo   repository.ResultRepository
	securitySvc  *SecurityService
}

// NewExamService создает новый сервис экзаменов
func NewExamService(
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	resultRepo repository.ResultRepository,
	securitySvc *SecurityService,
) (*ExamService, error) {
	if examRepo == nil {
		return nil, fmt.Errorf("ExamRepository is required for ExamService")
	}
	if questionRepo == nil {
		return nil, fmt.Errorf("QuestionRepository is required for ExamService")
	}
	if attemptRepo == nil {
		return nil, fmt.Errorf("AttemptRepository is required for ExamService")
	}
	if resultRepo == nil {
		return nil, fmt.Errorf("ResultRepository is required for ExamService")
	}
	if securitySvc == nil {
		return nil, fmt.Errorf("SecurityService is required for ExamService")
	}
	return &ExamService{
		examRepo:     examRepo,
		questionRepo: questionRepo,
		attemptRepo:  attemptRepo,
		resultRepo:   resultRepo,
		securitySvc:  securitySvc,
	}, nil
}

// Dashboard возвращает все экзамены и результаты студента
func (s *ExamService) Dashboard(studentID uint) (*DashboardData, error) {
	exams, err := s.examRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list exams: %w", err)
	}

	results, err := s.resultRepo.GetByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student results: %w", err)
	}

	return &DashboardData{Exams: exams, Results: results}, nil
}

// Start начинает новую попытку экзамена. При retake=false и существующем
// завершенном результате возвращает ExamAlreadyTakenError с его id.
func (s *ExamService) Start(studentID, examID uint, retake bool, ip, userAgent string) (*StartedExam, error) {
	if !retake {
		existing, err := s.resultRepo.GetLatestByStudentAndExam(studentID, examID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing result: %w", err)
		}
		if existing != nil {
			return nil, &ExamAlreadyTakenError{ResultID: existing.ID}
		}
	}

	exam, err := s.examRepo.GetByID(examID)
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByExamID(examID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam questions: %w", err)
	}

	attempt := &entity.ExamAttempt{
		StudentID: studentID,
		ExamID:    examID,
		StartTime: time.Now(),
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("failed to create exam attempt: %w", err)
	}

	return &StartedExam{
		Exam:      exam,
		Questions: questions,
		AttemptID: attempt.ID,
	}, nil
}

// Retake фиксирует разрешение на пересдачу. Запись EXAM_RETAKE делается до
// того, как обработчик выставит флаг пересдачи в сессии и создаст новую
// попытку. Существование экзамена проверяется, чтобы не выдавать флаг впустую.
func (s *ExamService) Retake(studentID, examID uint, ip, userAgent string) error {
	if _, err := s.examRepo.GetByID(examID); err != nil {
		return err
	}

	s.securitySvc.LogRetake(studentID, examID, ip, userAgent)
	return nil
}

// Submit завершает попытку: проверяет владение, считает балл и атомарно
// сохраняет результат с ответами. Возвращает id созданного результата.
func (s *ExamService) Submit(input SubmitInput) (uint, error) {
	attempt, err := s.attemptRepo.GetByID(input.AttemptID)
	if err != nil {
		return 0, err
	}
	if attempt.StudentID != input.StudentID {
		return 0, apperrors.ErrForbidden
	}
	if attempt.Completed {
		return 0, apperrors.ErrAlreadyCompleted
	}

	// Сигналы мониторинга пишутся до подсчета балла и не влияют на него
	s.securitySvc.RecordSubmitSignals(
		input.StudentID, input.AttemptID,
		input.SecurityEvent, input.TabSwitchCount,
		input.IP, input.UserAgent,
	)

	exam, err := s.examRepo.GetByID(attempt.ExamID)
	if err != nil {
		return 0, fmt.Errorf("failed to load exam for attempt #%d: %w", attempt.ID, err)
	}

	questions, err := s.questionRepo.GetByExamID(attempt.ExamID)
	if err != nil {
		return 0, fmt.Errorf("failed to load exam questions: %w", err)
	}

	score, validAnswers := scoreAnswers(questions, input.Answers)

	now := time.Now()
	s.securitySvc.CheckTimerAnomaly(attempt, exam, score, now)

	result := &entity.ExamResult{
		StudentID:      input.StudentID,
		ExamID:         attempt.ExamID,
		Score:          score,
		CompletionTime: now,
	}
	if err := s.resultRepo.SaveSubmission(result, attempt.ID, validAnswers); err != nil {
		return 0, err
	}

	return result.ID, nil
}

// Result возвращает результат с разбором ответов. Доступ только владельцу:
// чужой результат неотличим от несуществующего.
func (s *ExamService) Result(studentID, resultID uint) (*ResultView, error) {
	result, err := s.resultRepo.GetByID(resultID)
	if err != nil {
		return nil, err
	}
	if result.StudentID != studentID {
		return nil, apperrors.ErrForbidden
	}

	exam, err := s.examRepo.GetByID(result.ExamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exam for result #%d: %w", resultID, err)
	}

	questions, err := s.resultRepo.GetQuestionsWithAnswers(resultID, result.ExamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load answers for result #%d: %w", resultID, err)
	}

	return &ResultView{
		Result:    result,
		Exam:      exam,
		Questions: questions,
	}, nil
}

// scoreAnswers считает балл по вопросам экзамена. Ответы на вопросы, не
// принадлежащие экзамену, отбрасываются: итерация идет по вопросам, а не по
// присланной карте. Сравнение вариантов регистронезависимое.
func scoreAnswers(questions []entity.ExamQuestion, answers map[uint]entity.AnswerOption) (int, []entity.StudentAnswer) {
	correct := 0
	valid := make([]entity.StudentAnswer, 0, len(answers))

	for _, q := range questions {
		selected, ok := answers[q.ID]
		if !ok {
			continue
		}
		valid = append(valid, entity.StudentAnswer{
			QuestionID:     q.ID,
			SelectedOption: selected,
		})
		if q.IsCorrect(selected) {
			correct++
		}
	}

	return entity.CalculateScore(correct, len(questions)), valid
}
