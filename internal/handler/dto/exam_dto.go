package dto

import (
	"time"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	"github.com/yourusername/exam-portal-api/internal/service"
)

// QuestionResponse представляет вопрос в формате для прохождения экзамена.
// Правильный вариант намеренно отсутствует в структуре.
type QuestionResponse struct {
	ID           uint   `json:"id"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
}

// NewQuestionResponse создает DTO для вопроса без правильного ответа
func NewQuestionResponse(q *entity.ExamQuestion) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		OptionA:      q.OptionA,
		OptionB:      q.OptionB,
		OptionC:      q.OptionC,
		OptionD:      q.OptionD,
	}
}

// ExamResponse представляет экзамен для списков и дашборда
type ExamResponse struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Duration       int       `json:"duration"`
	TotalQuestions int       `json:"total_questions"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewExamResponse создает DTO экзамена
func NewExamResponse(e *entity.Exam) ExamResponse {
	return ExamResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Duration:       e.Duration,
		TotalQuestions: e.TotalQuestions,
		CreatedAt:      e.CreatedAt,
	}
}

// StartExamResponse - ответ на старт попытки
type StartExamResponse struct {
	Exam      ExamResponse       `json:"exam"`
	Questions []QuestionResponse `json:"questions"`
	AttemptID uint               `json:"attempt_id"`
}

// NewStartExamResponse создает DTO начатой попытки
func NewStartExamResponse(started *service.StartedExam) StartExamResponse {
	questions := make([]QuestionResponse, 0, len(started.Questions))
	for i := range started.Questions {
		questions = append(questions, NewQuestionResponse(&started.Questions[i]))
	}
	return StartExamResponse{
		Exam:      NewExamResponse(started.Exam),
		Questions: questions,
		AttemptID: started.AttemptID,
	}
}

// SubmitExamRequest - тело отправки экзамена. Ответы приходят картой
// "id вопроса -> буква варианта"; неизвестные буквы отбрасываются на границе.
type SubmitExamRequest struct {
	Answers        map[uint]string `json:"answers"`
	SecurityEvent  string          `json:"security_event"`
	TabSwitchCount int             `json:"tab_switch_count"`
}

// ParseAnswers преобразует присланные ответы в доменные варианты,
// молча отбрасывая нераспознанные значения
func (r *SubmitExamRequest) ParseAnswers() map[uint]entity.AnswerOption {
	answers := make(map[uint]entity.AnswerOption, len(r.Answers))
	for questionID, raw := range r.Answers {
		if opt, ok := entity.ParseAnswerOption(raw); ok {
			answers[questionID] = opt
		}
	}
	return answers
}

// ResultResponse представляет результат экзамена
type ResultResponse struct {
	ID             uint      `json:"id"`
	StudentID      uint      `json:"student_id"`
	ExamID         uint      `json:"exam_id"`
	Score          int       `json:"score"`
	CompletionTime time.Time `json:"completion_time"`
}

// NewResultResponse создает DTO результата
func NewResultResponse(r *entity.ExamResult) ResultResponse {
	return ResultResponse{
		ID:             r.ID,
		StudentID:      r.StudentID,
		ExamID:         r.ExamID,
		Score:          r.Score,
		CompletionTime: r.CompletionTime,
	}
}

// AnswerBreakdownResponse - один вопрос разбора с ответом студента.
// В разборе правильный вариант уже показывается.
type AnswerBreakdownResponse struct {
	Question       QuestionResponse `json:"question"`
	CorrectOption  string           `json:"correct_option"`
	SelectedOption *string          `json:"selected_option"`
	IsCorrect      bool             `json:"is_correct"`
}

// ResultViewResponse - результат с полным разбором ответов
type ResultViewResponse struct {
	Result    ResultResponse            `json:"result"`
	Exam      ExamResponse              `json:"exam"`
	Breakdown []AnswerBreakdownResponse `json:"breakdown"`
}

// NewResultViewResponse создает DTO разбора результата
func NewResultViewResponse(view *service.ResultView) ResultViewResponse {
	breakdown := make([]AnswerBreakdownResponse, 0, len(view.Questions))
	for i := range view.Questions {
		qa := &view.Questions[i]
		item := AnswerBreakdownResponse{
			Question:      NewQuestionResponse(&qa.Question),
			CorrectOption: qa.Question.CorrectOption,
		}
		if qa.SelectedOption != nil {
			selected := string(*qa.SelectedOption)
			item.SelectedOption = &selected
			item.IsCorrect = qa.Question.IsCorrect(*qa.SelectedOption)
		}
		breakdown = append(breakdown, item)
	}
	return ResultViewResponse{
		Result:    NewResultResponse(view.Result),
		Exam:      NewExamResponse(view.Exam),
		Breakdown: breakdown,
	}
}

// DashboardResponse - дашборд студента
type DashboardResponse struct {
	Exams   []ExamResponse   `json:"exams"`
	Results []ResultResponse `json:"results"`
}

// NewDashboardResponse создает DTO дашборда
func NewDashboardResponse(data *service.DashboardData) DashboardResponse {
	exams := make([]ExamResponse, 0, len(data.Exams))
	for i := range data.Exams {
		exams = append(exams, NewExamResponse(&data.Exams[i]))
	}
	results := make([]ResultResponse, 0, len(data.Results))
	for i := range data.Results {
		results = append(results, NewResultResponse(&data.Results[i]))
	}
	return DashboardResponse{Exams: exams, Results: results}
}

// SecurityLogResponse - запись журнала безопасности для администратора
type SecurityLogResponse struct {
	ID              uint      `json:"id"`
	StudentID       *uint     `json:"student_id,omitempty"`
	StudentUsername *string   `json:"student_username,omitempty"`
	ExamID          *uint     `json:"exam_id,omitempty"`
	ExamTitle       *string   `json:"exam_title,omitempty"`
	AttemptID       *uint     `json:"attempt_id,omitempty"`
	LogType         string    `json:"log_type"`
	Message         string    `json:"message"`
	IPAddress       string    `json:"ip_address"`
	UserAgent       string    `json:"user_agent"`
	CreatedAt       time.Time `json:"timestamp"`
}

// NewSecurityLogResponse создает DTO записи журнала
func NewSecurityLogResponse(v *repository.SecurityLogView) SecurityLogResponse {
	return SecurityLogResponse{
		ID:              v.Log.ID,
		StudentID:       v.Log.StudentID,
		StudentUsername: v.StudentUsername,
		ExamID:          v.Log.ExamID,
		ExamTitle:       v.ExamTitle,
		AttemptID:       v.Log.AttemptID,
		LogType:         v.Log.LogType,
		Message:         v.Log.Message,
		IPAddress:       v.Log.IPAddress,
		UserAgent:       v.Log.UserAgent,
		CreatedAt:       v.Log.CreatedAt,
	}
}

// NewSecurityLogResponses создает DTO для списка записей журнала
func NewSecurityLogResponses(views []repository.SecurityLogView) []SecurityLogResponse {
	out := make([]SecurityLogResponse, 0, len(views))
	for i := range views {
		out = append(out, NewSecurityLogResponse(&views[i]))
	}
	return out
}
