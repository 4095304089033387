package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/exam-portal-api/internal/handler/dto"
	"github.com/yourusername/exam-portal-api/internal/middleware"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
	"github.com/yourusername/exam-portal-api/internal/service"
	"github.com/yourusername/exam-portal-api/pkg/session"
)

// Ключи контекста для параметров URL
const (
	ContextExamID    = "exam_id"
	ContextAttemptID = "attempt_id"
	ContextResultID  = "result_id"
)

// ExamHandler обрабатывает запросы жизненного цикла экзамена
type ExamHandler struct {
	examService *service.ExamService
	sessions    *session.Manager
}

// NewExamHandler создает новый обработчик экзаменов
func NewExamHandler(examService *service.ExamService, sessions *session.Manager) *ExamHandler {
	return &ExamHandler{
		examService: examService,
		sessions:    sessions,
	}
}

// Dashboard возвращает все экзамены и результаты студента
func (h *ExamHandler) Dashboard(c *gin.Context) {
	studentID := middleware.StudentID(c)

	data, err := h.examService.Dashboard(studentID)
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewDashboardResponse(data))
}

// Start начинает новую попытку экзамена. Флаг пересдачи из сессии
// расходуется ровно на один старт соответствующего экзамена.
func (h *ExamHandler) Start(c *gin.Context) {
	studentID := middleware.StudentID(c)
	examID := c.GetUint(ContextExamID)

	sessionID, data, err := h.sessions.Load(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	retake := data.RetakeExamID != 0 && data.RetakeExamID == examID

	started, err := h.examService.Start(studentID, examID, retake, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		var alreadyTaken *service.ExamAlreadyTakenError
		if errors.As(err, &alreadyTaken) {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Exam already taken",
				"result_id": alreadyTaken.ResultID,
			})
			return
		}
		h.handleExamError(c, err)
		return
	}

	if retake {
		data.RetakeExamID = 0
		if err := h.sessions.Save(sessionID, *data); err != nil {
			log.Printf("[ExamHandler] Не удалось сбросить флаг пересдачи session=%s: %v", sessionID, err)
		}
	}

	c.JSON(http.StatusOK, dto.NewStartExamResponse(started))
}

// Retake выдает разрешение на пересдачу: пишет событие журнала и ставит
// флаг в сессию, после чего клиент идет обычным путем старта
func (h *ExamHandler) Retake(c *gin.Context) {
	studentID := middleware.StudentID(c)
	examID := c.GetUint(ContextExamID)

	sessionID, data, err := h.sessions.Load(c.Request)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.examService.Retake(studentID, examID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		h.handleExamError(c, err)
		return
	}

	data.RetakeExamID = examID
	if err := h.sessions.Save(sessionID, *data); err != nil {
		log.Printf("[ExamHandler] Не удалось сохранить флаг пересдачи session=%s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Retake granted", "exam_id": examID})
}

// Submit завершает попытку и возвращает id созданного результата
func (h *ExamHandler) Submit(c *gin.Context) {
	studentID := middleware.StudentID(c)
	attemptID := c.GetUint(ContextAttemptID)

	var req dto.SubmitExamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resultID, err := h.examService.Submit(service.SubmitInput{
		StudentID:      studentID,
		AttemptID:      attemptID,
		Answers:        req.ParseAnswers(),
		SecurityEvent:  req.SecurityEvent,
		TabSwitchCount: req.TabSwitchCount,
		IP:             c.ClientIP(),
		UserAgent:      c.Request.UserAgent(),
	})
	if err != nil {
		h.handleExamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result_id": resultID})
}

// Result возвращает результат с разбором ответов. Чужой результат
// неотличим от несуществующего.
func (h *ExamHandler) Result(c *gin.Context) {
	studentID := middleware.StudentID(c)
	resultID := c.GetUint(ContextResultID)

	view, err := h.examService.Result(studentID, resultID)
	if err != nil {
		if errors.Is(err, apperrors.ErrForbidden) || errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Result not found"})
			return
		}
		h.handleExamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewResultViewResponse(view))
}

// handleExamError преобразует ошибки сервиса в HTTP ответы
func (h *ExamHandler) handleExamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, apperrors.ErrAlreadyCompleted):
		c.JSON(http.StatusConflict, gin.H{"error": "Exam attempt is already completed"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in ExamHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
