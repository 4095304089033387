package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	"github.com/yourusername/exam-portal-api/internal/handler/dto"
	"github.com/yourusername/exam-portal-api/internal/middleware"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
	"github.com/yourusername/exam-portal-api/internal/service"
	"github.com/yourusername/exam-portal-api/pkg/session"
)

// AuthHandler обрабатывает регистрацию, вход и выход
type AuthHandler struct {
	authService *service.AuthService
	sessions    *session.Manager
}

// NewAuthHandler создает новый обработчик аутентификации
func NewAuthHandler(authService *service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// RegisterRequest представляет запрос на регистрацию
type RegisterRequest struct {
	FullName string `json:"fullname" binding:"required,max=100"`
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register обрабатывает регистрацию нового студента.
// После успешного создания сразу выдается сессия.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	student, err := h.authService.Register(service.RegisterInput{
		FullName: req.FullName,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	if _, err := h.sessions.Issue(c.Writer, repository.SessionData{
		StudentID: student.ID,
		Role:      student.Role,
	}); err != nil {
		// Аккаунт создан, сессия не выдана: клиент войдет обычным путем
		log.Printf("[AuthHandler] Не удалось выдать сессию после регистрации student_id=%d: %v", student.ID, err)
		c.JSON(http.StatusCreated, dto.NewStudentResponse(student))
		return
	}

	c.JSON(http.StatusCreated, dto.NewStudentResponse(student))
}

// Login обрабатывает вход студента
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	student, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}

	if _, err := h.sessions.Issue(c.Writer, repository.SessionData{
		StudentID: student.ID,
		Role:      student.Role,
	}); err != nil {
		log.Printf("[AuthHandler] Не удалось выдать сессию student_id=%d: %v", student.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// Logout удаляет серверную сессию и очищает куку
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetString(middleware.ContextSessionID)
	h.sessions.Destroy(c.Writer, sessionID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// handleAuthError преобразует ошибки сервиса в HTTP ответы. Сообщение о
// неверных учетных данных всегда одно и то же.
func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Username is already taken"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in AuthHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
