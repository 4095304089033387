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
)

// ProfileHandler обрабатывает запросы профиля студента
type ProfileHandler struct {
	studentService *service.StudentService
}

// NewProfileHandler создает новый обработчик профиля
func NewProfileHandler(studentService *service.StudentService) *ProfileHandler {
	return &ProfileHandler{studentService: studentService}
}

// UpdateProfileRequest представляет запрос на обновление профиля
type UpdateProfileRequest struct {
	FullName string `json:"fullname" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Bio      string `json:"bio" binding:"max=2000"`
}

// Get возвращает свежий профиль из БД
func (h *ProfileHandler) Get(c *gin.Context) {
	studentID := middleware.StudentID(c)

	student, err := h.studentService.GetProfile(studentID)
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// Update обновляет имя, email и биографию
func (h *ProfileHandler) Update(c *gin.Context) {
	studentID := middleware.StudentID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	student, err := h.studentService.UpdateProfile(studentID, service.UpdateProfileInput{
		FullName: req.FullName,
		Email:    req.Email,
		Bio:      req.Bio,
	})
	if err != nil {
		h.handleProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStudentResponse(student))
}

// handleProfileError преобразует ошибки сервиса в HTTP ответы
func (h *ProfileHandler) handleProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Internal server error in ProfileHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
