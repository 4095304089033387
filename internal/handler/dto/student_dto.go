package dto

import (
	"time"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
)

// StudentResponse представляет профиль студента для клиента.
// Пароль и роль в ответ не попадают.
type StudentResponse struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullname"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

// NewStudentResponse создает DTO профиля студента
func NewStudentResponse(s *entity.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		FullName:  s.FullName,
		Username:  s.Username,
		Email:     s.Email,
		Bio:       s.Bio,
		CreatedAt: s.CreatedAt,
	}
}
