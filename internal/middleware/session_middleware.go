package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/pkg/session"
)

// Ключи контекста Gin, заполняемые RequireAuth
const (
	ContextStudentID = "student_id"
	ContextRole      = "role"
	ContextSessionID = "session_id"
)

// SessionMiddleware проверяет сессионную куку и наполняет контекст запроса
type SessionMiddleware struct {
	sessions *session.Manager
}

// NewSessionMiddleware создает новый middleware сессий
func NewSessionMiddleware(sessions *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

// RequireAuth требует валидную сессию. Любая причина отказа (нет куки,
// неизвестный или истекший id) дает один и тот же ответ 401.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, data, err := m.sessions.Load(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		c.Set(ContextSessionID, sessionID)
		c.Set(ContextStudentID, data.StudentID)
		c.Set(ContextRole, data.Role)
		c.Next()
	}
}

// AdminOnly требует административную роль. Отказ всегда одинаковый и
// ничего не говорит о причине; попытка фиксируется в серверном логе.
func (m *SessionMiddleware) AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRole)
		if !exists || role.(string) != entity.RoleAdmin {
			studentID, _ := c.Get(ContextStudentID)
			log.Printf("[SessionMiddleware] Отказ в доступе к %s: student_id=%v не администратор", c.Request.URL.Path, studentID)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// StudentID извлекает id студента, положенный RequireAuth
func StudentID(c *gin.Context) uint {
	v, _ := c.Get(ContextStudentID)
	id, _ := v.(uint)
	return id
}
