package session

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/exam-portal-api/internal/domain/repository"
)

// DefaultCookieName - имя куки с идентификатором сессии
const DefaultCookieName = "exam_session"

// Manager выпускает и проверяет сессии. Кука несет только непрозрачный
// UUID; данные сессии живут в серверном хранилище (Redis) с TTL.
type Manager struct {
	repo       repository.SessionRepository
	cookieName string
	ttl        time.Duration

	// Атрибуты куки
	cookiePath     string
	cookieDomain   string
	cookieSecure   bool
	cookieHTTPOnly bool
	cookieSameSite http.SameSite
}

// NewManager создает новый менеджер сессий
func NewManager(repo repository.SessionRepository, ttl time.Duration) (*Manager, error) {
	if repo == nil {
		return nil, fmt.Errorf("SessionRepository is required for session.Manager")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		repo:           repo,
		cookieName:     DefaultCookieName,
		ttl:            ttl,
		cookiePath:     "/",
		cookieHTTPOnly: true,
		cookieSameSite: http.SameSiteLaxMode,
	}, nil
}

// SetCookieAttributes настраивает атрибуты сессионной куки
func (m *Manager) SetCookieAttributes(path, domain string, secure, httpOnly bool, sameSite http.SameSite) {
	m.cookiePath = path
	m.cookieDomain = domain
	m.cookieSecure = secure
	m.cookieHTTPOnly = httpOnly
	m.cookieSameSite = sameSite
}

// Issue создает новую сессию и устанавливает куку
func (m *Manager) Issue(w http.ResponseWriter, data repository.SessionData) (string, error) {
	sessionID := uuid.NewString()
	if err := m.repo.Set(sessionID, data, m.ttl); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    sessionID,
		Path:     m.cookiePath,
		Domain:   m.cookieDomain,
		MaxAge:   int(m.ttl.Seconds()),
		Secure:   m.cookieSecure,
		HttpOnly: m.cookieHTTPOnly,
		SameSite: m.cookieSameSite,
	})
	return sessionID, nil
}

// Load читает куку запроса и возвращает идентификатор и данные сессии.
// Отсутствующая кука и неизвестный/истекший идентификатор неразличимы
// для вызывающего: обе ситуации - ошибка.
func (m *Manager) Load(r *http.Request) (string, *repository.SessionData, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return "", nil, fmt.Errorf("session cookie missing: %w", err)
	}

	data, err := m.repo.Get(cookie.Value)
	if err != nil {
		return "", nil, fmt.Errorf("session lookup failed: %w", err)
	}
	return cookie.Value, data, nil
}

// Save перезаписывает данные существующей сессии, продлевая TTL
func (m *Manager) Save(sessionID string, data repository.SessionData) error {
	return m.repo.Set(sessionID, data, m.ttl)
}

// Destroy удаляет сессию из хранилища и сбрасывает куку
func (m *Manager) Destroy(w http.ResponseWriter, sessionID string) {
	if sessionID != "" {
		if err := m.repo.Delete(sessionID); err != nil {
			// Кука все равно сбрасывается; осиротевшая запись истечет по TTL
			log.Printf("[SessionManager] Ошибка удаления сессии из хранилища: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     m.cookiePath,
		Domain:   m.cookieDomain,
		MaxAge:   -1,
		Secure:   m.cookieSecure,
		HttpOnly: m.cookieHTTPOnly,
		SameSite: m.cookieSameSite,
	})
}
