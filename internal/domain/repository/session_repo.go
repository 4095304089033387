package repository

import "time"

// SessionData - серверное состояние одной сессии. Кука несет только
// непрозрачный идентификатор; все данные живут в хранилище.
type SessionData struct {
	StudentID uint   `json:"student_id"`
	Role      string `json:"role"`
	// RetakeExamID - флаг пересдачи: id экзамена, для которого следующий
	// старт обходит проверку "уже сдан". Сбрасывается при использовании.
	RetakeExamID uint `json:"retake_exam_id,omitempty"`
}

// SessionRepository определяет методы серверного хранилища сессий
type SessionRepository interface {
	Set(sessionID string, data SessionData, ttl time.Duration) error
	Get(sessionID string) (*SessionData, error)
	Delete(sessionID string) error
}
