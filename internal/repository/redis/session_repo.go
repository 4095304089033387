package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

// Префикс ключей сессий в Redis
const sessionKeyPrefix = "session:"

// SessionRepo реализует repository.SessionRepository поверх Redis.
// Значение сессии хранится как JSON, TTL обеспечивает истечение.
type SessionRepo struct {
	client redis.UniversalClient
	ctx    context.Context
}

// NewSessionRepo создает новый репозиторий сессий и возвращает ошибку при проблемах
func NewSessionRepo(client redis.UniversalClient) (*SessionRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for SessionRepo")
	}
	return &SessionRepo{
		client: client,
		ctx:    context.Background(),
	}, nil
}

// Set сохраняет данные сессии с заданным TTL
func (r *SessionRepo) Set(sessionID string, data repository.SessionData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.client.Set(r.ctx, sessionKeyPrefix+sessionID, payload, ttl).Err()
}

// Get возвращает данные сессии. Отсутствующая или истекшая сессия - ErrNotFound.
func (r *SessionRepo) Get(sessionID string) (*repository.SessionData, error) {
	payload, err := r.client.Get(r.ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	var data repository.SessionData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// Delete удаляет сессию
func (r *SessionRepo) Delete(sessionID string) error {
	return r.client.Del(r.ctx, sessionKeyPrefix+sessionID).Err()
}
