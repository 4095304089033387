package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок аутентификации (неверные учетные
	// данные, отсутствующая или истекшая сессия). Текст намеренно не различает
	// "пользователь не найден" и "неверный пароль".
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда ресурс принадлежит другому студенту
	// или у пользователя недостаточно прав (не админ).
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется для конфликтов состояния (например, username уже занят).
	ErrConflict = errors.New("resource state conflict")

	// ErrAlreadyCompleted используется при повторной отправке уже завершенной
	// попытки экзамена.
	ErrAlreadyCompleted = errors.New("attempt already completed")
)
