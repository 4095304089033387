package repository

import (
	"time"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
)

// QuestionWithAnswer - строка выборки "вопрос + выбранный студентом вариант".
// SelectedOption nil, если студент не ответил на вопрос (LEFT JOIN).
type QuestionWithAnswer struct {
	Question       entity.ExamQuestion
	SelectedOption *entity.AnswerOption
}

// ResultExportRow - строка административного экспорта результатов.
// Имена берутся LEFT JOIN-ом: для удаленных студентов и экзаменов
// остаются пустые строки, сама строка результата не пропадает.
type ResultExportRow struct {
	ResultID        uint
	StudentUsername string
	StudentFullName string
	ExamTitle       string
	Score           int
	CompletionTime  time.Time
}

// ResultRepository определяет методы для работы с результатами экзаменов
type ResultRepository interface {
	// SaveSubmission в одной транзакции: создает результат, атомарно помечает
	// попытку завершенной (compare-and-set по completed=false) и сохраняет
	// ответы студента. Возвращает ErrAlreadyCompleted, если попытка уже была
	// завершена параллельным запросом; в этом и любом другом случае ошибки
	// никакие частичные записи не остаются.
	SaveSubmission(result *entity.ExamResult, attemptID uint, answers []entity.StudentAnswer) error
	GetByID(id uint) (*entity.ExamResult, error)
	// GetLatestByStudentAndExam возвращает последний результат студента по
	// экзамену. После пересдач именно он считается каноническим.
	GetLatestByStudentAndExam(studentID, examID uint) (*entity.ExamResult, error)
	GetByStudent(studentID uint) ([]entity.ExamResult, error)
	// GetQuestionsWithAnswers возвращает все вопросы экзамена результата вместе
	// с выбранными вариантами (неотвеченные вопросы присутствуют с nil).
	GetQuestionsWithAnswers(resultID, examID uint) ([]QuestionWithAnswer, error)
	// ListAllForExport возвращает все результаты с именами студентов и
	// названиями экзаменов, новые первыми (для административного экспорта)
	ListAllForExport() ([]ResultExportRow, error)
	Count() (int64, error)
}
