package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db *gorm.DB
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB) *ResultRepo {
	return &ResultRepo{db: db}
}

// SaveSubmission сохраняет отправку экзамена одной транзакцией: результат,
// завершение попытки и ответы студента. Условие completed = false в UPDATE
// защищает от гонки двух одновременных отправок одной попытки: проигравший
// запрос получает ErrAlreadyCompleted, и вся его транзакция откатывается.
func (r *ResultRepo) SaveSubmission(result *entity.ExamResult, attemptID uint, answers []entity.StudentAnswer) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}

		res := tx.Model(&entity.ExamAttempt{}).
			Where("id = ? AND completed = ?", attemptID, false).
			Updates(map[string]interface{}{
				"completed": true,
				"end_time":  result.CompletionTime,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrAlreadyCompleted
		}

		if len(answers) == 0 {
			return nil
		}
		for i := range answers {
			answers[i].ResultID = result.ID
		}
		return tx.Create(&answers).Error
	})
}

// GetByID возвращает результат по ID
func (r *ResultRepo) GetByID(id uint) (*entity.ExamResult, error) {
	var result entity.ExamResult
	err := r.db.First(&result, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// GetLatestByStudentAndExam возвращает последний результат студента по экзамену.
// После пересдачи совершенных результатов может быть несколько; каноническим
// для дашборда и проверки "уже сдан" считается самый свежий.
func (r *ResultRepo) GetLatestByStudentAndExam(studentID, examID uint) (*entity.ExamResult, error) {
	var result entity.ExamResult
	err := r.db.Where("student_id = ? AND exam_id = ?", studentID, examID).
		Order("completion_time DESC, id DESC").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &result, nil
}

// GetByStudent возвращает все результаты студента, новые первыми
func (r *ResultRepo) GetByStudent(studentID uint) ([]entity.ExamResult, error) {
	var results []entity.ExamResult
	err := r.db.Where("student_id = ?", studentID).
		Order("completion_time DESC, id DESC").
		Find(&results).Error
	return results, err
}

// questionWithAnswerRow - плоская строка для сканирования LEFT JOIN выборки
type questionWithAnswerRow struct {
	entity.ExamQuestion
	SelectedOption *string
}

// GetQuestionsWithAnswers возвращает все вопросы экзамена результата вместе с
// выбранными вариантами. LEFT JOIN: неотвеченные вопросы присутствуют в
// выборке с SelectedOption = nil.
func (r *ResultRepo) GetQuestionsWithAnswers(resultID, examID uint) ([]repository.QuestionWithAnswer, error) {
	var rows []questionWithAnswerRow
	err := r.db.Table("exam_questions AS q").
		Select("q.*, a.selected_option").
		Joins("LEFT JOIN student_answers a ON a.question_id = q.id AND a.result_id = ?", resultID).
		Where("q.exam_id = ?", examID).
		Order("q.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]repository.QuestionWithAnswer, 0, len(rows))
	for _, row := range rows {
		qa := repository.QuestionWithAnswer{Question: row.ExamQuestion}
		if row.SelectedOption != nil {
			opt := entity.AnswerOption(*row.SelectedOption)
			qa.SelectedOption = &opt
		}
		out = append(out, qa)
	}
	return out, nil
}

// ListAllForExport возвращает все результаты с именами студентов и
// названиями экзаменов, новые первыми. LEFT JOIN с COALESCE: результаты
// удаленных студентов и экзаменов остаются в экспорте с пустыми именами.
func (r *ResultRepo) ListAllForExport() ([]repository.ResultExportRow, error) {
	var rows []repository.ResultExportRow
	err := r.db.Table("exam_results AS r").
		Select(`r.id AS result_id,
			COALESCE(s.username, '') AS student_username,
			COALESCE(s.fullname, '') AS student_full_name,
			COALESCE(e.title, '') AS exam_title,
			r.score,
			r.completion_time`).
		Joins("LEFT JOIN students s ON s.id = r.student_id").
		Joins("LEFT JOIN exams e ON e.id = r.exam_id").
		Order("r.completion_time DESC, r.id DESC").
		Scan(&rows).Error
	return rows, err
}

// Count возвращает общее количество результатов
func (r *ResultRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.ExamResult{}).Count(&count).Error
	return count, err
}
