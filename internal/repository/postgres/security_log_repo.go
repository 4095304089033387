package postgres

import (
	"gorm.io/gorm"

	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
)

// Максимальное количество записей в общем списке логов
const maxSecurityLogLimit = 100

// SecurityLogRepo реализует repository.SecurityLogRepository
type SecurityLogRepo struct {
	db *gorm.DB
}

// NewSecurityLogRepo создает новый репозиторий журнала безопасности
func NewSecurityLogRepo(db *gorm.DB) *SecurityLogRepo {
	return &SecurityLogRepo{db: db}
}

// Create добавляет запись в журнал. Записи append-only.
func (r *SecurityLogRepo) Create(log *entity.SecurityLog) error {
	return r.db.Create(log).Error
}

// securityLogViewRow - плоская строка для сканирования JOIN выборки
type securityLogViewRow struct {
	entity.SecurityLog
	StudentUsername *string
	ExamTitle       *string
}

// ListRecent возвращает последние записи журнала (не более limit, максимум 100)
// вместе с username студента и названием экзамена. LEFT JOIN: записи остаются
// в выборке, даже если студент или экзамен были удалены.
func (r *SecurityLogRepo) ListRecent(limit int) ([]repository.SecurityLogView, error) {
	if limit <= 0 || limit > maxSecurityLogLimit {
		limit = maxSecurityLogLimit
	}

	var rows []securityLogViewRow
	err := r.db.Table("security_logs AS sl").
		Select("sl.*, s.username AS student_username, e.title AS exam_title").
		Joins("LEFT JOIN students s ON sl.student_id = s.id").
		Joins("LEFT JOIN exams e ON sl.exam_id = e.id").
		Order("sl.created_at DESC, sl.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toSecurityLogViews(rows), nil
}

// ListByStudent возвращает все записи журнала одного студента, новые первыми
func (r *SecurityLogRepo) ListByStudent(studentID uint) ([]repository.SecurityLogView, error) {
	var rows []securityLogViewRow
	err := r.db.Table("security_logs AS sl").
		Select("sl.*, s.username AS student_username, e.title AS exam_title").
		Joins("LEFT JOIN students s ON sl.student_id = s.id").
		Joins("LEFT JOIN exams e ON sl.exam_id = e.id").
		Where("sl.student_id = ?", studentID).
		Order("sl.created_at DESC, sl.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toSecurityLogViews(rows), nil
}

func toSecurityLogViews(rows []securityLogViewRow) []repository.SecurityLogView {
	views := make([]repository.SecurityLogView, 0, len(rows))
	for _, row := range rows {
		views = append(views, repository.SecurityLogView{
			Log:             row.SecurityLog,
			StudentUsername: row.StudentUsername,
			ExamTitle:       row.ExamTitle,
		})
	}
	return views
}
