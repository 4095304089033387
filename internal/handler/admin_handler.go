package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/exam-portal-api/internal/handler/dto"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
	"github.com/yourusername/exam-portal-api/internal/service"
	"github.com/yourusername/exam-portal-api/internal/websocket"
)

const defaultSecurityLogLimit = 50

// AdminHandler обрабатывает административную отчетность
type AdminHandler struct {
	adminService *service.AdminService
	monitor      *websocket.Monitor
}

// NewAdminHandler создает новый административный обработчик
func NewAdminHandler(adminService *service.AdminService, monitor *websocket.Monitor) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		monitor:      monitor,
	}
}

// Dashboard возвращает сводные счетчики
func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts, err := h.adminService.GetDashboardCounts()
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, counts)
}

// SecurityLogs возвращает последние события журнала безопасности
func (h *AdminHandler) SecurityLogs(c *gin.Context) {
	limit := defaultSecurityLogLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}

	logs, err := h.adminService.GetSecurityLogs(limit)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": dto.NewSecurityLogResponses(logs)})
}

// StudentSecurity возвращает студента и всю его историю событий
func (h *AdminHandler) StudentSecurity(c *gin.Context) {
	studentID := c.GetUint("student_id_param")

	report, err := h.adminService.GetStudentSecurityReport(studentID)
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"student": dto.NewStudentResponse(report.Student),
		"logs":    dto.NewSecurityLogResponses(report.Logs),
	})
}

// ExportResults выгружает все результаты экзаменов в Excel.
// StreamWriter держит потребление памяти постоянным на больших выгрузках.
func (h *AdminHandler) ExportResults(c *gin.Context) {
	rows, err := h.adminService.GetResultsForExport()
	if err != nil {
		h.handleAdminError(c, err)
		return
	}

	filename := fmt.Sprintf("exam-results-%s", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Результаты"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AdminHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"ID результата", "Студент", "Полное имя", "Экзамен", "Балл", "Время завершения"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AdminHandler] Ошибка записи заголовков: %v", err)
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := []interface{}{
			row.ResultID,
			row.StudentUsername,
			row.StudentFullName,
			row.ExamTitle,
			row.Score,
			row.CompletionTime.Format("2006-01-02 15:04:05"),
		}
		if err := sw.SetRow(cell, values); err != nil {
			log.Printf("[AdminHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AdminHandler] Ошибка завершения StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	if err := f.Write(c.Writer); err != nil {
		// Заголовки уже отправлены, остается только залогировать
		log.Printf("[AdminHandler] Ошибка отправки файла: %v", err)
	}
}

// LiveSecurityLogs апгрейдит соединение до WebSocket и подписывает
// администратора на живую ленту событий
func (h *AdminHandler) LiveSecurityLogs(c *gin.Context) {
	h.monitor.ServeHTTP(c.Writer, c.Request)
}

// handleAdminError преобразует ошибки сервиса в HTTP ответы
func (h *AdminHandler) handleAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		log.Printf("ERROR: Internal server error in AdminHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
