package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/exam-portal-api/internal/config"
	"github.com/yourusername/exam-portal-api/internal/domain/entity"
	"github.com/yourusername/exam-portal-api/internal/domain/repository"
	"github.com/yourusername/exam-portal-api/internal/handler"
	"github.com/yourusername/exam-portal-api/internal/middleware"
	apperrors "github.com/yourusername/exam-portal-api/internal/pkg/errors"
	pgRepo "github.com/yourusername/exam-portal-api/internal/repository/postgres"
	redisRepo "github.com/yourusername/exam-portal-api/internal/repository/redis"
	"github.com/yourusername/exam-portal-api/internal/service"
	"github.com/yourusername/exam-portal-api/internal/websocket"
	"github.com/yourusername/exam-portal-api/pkg/database"
	"github.com/yourusername/exam-portal-api/pkg/session"
)

// ensureAdminAccount создает администратора при первом запуске.
// Пароль берется из ADMIN_PASSWORD; без него новый аккаунт не создается.
func ensureAdminAccount(studentRepo repository.StudentRepository) error {
	_, err := studentRepo.GetByUsername("admin")
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Println("ADMIN_PASSWORD не задан, административный аккаунт не создан")
		return nil
	}

	admin := &entity.Student{
		FullName: "System Administrator",
		Username: "admin",
		Email:    "admin@school.edu",
		Password: password, // хешируется хуком BeforeSave
		Role:     entity.RoleAdmin,
	}
	if err := studentRepo.Create(admin); err != nil {
		return err
	}
	log.Printf("Создан административный аккаунт username=admin id=%d", admin.ID)
	return nil
}

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к PostgreSQL
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString())
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Применяем миграции
	if err := database.MigrateDB(db); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		os.Exit(1)
	}

	// Инициализируем подключение к Redis
	redisClient, err := database.NewUniversalRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	log.Println("Successfully connected to Redis")

	// Инициализируем репозитории
	studentRepo := pgRepo.NewStudentRepo(db)
	examRepo := pgRepo.NewExamRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	attemptRepo := pgRepo.NewAttemptRepo(db)
	resultRepo := pgRepo.NewResultRepo(db)
	securityLogRepo := pgRepo.NewSecurityLogRepo(db)

	// Административный аккаунт создается здесь, а не миграцией, чтобы
	// пароль хешировался тем же кодом, что и при регистрации
	if err := ensureAdminAccount(studentRepo); err != nil {
		log.Printf("Failed to ensure admin account: %v", err)
		os.Exit(1)
	}

	sessionRepo, err := redisRepo.NewSessionRepo(redisClient)
	if err != nil {
		log.Printf("Failed to create session repository: %v", err)
		os.Exit(1)
	}

	// Менеджер сессий на опаковых куках
	sessionTTL := time.Duration(cfg.Session.LifetimeHrs) * time.Hour
	sessionManager, err := session.NewManager(sessionRepo, sessionTTL)
	if err != nil {
		log.Printf("Failed to create session manager: %v", err)
		os.Exit(1)
	}

	isProduction := gin.Mode() == gin.ReleaseMode
	if isProduction {
		// Secure-кука требует HTTPS
		sessionManager.SetCookieAttributes("/", "", true, true, http.SameSiteLaxMode)
	}

	// Живая лента событий безопасности для администраторов
	monitor := websocket.NewMonitor()

	// Отправка писем опциональна
	var emailSvc service.EmailService = &service.NoopEmailService{}
	if cfg.Email.Enabled {
		resendSvc, err := service.NewResendEmailService(cfg.Email.ResendAPIKey, cfg.Email.From)
		if err != nil {
			log.Printf("Failed to create email service: %v", err)
			os.Exit(1)
		}
		emailSvc = resendSvc
		log.Println("Email service enabled (resend)")
	}

	// Инициализируем сервисы
	securityService, err := service.NewSecurityService(securityLogRepo, attemptRepo, monitor)
	if err != nil {
		log.Printf("Failed to create security service: %v", err)
		os.Exit(1)
	}

	authService, err := service.NewAuthService(studentRepo, emailSvc)
	if err != nil {
		log.Printf("Failed to create auth service: %v", err)
		os.Exit(1)
	}

	examService, err := service.NewExamService(examRepo, questionRepo, attemptRepo, resultRepo, securityService)
	if err != nil {
		log.Printf("Failed to create exam service: %v", err)
		os.Exit(1)
	}

	studentService, err := service.NewStudentService(studentRepo)
	if err != nil {
		log.Printf("Failed to create student service: %v", err)
		os.Exit(1)
	}

	adminService, err := service.NewAdminService(studentRepo, examRepo, attemptRepo, resultRepo, securityLogRepo)
	if err != nil {
		log.Printf("Failed to create admin service: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики и middleware
	authHandler := handler.NewAuthHandler(authService, sessionManager)
	examHandler := handler.NewExamHandler(examService, sessionManager)
	profileHandler := handler.NewProfileHandler(studentService)
	adminHandler := handler.NewAdminHandler(adminService, monitor)

	sessionMiddleware := middleware.NewSessionMiddleware(sessionManager)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	router := gin.Default()

	// Настройка доверенных прокси для корректной работы c.ClientIP().
	// IP попадает в журнал безопасности, поэтому spoofing недопустим.
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	// Настройка CORS. Сессионная кука требует AllowCredentials.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Настраиваем маршруты API
	api := router.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			strictLimit := rateLimiter.Limit(middleware.StrictAuthRateLimitConfig())
			authGroup.POST("/register", strictLimit, authHandler.Register)
			authGroup.POST("/login", strictLimit, authHandler.Login)
			authGroup.POST("/logout", sessionMiddleware.RequireAuth(), authHandler.Logout)
		}

		examGroup := api.Group("/exams")
		examGroup.Use(sessionMiddleware.RequireAuth())
		{
			examGroup.GET("/dashboard", examHandler.Dashboard)
			examGroup.GET("/start/:examId",
				middleware.ExtractUintParam("examId", handler.ContextExamID), examHandler.Start)
			examGroup.GET("/retake/:examId",
				middleware.ExtractUintParam("examId", handler.ContextExamID), examHandler.Retake)
			examGroup.POST("/submit/:attemptId",
				middleware.ExtractUintParam("attemptId", handler.ContextAttemptID), examHandler.Submit)
			examGroup.GET("/results/:resultId",
				middleware.ExtractUintParam("resultId", handler.ContextResultID), examHandler.Result)
		}

		profileGroup := api.Group("/profile")
		profileGroup.Use(sessionMiddleware.RequireAuth())
		{
			profileGroup.GET("", profileHandler.Get)
			profileGroup.PUT("", profileHandler.Update)
		}

		adminGroup := api.Group("/admin")
		adminGroup.Use(sessionMiddleware.RequireAuth(), sessionMiddleware.AdminOnly())
		{
			adminGroup.GET("/dashboard", adminHandler.Dashboard)
			adminGroup.GET("/security-logs", adminHandler.SecurityLogs)
			adminGroup.GET("/security-logs/live", adminHandler.LiveSecurityLogs)
			adminGroup.GET("/student-security/:studentId",
				middleware.ExtractUintParam("studentId", "student_id_param"), adminHandler.StudentSecurity)
			adminGroup.GET("/export/results", adminHandler.ExportResults)
		}
	}

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Запускаем сервер в горутине
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	// Ожидаем сигнал остановки
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Server exited properly")
}
