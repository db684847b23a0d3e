package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/cancel_appointment"
	categoryWorkingHoursHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/category_working_hours"
	completeAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_appointment"
	createBlockHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_block"
	createCompanyHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_company"
	deleteAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/delete_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_appointment"
	getAvailableTimesHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_times"
	getClientAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_client_appointments"
	getCompanyHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_company"
	getCompanyAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_company_appointments"
	getPendingAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_pending_appointments"
	updateAppointmentHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_appointment"
	updateCompanyScheduleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_company_schedule"
	updateEmployeeScheduleHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_employee_schedule"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
	employeeRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/employee"
	scheduleRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/schedule"
	appointmentsService "github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	companiesService "github.com/m04kA/SMC-AppointmentService/internal/service/companies"
	scheduleService "github.com/m04kA/SMC-AppointmentService/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	createBlockUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_block"
	getAvailableTimesUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_times"
	updateAppointmentUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		companyRepository     *companyRepo.Repository
		employeeRepository    *employeeRepo.Repository
		catalogRepository     *catalogRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		companyRepository = companyRepo.NewRepository(wrappedDB)
		employeeRepository = employeeRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		companyRepository = companyRepo.NewRepository(db)
		employeeRepository = employeeRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		employeeRepository,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		companyRepository,
		employeeRepository,
		catalogRepository,
		scheduleRepository,
		txMgr,
		log,
	)
	companiesSvc := companiesService.NewService(
		companyRepository,
		catalogRepository,
		scheduleSvc,
		txMgr,
		log,
	)

	// Инициализируем use cases
	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		appointmentRepository,
		employeeRepository,
		companyRepository,
		catalogRepository,
		scheduleRepository,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		employeeRepository,
		companyRepository,
		catalogRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		appointmentRepository,
		employeeRepository,
		companyRepository,
		catalogRepository,
		scheduleRepository,
		txMgr,
		log,
	)

	createBlockUseCase := createBlockUC.NewUseCase(
		appointmentRepository,
		employeeRepository,
		companyRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	updateAppointment := updateAppointmentHandler.NewHandler(updateAppointmentUseCase, log)
	createBlock := createBlockHandler.NewHandler(createBlockUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	deleteAppointment := deleteAppointmentHandler.NewHandler(appointmentsSvc, log)
	getPendingAppointments := getPendingAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getCompanyAppointments := getCompanyAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getClientAppointments := getClientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	createCompany := createCompanyHandler.NewHandler(companiesSvc, log)
	getCompany := getCompanyHandler.NewHandler(companiesSvc, log)
	updateCompanySchedule := updateCompanyScheduleHandler.NewHandler(scheduleSvc, log)
	updateEmployeeSchedule := updateEmployeeScheduleHandler.NewHandler(scheduleSvc, log)
	categoryWorkingHours := categoryWorkingHoursHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix, все маршруты получают идентичность из заголовков
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.WithIdentity)

	// --- Компании ---
	api.HandleFunc("/companies", createCompany.Handle).Methods(http.MethodPost)
	api.HandleFunc("/companies/{companyId:[0-9]+}", getCompany.Handle).Methods(http.MethodGet)
	api.HandleFunc("/companies/by-link/{link}", getCompany.HandleByLink).Methods(http.MethodGet)

	// --- Рабочие часы ---
	api.HandleFunc("/companies/{companyId:[0-9]+}/working-hours",
		updateCompanySchedule.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyId:[0-9]+}/working-hours",
		updateCompanySchedule.Handle).Methods(http.MethodPut)
	api.HandleFunc("/employees/{employeeId:[0-9]+}/working-hours",
		updateEmployeeSchedule.HandleGet).Methods(http.MethodGet)
	api.HandleFunc("/employees/{employeeId:[0-9]+}/working-hours",
		updateEmployeeSchedule.Handle).Methods(http.MethodPut)

	// --- Категорийные рабочие окна ---
	api.HandleFunc("/category-working-hours",
		categoryWorkingHours.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc("/category-working-hours/bulk",
		categoryWorkingHours.HandleBulkCreate).Methods(http.MethodPost)
	api.HandleFunc("/employees/{employeeId:[0-9]+}/category-working-hours",
		categoryWorkingHours.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/category-working-hours/{id:[0-9]+}",
		categoryWorkingHours.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc("/category-working-hours/{id:[0-9]+}",
		categoryWorkingHours.HandleDelete).Methods(http.MethodDelete)

	// --- Доступное время ---
	api.HandleFunc("/employees/{employeeId:[0-9]+}/available-times",
		getAvailableTimes.Handle).Methods(http.MethodGet)

	// --- Записи ---
	api.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/block", createBlock.Handle).Methods(http.MethodPost)
	api.HandleFunc("/appointments/pending", getPendingAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id:[0-9]+}", deleteAppointment.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/appointments/{id:[0-9]+}/complete", completeAppointment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/appointments/{id:[0-9]+}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// --- Списки записей ---
	api.HandleFunc("/companies/{companyId:[0-9]+}/appointments",
		getCompanyAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/clients/{clientId:[0-9]+}/appointments",
		getClientAppointments.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
