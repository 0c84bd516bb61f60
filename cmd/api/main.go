package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/cleantrack/cleantrack-backend-go/internal/config"
	appHTTP "github.com/cleantrack/cleantrack-backend-go/internal/handler/http"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/database"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/email"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/geocode"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/jwt"
	"github.com/cleantrack/cleantrack-backend-go/internal/pkg/storage"
	"github.com/cleantrack/cleantrack-backend-go/internal/repository/postgresql"
	assignmentService "github.com/cleantrack/cleantrack-backend-go/internal/service/assignment"
	attendanceService "github.com/cleantrack/cleantrack-backend-go/internal/service/attendance"
	authService "github.com/cleantrack/cleantrack-backend-go/internal/service/auth"
	checklistService "github.com/cleantrack/cleantrack-backend-go/internal/service/checklist"
	cleanerService "github.com/cleantrack/cleantrack-backend-go/internal/service/cleaner"
	invitationService "github.com/cleantrack/cleantrack-backend-go/internal/service/invitation"
	locationService "github.com/cleantrack/cleantrack-backend-go/internal/service/location"
	"github.com/cleantrack/cleantrack-backend-go/internal/service/notifier"
	"github.com/cleantrack/cleantrack-backend-go/internal/service/photo"
	settingsService "github.com/cleantrack/cleantrack-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	profileRepo := postgresql.NewProfileRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	checklistRepo := postgresql.NewChecklistRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	invitationRepo := postgresql.NewInvitationRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	var localStorage *storage.LocalStorage
	switch cfg.Storage.Type {
	case "local":
		localStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
			cfg.Storage.URLSecret,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	emailService, err := email.NewService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	geocoder := geocode.NewGoogleClient(cfg.Geocoding.APIKey)
	binder := photo.NewBinder(localStorage)
	dispatcher := notifier.NewNotifier(emailService, profileRepo, notifier.Config{})
	defer dispatcher.Stop()

	authSvc := authService.NewAuthService(profileRepo, JWTService)
	cleanerSvc := cleanerService.NewCleanerService(profileRepo)
	locationSvc := locationService.NewLocationService(locationRepo, settingsRepo, geocoder)
	assignmentSvc := assignmentService.NewAssignmentService(assignmentRepo, profileRepo, locationRepo, settingsRepo, emailService)
	checklistSvc := checklistService.NewChecklistService(checklistRepo, locationRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)
	invitationSvc := invitationService.NewInvitationService(invitationRepo, profileRepo, settingsRepo, emailService, txManager, cfg.App.FrontendURL)
	attendanceSvc := attendanceService.NewAttendanceService(
		sessionRepo,
		assignmentRepo,
		locationRepo,
		profileRepo,
		checklistRepo,
		settingsRepo,
		binder,
		dispatcher,
		txManager,
	)

	router := appHTTP.NewRouter(cfg, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Cleaner:    appHTTP.NewCleanerHandler(cleanerSvc),
		Location:   appHTTP.NewLocationHandler(locationSvc),
		Assignment: appHTTP.NewAssignmentHandler(assignmentSvc),
		Checklist:  appHTTP.NewChecklistHandler(checklistSvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Invitation: appHTTP.NewInvitationHandler(invitationSvc),
		File:       appHTTP.NewFileHandler(localStorage),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
