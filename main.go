package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"heaven-palace/config"
	"heaven-palace/controllers"
	"heaven-palace/routes"
	"heaven-palace/services"
	"heaven-palace/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	settings := config.Load()
	if settings.JWTSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot issue sign-in tokens.")
	}
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := config.ConnectDatabase(settings); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	log.Println("✅ Database connection established and migrations applied.")

	rdb, err := config.ConnectRedis(settings.RedisURL)
	if err != nil {
		log.Fatalf("❌ Redis connect failed: %v", err)
	}

	var (
		wizards services.WizardStore     = services.NewMemoryWizardStore()
		guard   services.SubmissionGuard = services.NoopGuard{}
	)
	if rdb != nil {
		wizards = services.NewRedisWizardStore(rdb)
		guard = services.NewRedisSubmissionGuard(rdb)
	} else {
		log.Println("⚠️  REDIS_URL not set; booking drafts are kept in memory")
	}

	mailer, mailCloser, err := config.NewMailer(settings)
	if err != nil {
		log.Fatalf("❌ Mailer init failed: %v", err)
	}
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	if queue, ok := mailer.(*utils.AMQPMailer); ok {
		out, err := config.NewMailWorkerSender(settings)
		if err != nil {
			log.Fatalf("❌ Mail worker init failed: %v", err)
		}
		if out != nil {
			go func() {
				if err := queue.Consume(workerCtx, out); err != nil {
					log.Printf("❌ Mail worker stopped: %v", err)
				}
			}()
		} else {
			log.Println("⚠️  MAIL_WORKER_DRIVER=none; queued emails need an external worker")
		}
	}

	files, err := config.NewFileStore(settings)
	if err != nil {
		log.Fatalf("❌ File storage init failed: %v", err)
	}

	if err := controllers.RegisterValidators(); err != nil {
		log.Fatalf("❌ Validator setup failed: %v", err)
	}

	// Initialize services
	templateService := services.NewEmailTemplateService(db)
	roomService := services.NewRoomService(db)
	addonService := services.NewAddOnService(db)
	catalogService := services.NewCatalogService(roomService, addonService)
	bookingService := services.NewBookingService(db)
	rewardService := services.NewRewardService(db)
	settingsService := services.NewSettingsService(db)
	authService := services.NewAuthService(db, settings.JWTSecret, mailer, templateService)
	profileService := services.NewProfileService(db, bookingService, rewardService, files)
	offerService := services.NewOfferService(db, mailer, templateService, settings.FrontendURL)
	reviewService := services.NewReviewService(db, mailer, templateService)
	subscriberService := services.NewSubscriberService(db)
	contactService := services.NewContactService(mailer, templateService, settingsService, settings.HotelInbox)
	guestService := services.NewGuestService(db, bookingService)
	dashboardService := services.NewDashboardService(db, roomService)
	bookingFlow := services.NewBookingFlow(catalogService, bookingService, guard, mailer, templateService)

	// Build router
	router := routes.SetupRouter(routes.Options{
		CORSOrigins: settings.CORSOrigins,
		UploadDir:   settings.UploadDir,
		Identifier:  authService,
	}, routes.Handlers{
		Auth:       controllers.NewAuthController(authService),
		Booking:    controllers.NewBookingController(bookingFlow, wizards, bookingService),
		Profile:    controllers.NewProfileController(profileService),
		Room:       controllers.NewRoomController(roomService),
		AddOn:      controllers.NewAddOnController(addonService),
		Reward:     controllers.NewRewardController(rewardService),
		Offer:      controllers.NewOfferController(offerService, files),
		Review:     controllers.NewReviewController(reviewService),
		Subscriber: controllers.NewSubscriberController(subscriberService, contactService),
		Template:   controllers.NewEmailTemplateController(templateService),
		Admin:      controllers.NewAdminController(dashboardService, guestService, settingsService),
	})

	addr := ":" + settings.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	stopWorker()
	if mailCloser != nil {
		if err := mailCloser.Close(); err != nil {
			log.Printf("⚠️  closing mailer: %v", err)
		}
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	log.Println("✅ Server stopped gracefully")
}
