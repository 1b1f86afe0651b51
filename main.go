package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"advoqat/config"
	"advoqat/cron"
	"advoqat/database"
	chatRepoPkg "advoqat/database/repository/chat"
	deviceRepoPkg "advoqat/database/repository/device"
	documentRepoPkg "advoqat/database/repository/document"
	paymentRepoPkg "advoqat/database/repository/payment"
	"advoqat/handlers"
	"advoqat/middleware"
	"advoqat/routes"
	"advoqat/services/booking"
	"advoqat/services/consultation"
	"advoqat/services/document"
	ai "advoqat/services/intelligence"
	"advoqat/services/lawyer"
	"advoqat/services/legalcase"
	"advoqat/services/notification"
	"advoqat/services/payments"
	"advoqat/services/user"
	"advoqat/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	documentRepo := documentRepoPkg.NewMongoDocumentRepo()
	chatRepo := chatRepoPkg.NewMongoChatRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()
	deviceRepo := deviceRepoPkg.NewMongoDeviceRepo()

	// services.
	coreBaseURL := config.AppConfig.CoreAPIBaseURL

	journeyStore := booking.NewRedisJourneyStore(utils.GetJourneyCacheClient())
	gateway := booking.NewRemoteBookingGateway(
		coreBaseURL,
		config.AppConfig.CheckoutSuccessURL,
		config.AppConfig.CheckoutCancelURL,
		logger,
	)
	consultationSvc := consultation.NewCoreAPIClient(coreBaseURL, logger)
	journeySvc := booking.NewDefaultJourneyService(journeyStore, gateway, consultationSvc, logger)

	lawyerSvc := lawyer.NewDefaultLawyerService(coreBaseURL, utils.GetCacheClient(), logger)
	caseSvc := legalcase.NewCoreCaseClient(coreBaseURL, cloudinaryStorageService, logger)
	userSvc := user.NewDefaultUserService(coreBaseURL, deviceRepo, logger)

	documentSvc := &document.DefaultDocumentService{
		Repo:    documentRepo,
		Storage: cloudinaryStorageService,
		Logger:  logger,
	}

	paymentSvc := &payments.DefaultPaymentService{
		Repo:          paymentRepo,
		Documents:     documentSvc,
		SuccessURL:    config.AppConfig.CheckoutSuccessURL,
		CancelURL:     config.AppConfig.CheckoutCancelURL,
		WebhookSecret: config.AppConfig.StripeWebhookSecret,
		Logger:        logger,
	}

	ctxStore := ai.NewRedisConversationStore(utils.GetAIContextCacheClient(), 30*time.Minute)
	gemini := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
	assistant := ai.NewLegalAssistant(ctxStore, gemini, lawyerSvc, chatRepo, logger)

	notificationSvc, err := notification.NewDefaultNotificationService(deviceRepo, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}
	journeySvc.Push = notificationSvc
	journeySvc.Reminders = cron.NewReminderClient()
	cron.InitReminderWorker(notificationSvc)

	// handlers.
	bookingHandler := handlers.NewBookingHandler(journeySvc, paymentSvc, logger)
	consultationHandler := handlers.NewConsultationHandler(consultationSvc, logger)
	lawyerHandler := handlers.NewLawyerHandler(lawyerSvc, logger)
	caseHandler := handlers.NewCaseHandler(caseSvc, logger)
	documentHandler := handlers.NewDocumentHandler(documentSvc, logger)
	paymentHandler := handlers.NewPaymentHandler(paymentSvc, logger)
	aiHandler := handlers.NewAIHandler(assistant, logger)
	userHandler := handlers.NewUserHandler(userSvc, logger)

	handlerBundle := &handlers.HandlerBundle{
		// Booking journey endpoints.
		SubmitBookingDetails: bookingHandler.SubmitDetails,
		SaveBookingForLater:  bookingHandler.SaveForLater,
		ProceedToPayment:     bookingHandler.ProceedToPayment,
		BackToDetails:        bookingHandler.BackToDetails,
		CancelBooking:        bookingHandler.Cancel,
		SavedJourneyStatus:   bookingHandler.SavedJourneyStatus,
		ResumeBooking:        bookingHandler.Resume,
		DismissBooking:       bookingHandler.Dismiss,
		BookingPaymentReturn: bookingHandler.PaymentReturn,

		// Consultation endpoints.
		ListConsultations:  consultationHandler.List,
		GetConsultation:    consultationHandler.Get,
		UpdateConsultation: consultationHandler.Update,

		// Lawyer directory endpoints.
		SearchLawyers: lawyerHandler.Search,
		GetLawyer:     lawyerHandler.Get,

		// Case endpoints.
		SubmitCase:     caseHandler.Submit,
		ListCases:      caseHandler.List,
		GetCase:        caseHandler.Get,
		UploadEvidence: caseHandler.UploadEvidence,

		// Document endpoints.
		ListDocumentTemplates: documentHandler.ListTemplates,
		GenerateDocument:      documentHandler.Generate,
		ListDocuments:         documentHandler.List,
		GetDocument:           documentHandler.Get,
		SetSharePasscode:      documentHandler.SetSharePasscode,
		OpenSharedDocument:    documentHandler.OpenShared,
		ExportDocument:        documentHandler.Export,
		DeleteDocument:        documentHandler.Delete,

		// Payment endpoints.
		CreateDocumentCheckout: paymentHandler.CreateDocumentCheckout,
		PaymentHistory:         paymentHandler.History,
		DocumentPaymentReturn:  paymentHandler.DocumentPaymentReturn,
		StripeWebhook:          paymentHandler.Webhook,

		// Assistant endpoints.
		AIChat:         aiHandler.Chat,
		AIHistory:      aiHandler.History,
		AIClearHistory: aiHandler.ClearHistory,
		AISTT:          aiHandler.STT,

		// User endpoints.
		GetProfile:       userHandler.GetProfile,
		UpdateProfile:    userHandler.UpdateProfile,
		RegisterDevice:   userHandler.RegisterDevice,
		UnregisterDevice: userHandler.UnregisterDevice,
		GetDevices:       userHandler.GetDevices,
	}

	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetJourneyCacheClient(), utils.GetAIContextCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
