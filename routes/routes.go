package routes

import (
	"time"

	"advoqat/handlers"
	"advoqat/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up the consultation booking journey endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("/details", hb.SubmitBookingDetails)
		api.POST("/save", hb.SaveBookingForLater)
		api.POST("/payment", hb.ProceedToPayment)
		api.POST("/back", hb.BackToDetails)
		api.POST("/cancel", hb.CancelBooking)
		api.GET("/saved", hb.SavedJourneyStatus)
		api.POST("/resume", hb.ResumeBooking)
		api.DELETE("/saved", hb.DismissBooking)
		api.GET("/payment-return", hb.BookingPaymentReturn)
	}
}

// RegisterConsultationRoutes sets up consultation management endpoints.
func RegisterConsultationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/consultations")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("", hb.ListConsultations)
		api.GET("/:id", hb.GetConsultation)
		api.PATCH("/:id", hb.UpdateConsultation)
	}
}

// RegisterLawyerRoutes sets up the public lawyer directory.
func RegisterLawyerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/lawyers")
	{
		api.GET("", hb.SearchLawyers)
		api.GET("/:id", hb.GetLawyer)
	}
}

// RegisterCaseRoutes sets up case submission and tracking.
func RegisterCaseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cases")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("", hb.SubmitCase)
		api.GET("", hb.ListCases)
		api.GET("/:id", hb.GetCase)
		api.POST("/evidence", hb.UploadEvidence)
	}
}

// RegisterDocumentRoutes sets up document generation. The shared-document
// endpoint is public; the passcode is the credential.
func RegisterDocumentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/documents/shared/:id", hb.OpenSharedDocument)

	api := r.Group("/api/documents")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/templates", hb.ListDocumentTemplates)
		api.POST("", hb.GenerateDocument)
		api.GET("", hb.ListDocuments)
		api.GET("/:id", hb.GetDocument)
		api.PUT("/:id/passcode", hb.SetSharePasscode)
		api.POST("/:id/export", hb.ExportDocument)
		api.DELETE("/:id", hb.DeleteDocument)
	}
}

// RegisterPaymentRoutes sets up checkout and reconciliation endpoints. The
// webhook stays outside the auth group; Stripe signs its own requests.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.StripeWebhook)

	api := r.Group("/api/payments")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("/documents", hb.CreateDocumentCheckout)
		api.GET("/history", hb.PaymentHistory)
		api.GET("/document-return", hb.DocumentPaymentReturn)
	}
}

// RegisterAIRoutes sets up assistant endpoints.
func RegisterAIRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/ai")
	{
		api.Use(middleware.AuthMiddleware())
		api.POST("/chat", hb.AIChat)
		api.GET("/history", hb.AIHistory)
		api.DELETE("/history", hb.AIClearHistory)
		api.POST("/stt", hb.AISTT)
	}
}

// RegisterUserRoutes sets up profile and device endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.AuthMiddleware())
		api.GET("/me", hb.GetProfile)
		api.PATCH("/me", hb.UpdateProfile)
		api.POST("/devices", hb.RegisterDevice)
		api.GET("/devices", hb.GetDevices)
		api.DELETE("/devices/:deviceId", hb.UnregisterDevice)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterBookingRoutes(r, hb)
	RegisterConsultationRoutes(r, hb)
	RegisterLawyerRoutes(r, hb)
	RegisterCaseRoutes(r, hb)
	RegisterDocumentRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAIRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterHealthRoute(r)
}
