package http

import (
	"github.com/gin-gonic/gin"

	appsvc "intelimed/internal/app"
	"intelimed/internal/bootstrap"
	"intelimed/internal/transport/http/handler"
	"intelimed/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(), middleware.CORS())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	timeout := app.Config.LLMTimeout()
	responder := appsvc.NewResponder(app.LLM, app.ChatLLMConfig(), timeout)
	analyzer := appsvc.NewRiskAnalyzer(app.LLM, app.AnalysisLLMConfig(), timeout)

	chatService := appsvc.NewChatService(app.Stores.Chat, app.Stores.Users, responder)
	assessmentService := appsvc.NewAssessmentService(app.Stores.Assessments, analyzer, app.AlertPublisher)
	goalService := appsvc.NewHealthGoalService(app.Stores.Goals)
	medicationService := appsvc.NewMedicationService(app.Stores.Medications)
	contactService := appsvc.NewEmergencyContactService(app.Stores.Contacts)
	userService := appsvc.NewUserService(app.Stores.Users)
	facilityService := appsvc.NewFacilityService(nil)

	chatHandler := handler.NewChatHandler(chatService)
	chatSocketHandler := handler.NewChatSocketHandler(chatService)
	assessmentHandler := handler.NewAssessmentHandler(assessmentService)
	goalHandler := handler.NewGoalHandler(goalService)
	medicationHandler := handler.NewMedicationHandler(medicationService)
	contactHandler := handler.NewContactHandler(contactService)
	userHandler := handler.NewUserHandler(userService)
	facilityHandler := handler.NewFacilityHandler(facilityService)

	api := router.Group("/api")
	api.GET("/personas", handler.ListPersonas)

	api.POST("/chat", chatHandler.SendMessage)
	api.GET("/chat/ws/:userId", chatSocketHandler.Serve)
	api.GET("/chat-messages/:userId", chatHandler.History)

	api.POST("/health-assessments", assessmentHandler.Submit)
	api.GET("/health-assessments/:userId", assessmentHandler.ListByUser)

	goals := api.Group("/health-goals")
	goals.POST("", goalHandler.Create)
	goals.GET("/:userId", goalHandler.ListByUser)
	goals.PATCH("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)

	medications := api.Group("/medications")
	medications.POST("", medicationHandler.Create)
	medications.GET("/:userId", medicationHandler.ListActive)
	medications.GET("/:userId/reminders", medicationHandler.Reminders)
	medications.PATCH("/:id", medicationHandler.Update)
	medications.DELETE("/:id", medicationHandler.Delete)

	contacts := api.Group("/emergency-contacts")
	contacts.POST("", contactHandler.Create)
	contacts.GET("/:userId", contactHandler.ListByUser)
	contacts.PATCH("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	api.POST("/users", userHandler.Create)
	api.GET("/users/:id", userHandler.Get)

	api.GET("/facilities", facilityHandler.List)
	api.GET("/nearby-facilities", facilityHandler.Nearby)
	api.GET("/facility-details/:placeId", facilityHandler.Details)

	return router
}
