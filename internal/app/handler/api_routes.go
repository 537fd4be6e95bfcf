package handler

import (
	"crm/internal/app/middleware"
	"crm/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *Handler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	read := authMiddleware.WithAuthCheck(role.Viewer, role.Sales, role.Admin)
	write := authMiddleware.WithAuthCheck(role.Sales, role.Admin)
	admin := authMiddleware.WithAuthCheck(role.Admin)

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.RegisterUser)
		auth.POST("/login", h.Auth.LoginUser)
		auth.POST("/logout", read, h.Auth.LogoutUser)
		auth.GET("/profile", read, h.Auth.GetUserProfile)
	}
	api.PUT("/users/:id/role", admin, h.Auth.UpdateUserRole)

	// ============ Колледжи ============
	colleges := api.Group("/colleges")
	{
		colleges.GET("", read, h.GetColleges)
		colleges.GET("/:id", read, h.GetCollege)
		colleges.POST("", write, h.CreateCollege)
		colleges.PUT("/:id", write, h.UpdateCollege)
		colleges.PUT("/:id/status", write, h.UpdateCollegeStatus)

		colleges.GET("/:id/contacts", read, h.GetCollegeContacts)
		colleges.GET("/:id/meetings", read, h.GetCollegeMeetings)
		colleges.GET("/:id/deals", read, h.GetCollegeDeals)

		// М-М связи
		colleges.GET("/:id/courses", read, h.GetCollegeCourses)
		colleges.POST("/:id/courses", write, h.AssignCourse)
		colleges.DELETE("/:id/courses/:course_id", write, h.UnassignCourse)
		colleges.GET("/:id/pricing-models", read, h.GetCollegePricingModels)
		colleges.POST("/:id/pricing-models", write, h.AssignPricingModel)
		colleges.DELETE("/:id/pricing-models/:model_id", write, h.UnassignPricingModel)
	}

	// ============ Контакты ============
	contacts := api.Group("/contacts")
	{
		contacts.GET("", read, h.GetContacts)
		contacts.GET("/:id", read, h.GetContact)
		contacts.POST("", write, h.CreateContact)
		contacts.PUT("/:id", write, h.UpdateContact)
		contacts.DELETE("/:id", write, h.DeleteContact)
	}

	// ============ Встречи ============
	meetings := api.Group("/meetings")
	{
		meetings.GET("", read, h.GetMeetings)
		meetings.GET("/:id", read, h.GetMeeting)
		meetings.POST("", write, h.CreateMeeting)
		meetings.PUT("/:id", write, h.UpdateMeeting)
		meetings.DELETE("/:id", write, h.DeleteMeeting)
	}

	// ============ Курсы и темы ============
	courses := api.Group("/courses")
	{
		courses.GET("", read, h.GetCourses)
		courses.GET("/:id", read, h.GetCourse)
		courses.POST("", write, h.CreateCourse)
		courses.PUT("/:id", write, h.UpdateCourse)
		courses.DELETE("/:id", admin, h.DeleteCourse)

		courses.POST("/bulk-price", write, h.BulkUpdateCoursePrices)
		courses.POST("/bulk-price/preview", read, h.PreviewCoursePrices)

		courses.GET("/:id/topics", read, h.GetTopics)
		courses.POST("/:id/topics", write, h.CreateTopic)
		courses.PUT("/:id/topics/reorder", write, h.ReorderTopics)
		courses.POST("/:id/topics/import", write, h.ImportTopics)
		courses.PUT("/:id/topics/:topic_id", write, h.UpdateTopic)
		courses.DELETE("/:id/topics/:topic_id", write, h.DeleteTopic)
	}

	// ============ Модели ценообразования ============
	pricingModels := api.Group("/pricing-models")
	{
		pricingModels.GET("", read, h.GetPricingModels)
		pricingModels.GET("/:id", read, h.GetPricingModel)
		pricingModels.POST("", write, h.CreatePricingModel)
		pricingModels.PUT("/:id", write, h.UpdatePricingModel)
		pricingModels.DELETE("/:id", admin, h.DeletePricingModel)

		pricingModels.POST("/bulk-price", write, h.BulkUpdatePricingModelPrices)
		pricingModels.POST("/bulk-price/preview", read, h.PreviewPricingModelPrices)
	}

	// ============ Выбор записей для массовых операций ============
	selections := api.Group("/selections/:scope")
	selections.Use(read)
	{
		selections.GET("", h.GetSelection)
		selections.POST("/add", h.AddToSelection)
		selections.POST("/remove", h.RemoveFromSelection)
		selections.POST("/toggle", h.ToggleSelection)
		selections.POST("/select-all", h.SelectAll)
		selections.DELETE("", h.ClearSelection)
	}

	// ============ Сделки ============
	deals := api.Group("/deals")
	{
		deals.GET("", read, h.GetDeals)
		deals.GET("/:id", read, h.GetDeal)
		deals.POST("", write, h.CreateDeal)
		deals.PUT("/:id", write, h.UpdateDeal)
		deals.DELETE("/:id", write, h.DeleteDeal)
	}

	api.GET("/dashboard", read, h.GetDashboard)
	api.GET("/search", read, h.Search)
	api.GET("/audit-logs", admin, h.GetAuditLogs)

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
