// kmapin-logistics/internal/routes/api_routes.go
package routes

import (
	"kmapin-logistics/internal/handlers"
	"kmapin-logistics/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все маршруты API, требующие аутентификации.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	// Группа для всех API-запросов с префиксом /api
	apiGroup := api.Group("/api")
	{
		// Профиль пользователя
		profile := apiGroup.Group("/profile")
		{
			profile.GET("", handlers.GetProfileHandler)
			profile.PUT("", handlers.UpdateProfileHandler)
		}

		// --- ЛЕНТА СОБЫТИЙ ---
		events := apiGroup.Group("/events")
		{
			// WebSocket эндпоинт
			events.GET("/ws", func(c *gin.Context) {
				handlers.EventsWSEndpoint(c)
			})
		}
		apiGroup.GET("/activity", handlers.ListActivityHandler)

		// --- КЛИЕНТЫ ---
		clients := apiGroup.Group("/clients")
		clients.Use(middleware.PermissionMiddleware("clients_view"))
		{
			clients.GET("", handlers.ListClientsHandler)
			clients.POST("", middleware.PermissionMiddleware("clients_create"), handlers.CreateClientHandler)
			clients.GET("/:id", handlers.GetClientHandler)
			clients.PUT("/:id", middleware.PermissionMiddleware("clients_edit"), handlers.UpdateClientHandler)
			clients.DELETE("/:id", middleware.PermissionMiddleware("clients_delete"), handlers.DeleteClientHandler)
			clients.GET("/:id/history", handlers.GetClientHistoryHandler)
		}

		// --- СТРАНЫ ---
		countries := apiGroup.Group("/countries")
		countries.Use(middleware.PermissionMiddleware("countries_view"))
		{
			countries.GET("", handlers.ListCountriesHandler)
			countries.POST("", middleware.PermissionMiddleware("countries_create"), handlers.CreateCountryHandler)
			countries.GET("/:id", handlers.GetCountryHandler)
			countries.PUT("/:id", middleware.PermissionMiddleware("countries_edit"), handlers.UpdateCountryHandler)
			countries.DELETE("/:id", middleware.PermissionMiddleware("countries_delete"), handlers.DeleteCountryHandler)
		}

		// --- КОТИРОВКИ ---
		quotes := apiGroup.Group("/quotes")
		quotes.Use(middleware.PermissionMiddleware("quotes_view"))
		{
			quotes.GET("", handlers.ListQuotesHandler)
			quotes.GET("/export", handlers.ExportQuotesHandler)
			quotes.POST("/estimate", handlers.EstimateQuoteHandler)
			quotes.POST("/classify-cargo", handlers.ClassifyCargoHandler)
			quotes.POST("", middleware.PermissionMiddleware("quotes_create"), handlers.CreateQuoteHandler)
			quotes.GET("/:id", handlers.GetQuoteHandler)
			quotes.PUT("/:id", middleware.PermissionMiddleware("quotes_edit"), handlers.UpdateQuoteHandler)
			quotes.DELETE("/:id", middleware.PermissionMiddleware("quotes_delete"), handlers.DeleteQuoteHandler)
			quotes.POST("/:id/submit", middleware.PermissionMiddleware("quotes_edit"), handlers.SubmitQuoteHandler)
			quotes.POST("/:id/send", middleware.PermissionMiddleware("quotes_send"), handlers.SendQuoteHandler)
			quotes.POST("/:id/accept", middleware.PermissionMiddleware("quotes_decide"), handlers.AcceptQuoteHandler)
			quotes.POST("/:id/reject", middleware.PermissionMiddleware("quotes_decide"), handlers.RejectQuoteHandler)
			quotes.GET("/:id/history", handlers.GetQuoteHistoryHandler)
		}

		// --- ОТГРУЗКИ ---
		shipments := apiGroup.Group("/shipments")
		shipments.Use(middleware.PermissionMiddleware("shipments_view"))
		{
			shipments.GET("", handlers.ListShipmentsHandler)
			shipments.GET("/export", handlers.ExportShipmentsHandler)
			shipments.GET("/:id", handlers.GetShipmentHandler)
			shipments.POST("/:id/status", middleware.PermissionMiddleware("shipments_edit"), handlers.UpdateShipmentStatusHandler)
			shipments.POST("/:id/mark-paid", middleware.PermissionMiddleware("shipments_mark_paid"), handlers.MarkShipmentPaidHandler)
			shipments.GET("/:id/history", handlers.GetShipmentHistoryHandler)
		}

		// --- ЗАЯВКИ НА ЗАБОР ГРУЗА ---
		pickups := apiGroup.Group("/pickups")
		pickups.Use(middleware.PermissionMiddleware("pickups_view"))
		{
			pickups.GET("", handlers.ListPickupsHandler)
			pickups.POST("", middleware.PermissionMiddleware("pickups_create"), handlers.CreatePickupHandler)
			pickups.GET("/:id", handlers.GetPickupHandler)
			pickups.PUT("/:id", middleware.PermissionMiddleware("pickups_edit"), handlers.UpdatePickupHandler)
			pickups.DELETE("/:id", middleware.PermissionMiddleware("pickups_delete"), handlers.DeletePickupHandler)
			pickups.POST("/:id/start", middleware.PermissionMiddleware("pickups_edit"), handlers.StartPickupHandler)
			pickups.POST("/:id/complete", middleware.PermissionMiddleware("pickups_edit"), handlers.CompletePickupHandler)
			pickups.POST("/:id/cancel", middleware.PermissionMiddleware("pickups_edit"), handlers.CancelPickupHandler)
			pickups.GET("/:id/history", handlers.GetPickupHistoryHandler)
		}

		// --- ПРАВИЛА ЦЕНООБРАЗОВАНИЯ ---
		pricingRules := apiGroup.Group("/pricing-rules")
		pricingRules.Use(middleware.PermissionMiddleware("pricing_rules_view"))
		{
			pricingRules.GET("", handlers.ListPricingRulesHandler)
			pricingRules.POST("", middleware.PermissionMiddleware("pricing_rules_edit"), handlers.CreatePricingRuleHandler)
			pricingRules.GET("/:id", handlers.GetPricingRuleHandler)
			pricingRules.PUT("/:id", middleware.PermissionMiddleware("pricing_rules_edit"), handlers.UpdatePricingRuleHandler)
			pricingRules.DELETE("/:id", middleware.PermissionMiddleware("pricing_rules_edit"), handlers.DeletePricingRuleHandler)
		}

		// --- ПОЛЬЗОВАТЕЛИ ---
		users := apiGroup.Group("/users")
		users.Use(middleware.PermissionMiddleware("users_view"))
		{
			users.GET("", handlers.ListUsersHandler)
			users.POST("", middleware.PermissionMiddleware("users_create"), handlers.CreateUserHandler)
			users.GET("/:id", handlers.GetUserHandler)
			users.PUT("/:id", middleware.PermissionMiddleware("users_edit"), handlers.UpdateUserHandler)
			users.DELETE("/:id", middleware.PermissionMiddleware("users_delete"), handlers.DeleteUserHandler)
		}

		// --- РОЛИ ---
		roles := apiGroup.Group("/roles")
		roles.Use(middleware.PermissionMiddleware("roles_view"))
		{
			roles.GET("", handlers.ListRolesHandler)
			roles.POST("", middleware.PermissionMiddleware("roles_create"), handlers.CreateRoleHandler)
			roles.GET("/:id", handlers.GetRoleHandler)
			roles.PUT("/:id", middleware.PermissionMiddleware("roles_edit"), handlers.UpdateRoleHandler)
			roles.DELETE("/:id", middleware.PermissionMiddleware("roles_delete"), handlers.DeleteRoleHandler)
		}

		// --- ПРАВА ДОСТУПА ---
		permissions := apiGroup.Group("/permissions")
		permissions.Use(middleware.PermissionMiddleware("permissions_view"))
		{
			permissions.GET("", handlers.ListPermissionsHandler)
			permissions.POST("", middleware.PermissionMiddleware("permissions_create"), handlers.CreatePermissionHandler)
			permissions.PUT("/:id", middleware.PermissionMiddleware("permissions_edit"), handlers.UpdatePermissionHandler)
			permissions.DELETE("/:id", middleware.PermissionMiddleware("permissions_delete"), handlers.DeletePermissionHandler)
		}
	} // конец apiGroup
}
