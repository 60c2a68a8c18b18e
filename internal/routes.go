package internal

import (
	"net/http"
	"zoodash/internal/controllers"
	"zoodash/internal/providers"
)

func InitRoutes(authController *controllers.AuthController, dashboardController *controllers.DashboardController, apiController *controllers.ApiController, chartsController *controllers.ChartsController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/login", http.HandlerFunc(authController.ShowLogin))
	routers.Post("/login", http.HandlerFunc(authController.DoLogin))
	routers.Post("/logout", http.HandlerFunc(authController.DoLogout))

	routers.Get("/charts/bars.svg", http.HandlerFunc(chartsController.Bars))
	routers.Get("/charts/ribbon.svg", http.HandlerFunc(chartsController.Ribbon))
	routers.Get("/charts/deviation.svg", http.HandlerFunc(chartsController.Deviation))

	routers.Get("/api/alerts", http.HandlerFunc(apiController.GetAlerts))
	routers.Post("/api/alerts/ack", http.HandlerFunc(apiController.AckAlert))
	routers.Post("/api/alerts/ack_all", http.HandlerFunc(apiController.AckAll))
	routers.Post("/api/alerts/scope", http.HandlerFunc(apiController.SetAlertScope))
	routers.Post("/api/reload", http.HandlerFunc(apiController.Reload))

	// catches every path not routed above; the controller 404s non-root
	routers.Get("/", http.HandlerFunc(dashboardController.Dashboard))
	return routers
}
