package router

import (
	"github.com/gin-gonic/gin"
	"github.com/shrimpcfr/backend/internal/domain/identity"
	"github.com/shrimpcfr/backend/internal/interfaces/http/handler"
	"github.com/shrimpcfr/backend/internal/interfaces/http/middleware"
)

// Handlers are the HTTP handlers mounted by APIGroups
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Rate       *handler.RateHandler
	Product    *handler.ProductHandler
	Constants  *handler.ConstantsHandler
	Calculator *handler.CalculatorHandler
	Report     *handler.ReportHandler
	System     *handler.SystemHandler
}

func perm(module identity.Module, action identity.Action) gin.HandlerFunc {
	return middleware.RequirePermission(module, action)
}

// APIGroups returns the route groups of the API. authMiddleware runs on the
// /auth group only, e.g. a stricter rate limiter.
func APIGroups(h Handlers, authMiddleware ...gin.HandlerFunc) []*DomainGroup {
	authn := middleware.RequireAuthenticated()

	authGroup := NewDomainGroup("auth", "/auth").Use(authMiddleware...)
	authGroup.POST("/login", h.Auth.Login)
	authGroup.POST("/refresh", h.Auth.RefreshToken)
	authGroup.POST("/logout", authn, h.Auth.Logout)
	authGroup.GET("/me", authn, h.Auth.Me)
	authGroup.GET("/permissions", authn, h.Auth.Permissions)
	authGroup.PUT("/password", authn, h.Auth.ChangePassword)

	users := NewDomainGroup("users", "/users")
	users.GET("", perm(identity.ModuleUsers, identity.ActionRead), h.User.List)
	users.POST("", perm(identity.ModuleUsers, identity.ActionCreate), h.User.Create)
	users.POST("/reset-password", perm(identity.ModuleUsers, identity.ActionUpdate), h.User.ResetPassword)
	users.GET("/:id", perm(identity.ModuleUsers, identity.ActionRead), h.User.GetByID)
	users.PUT("/:id", perm(identity.ModuleUsers, identity.ActionUpdate), h.User.Update)
	users.DELETE("/:id", perm(identity.ModuleUsers, identity.ActionDelete), h.User.Delete)
	users.PATCH("/:id/status", perm(identity.ModuleUsers, identity.ActionUpdate), h.User.ToggleStatus)

	rates := NewDomainGroup("rates", "/rates")
	rates.GET("", perm(identity.ModuleRates, identity.ActionRead), h.Rate.List)
	rates.POST("", perm(identity.ModuleRates, identity.ActionCreate), h.Rate.Create)
	rates.GET("/lookup", perm(identity.ModuleRates, identity.ActionRead), h.Rate.Lookup)
	rates.GET("/:id", perm(identity.ModuleRates, identity.ActionRead), h.Rate.GetByID)
	rates.PUT("/:id", perm(identity.ModuleRates, identity.ActionUpdate), h.Rate.Update)
	rates.DELETE("/:id", perm(identity.ModuleRates, identity.ActionDelete), h.Rate.Delete)

	products := NewDomainGroup("products", "/products")
	products.GET("", perm(identity.ModuleProducts, identity.ActionRead), h.Product.List)
	products.POST("", perm(identity.ModuleProducts, identity.ActionCreate), h.Product.Create)
	products.GET("/:id", perm(identity.ModuleProducts, identity.ActionRead), h.Product.GetByID)
	products.PUT("/:id", perm(identity.ModuleProducts, identity.ActionUpdate), h.Product.Update)
	products.DELETE("/:id", perm(identity.ModuleProducts, identity.ActionDelete), h.Product.Delete)
	products.PATCH("/:id/status", perm(identity.ModuleProducts, identity.ActionUpdate), h.Product.ToggleStatus)

	constants := NewDomainGroup("constants", "/constants")
	constants.GET("", perm(identity.ModuleConstants, identity.ActionRead), h.Constants.Get)
	constants.PUT("", perm(identity.ModuleConstants, identity.ActionUpdate), h.Constants.Update)
	constants.POST("/reset", perm(identity.ModuleConstants, identity.ActionUpdate), h.Constants.Reset)

	calculator := NewDomainGroup("calculator", "/calculator").
		Use(perm(identity.ModuleCalculator, identity.ActionCalculate))
	calculator.POST("/product-cost", h.Calculator.ProductCost)
	calculator.POST("/reference-cost", h.Calculator.ReferenceCost)
	calculator.POST("/cfr", h.Calculator.FinalCFR)
	calculator.POST("/subsidy", h.Calculator.Subsidy)
	calculator.POST("/subsidy/batch", h.Calculator.SubsidyBatch)
	calculator.POST("/subsidy/validate", h.Calculator.ValidateSubsidy)

	demo := NewDomainGroup("demo", "/demo")
	demo.POST("/costing", perm(identity.ModuleDemo, identity.ActionRead), h.Calculator.Demo)

	reports := NewDomainGroup("reports", "/reports")
	reports.GET("/production", perm(identity.ModuleReports, identity.ActionRead), h.Report.Production)
	reports.GET("/production/export", perm(identity.ModuleReports, identity.ActionExport), h.Report.Export)

	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", authn, h.System.GetSystemInfo)

	return []*DomainGroup{authGroup, users, rates, products, constants, calculator, demo, reports, system}
}
