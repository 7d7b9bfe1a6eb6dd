package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shophub_v1_202608/internal/controller"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/repository"
)

// Controllers 路由依赖的控制器集合
type Controllers struct {
	Auth       *controller.AuthController
	Tenant     *controller.TenantController
	ProductTyp *controller.ProductTypeController
	Product    *controller.ProductController
	Order      *controller.OrderController
	Setting    *controller.SettingController
	Plugin     *controller.PluginController
	Storefront *controller.StorefrontController
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl Controllers, jwt *middleware.JWTManager,
	users repository.UserRepository, limiter *middleware.RateLimiter,
	tenantMw gin.HandlerFunc) {

	// 1. 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// 2. 全局限流
	r.Use(limiter.Middleware())

	api := r.Group("/api")
	{
		// auth 认证组
		auth := api.Group("/auth")
		{
			// POST /api/auth/admin/login
			auth.POST("/admin/login", ctl.Auth.AdminLogin)
			// POST /api/auth/tenant/login
			auth.POST("/tenant/login", ctl.Auth.TenantLogin)
			// POST /api/auth/admin/api-keys（需 admin token）
			auth.POST("/admin/api-keys", middleware.VerifyAdminToken(jwt), ctl.Auth.IssueAPIKey)
		}

		// 平台管理组：admin token 或 API Key
		admin := api.Group("/admin", middleware.VerifyAdminTokenOrAPIKey(jwt, users))
		{
			adminTenants := admin.Group("/tenants")
			{
				adminTenants.POST("", ctl.Tenant.Create)
				adminTenants.GET("", ctl.Tenant.List)
				adminTenants.GET("/:id", ctl.Tenant.Get)
				adminTenants.PUT("/:id", ctl.Tenant.Update)
				adminTenants.DELETE("/:id", ctl.Tenant.Delete)
			}
		}

		// 租户域：先解析租户（404 兜底），再分认证级别
		tenantScoped := api.Group("/:tenant_slug", tenantMw)
		{
			// 租户管理端：tenant token
			tadm := tenantScoped.Group("/admin", middleware.VerifyTenantToken(jwt))
			{
				types := tadm.Group("/product-types")
				{
					types.POST("", ctl.ProductTyp.Create)
					types.GET("", ctl.ProductTyp.List)
					types.GET("/:id", ctl.ProductTyp.Get)
					types.PUT("/:id", ctl.ProductTyp.Update)
					types.DELETE("/:id", ctl.ProductTyp.Delete)
				}

				products := tadm.Group("/products")
				{
					products.POST("", ctl.Product.Create)
					products.GET("", ctl.Product.List)
					products.GET("/:id", ctl.Product.Get)
					products.PUT("/:id", ctl.Product.Update)
					products.DELETE("/:id", ctl.Product.Delete)
					// POST /api/:tenant_slug/admin/products/:id/images
					products.POST("/:id/images", ctl.Product.UploadImage)
				}

				orders := tadm.Group("/orders")
				{
					orders.POST("", ctl.Order.Create)
					orders.GET("", ctl.Order.List)
					orders.GET("/:id", ctl.Order.Get)
					orders.PUT("/:id", ctl.Order.Update)
					orders.DELETE("/:id", ctl.Order.Delete)
					// POST /api/:tenant_slug/admin/orders/:id/payment
					orders.POST("/:id/payment", ctl.Order.ProcessPayment)
				}

				workflows := tadm.Group("/workflows")
				{
					workflows.POST("", ctl.Setting.CreateWorkflow)
					workflows.GET("", ctl.Setting.ListWorkflows)
					workflows.GET("/:id", ctl.Setting.GetWorkflow)
					workflows.PUT("/:id", ctl.Setting.UpdateWorkflow)
					workflows.DELETE("/:id", ctl.Setting.DeleteWorkflow)
				}

				deliveries := tadm.Group("/delivery-methods")
				{
					deliveries.POST("", ctl.Setting.CreateDeliveryMethod)
					deliveries.GET("", ctl.Setting.ListDeliveryMethods)
					deliveries.GET("/:id", ctl.Setting.GetDeliveryMethod)
					deliveries.PUT("/:id", ctl.Setting.UpdateDeliveryMethod)
					deliveries.DELETE("/:id", ctl.Setting.DeleteDeliveryMethod)
				}

				gateways := tadm.Group("/payment-gateways")
				{
					gateways.POST("", ctl.Setting.CreatePaymentGateway)
					gateways.GET("", ctl.Setting.ListPaymentGateways)
					gateways.GET("/:id", ctl.Setting.GetPaymentGateway)
					gateways.PUT("/:id", ctl.Setting.UpdatePaymentGateway)
					gateways.DELETE("/:id", ctl.Setting.DeletePaymentGateway)
				}

				integrations := tadm.Group("/integrations")
				{
					integrations.POST("", ctl.Setting.CreateIntegration)
					integrations.GET("", ctl.Setting.ListIntegrations)
					integrations.GET("/:id", ctl.Setting.GetIntegration)
					integrations.PUT("/:id", ctl.Setting.UpdateIntegration)
					integrations.DELETE("/:id", ctl.Setting.DeleteIntegration)
				}

				plugins := tadm.Group("/plugins")
				{
					plugins.GET("/catalog", ctl.Plugin.Catalog)
					plugins.GET("", ctl.Plugin.ListInstalled)
					plugins.POST("", ctl.Plugin.Install)
					plugins.PUT("/:slug", ctl.Plugin.Update)
					plugins.DELETE("/:slug", ctl.Plugin.Uninstall)
				}
			}

			// 店面：公开读，token 可选（带上则附加身份）
			storefront := tenantScoped.Group("/storefront", middleware.OptionalTenantToken(jwt))
			{
				storefront.GET("/products", ctl.Storefront.ListProducts)
				storefront.GET("/products/:id", ctl.Storefront.GetProduct)
			}
		}
	}
}
