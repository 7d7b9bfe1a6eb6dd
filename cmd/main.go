package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shophub_v1_202608/internal/controller"
	"shophub_v1_202608/internal/middleware"
	"shophub_v1_202608/internal/model"
	"shophub_v1_202608/internal/plugin"
	"shophub_v1_202608/internal/repository"
	"shophub_v1_202608/internal/router"
	"shophub_v1_202608/internal/service"
	"shophub_v1_202608/internal/task"
	"shophub_v1_202608/pkg/config"
	"shophub_v1_202608/pkg/database"
	"shophub_v1_202608/pkg/logger"
	"shophub_v1_202608/pkg/utils"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer zlog.Sync()

	// 3. 初始化数据库
	db, err := database.Open(database.Options{
		Type:       cfg.DBType,
		DSN:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		LogSQL:     !cfg.IsProduction(),
	}, model.AllModels()...)
	if err != nil {
		zlog.Fatalf("数据库初始化失败: %v", err)
	}

	// 4. 组装依赖
	deps, err := initDependencies(cfg, db, zlog)
	if err != nil {
		zlog.Fatalf("依赖初始化失败: %v", err)
	}

	// 5. 启动期准备：超级管理员 + 插件目录
	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := deps.Services.Auth.EnsureSuperAdmin(bootCtx, cfg.SuperAdminEmail, cfg.SuperAdminPassword, cfg.SuperAdminAPIKey); err != nil {
		cancel()
		zlog.Fatalf("超级管理员初始化失败: %v", err)
	}
	plugin.SeedBuiltins(bootCtx, deps.Registry, deps.Repos.Plugin, zlog)
	if err := plugin.LoadManifests(bootCtx, cfg.PluginDir, deps.Repos.Plugin, zlog); err != nil {
		zlog.Warnf("插件清单载入失败: %v", err)
	}
	cancel()

	// 6. 启动定时任务
	housekeeping := task.NewHousekeepingTask(deps.Repos.Order, deps.Limiter, deps.Cache, zlog)
	if err := housekeeping.Start(); err != nil {
		zlog.Fatalf("定时任务启动失败: %v", err)
	}
	defer housekeeping.Stop()

	// 7. 初始化路由并启动服务
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(zlog))

	tenantMw := middleware.ResolveTenant(deps.Repos.Tenant, deps.Cache, zlog)
	router.InitRoutes(r, deps.Controllers, deps.JWT, deps.Repos.User, deps.Limiter, tenantMw)

	startServer(r, cfg.ServerPort, zlog)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers router.Controllers

	JWT      *middleware.JWTManager
	Limiter  *middleware.RateLimiter
	Cache    *utils.TTLCache
	Registry *plugin.Registry
}

// Repositories 仓库集合
type Repositories struct {
	User        repository.UserRepository
	Tenant      repository.TenantRepository
	ProductType repository.ProductTypeRepository
	Product     repository.ProductRepository
	Order       repository.OrderRepository
	Workflow    repository.SettingRepository[model.Workflow]
	Delivery    repository.SettingRepository[model.DeliveryMethod]
	Gateway     repository.SettingRepository[model.PaymentGateway]
	Integration repository.SettingRepository[model.Integration]
	Plugin      repository.PluginRepository
}

// Services 服务集合
type Services struct {
	Auth        *service.AuthService
	Tenant      *service.TenantService
	ProductType *service.ProductTypeService
	Product     *service.ProductService
	Order       *service.OrderService
	Payment     *service.PaymentService
	Workflow    *service.WorkflowService
	Delivery    *service.DeliveryMethodService
	Gateway     *service.PaymentGatewayService
	Integration *service.IntegrationService
	Plugin      *service.PluginService
	Storage     *service.StorageService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.AppConfig, db *gorm.DB, zlog *zap.SugaredLogger) (*Dependencies, error) {
	// -------- Repo 层 --------
	repos := &Repositories{
		User:        repository.NewUserRepository(db),
		Tenant:      repository.NewTenantRepository(db),
		ProductType: repository.NewProductTypeRepository(db),
		Product:     repository.NewProductRepository(db),
		Order:       repository.NewOrderRepository(db),
		Workflow:    repository.NewSettingRepository[model.Workflow](db, "工作流"),
		Delivery:    repository.NewSettingRepository[model.DeliveryMethod](db, "配送方式"),
		Gateway:     repository.NewSettingRepository[model.PaymentGateway](db, "支付网关"),
		Integration: repository.NewSettingRepository[model.Integration](db, "集成"),
		Plugin:      repository.NewPluginRepository(db),
	}

	// -------- 基础组件 --------
	jwtMgr := middleware.NewJWTManager(cfg.AdminJWTSecret, cfg.TenantJWTSecret)
	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindow)*time.Second)
	cache := utils.NewTTLCache()

	// -------- 插件体系 --------
	registry := plugin.DefaultRegistry()
	events := plugin.NewEventBus(zlog)
	dispatcher := plugin.NewDispatcher(registry, repos.Plugin, db, zlog, events)

	// -------- 存储 --------
	storageSvc, err := service.NewStorageService(cfg)
	if err != nil {
		return nil, err
	}

	// -------- 业务服务 --------
	services := &Services{
		Auth:        service.NewAuthService(repos.User, jwtMgr, cfg.BcryptRounds, zlog),
		Tenant:      service.NewTenantService(repos.Tenant, cache, zlog),
		ProductType: service.NewProductTypeService(repos.ProductType),
		Product:     service.NewProductService(repos.Product, repos.ProductType),
		Workflow:    service.NewWorkflowService(repos.Workflow),
		Delivery:    service.NewDeliveryMethodService(repos.Delivery),
		Gateway:     service.NewPaymentGatewayService(repos.Gateway),
		Integration: service.NewIntegrationService(repos.Integration),
		Plugin:      service.NewPluginService(repos.Plugin, zlog),
		Storage:     storageSvc,
	}
	services.Order = service.NewOrderService(repos.Order, repos.Product, dispatcher, zlog)
	services.Payment = service.NewPaymentService(repos.Order, repos.Gateway, dispatcher, zlog)

	// -------- Controller 层 --------
	controllers := router.Controllers{
		Auth:       controller.NewAuthController(services.Auth, zlog),
		Tenant:     controller.NewTenantController(services.Tenant, zlog),
		ProductTyp: controller.NewProductTypeController(services.ProductType, zlog),
		Product:    controller.NewProductController(services.Product, services.Storage, zlog),
		Order:      controller.NewOrderController(services.Order, services.Payment, zlog),
		Setting:    controller.NewSettingController(services.Workflow, services.Delivery, services.Gateway, services.Integration, zlog),
		Plugin:     controller.NewPluginController(services.Plugin, zlog),
		Storefront: controller.NewStorefrontController(services.Product, zlog),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		JWT:         jwtMgr,
		Limiter:     limiter,
		Cache:       cache,
		Registry:    registry,
	}, nil
}

// ==================== 服务启动 ====================

// startServer 启动服务并处理优雅退出
func startServer(r *gin.Engine, port string, zlog *zap.SugaredLogger) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		zlog.Infof("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Fatalf("服务强制关闭: %v", err)
	}

	zlog.Info("服务已退出")
}
