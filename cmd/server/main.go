package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	authentity "github.com/knitware/stitch-erp/internal/auth/entity"
	authhandler "github.com/knitware/stitch-erp/internal/auth/handler"
	authrepo "github.com/knitware/stitch-erp/internal/auth/repository"
	authsvc "github.com/knitware/stitch-erp/internal/auth/service"
	catentity "github.com/knitware/stitch-erp/internal/catalog/entity"
	cathandler "github.com/knitware/stitch-erp/internal/catalog/handler"
	catrepo "github.com/knitware/stitch-erp/internal/catalog/repository"
	catsvc "github.com/knitware/stitch-erp/internal/catalog/service"
	"github.com/knitware/stitch-erp/internal/config"
	mdmentity "github.com/knitware/stitch-erp/internal/mdm/entity"
	mdmhandler "github.com/knitware/stitch-erp/internal/mdm/handler"
	mdmrepo "github.com/knitware/stitch-erp/internal/mdm/repository"
	mdmsvc "github.com/knitware/stitch-erp/internal/mdm/service"
	"github.com/knitware/stitch-erp/internal/middleware"
	omsentity "github.com/knitware/stitch-erp/internal/oms/entity"
	omshandler "github.com/knitware/stitch-erp/internal/oms/handler"
	omsrepo "github.com/knitware/stitch-erp/internal/oms/repository"
	omssvc "github.com/knitware/stitch-erp/internal/oms/service"
	smpentity "github.com/knitware/stitch-erp/internal/sample/entity"
	smphandler "github.com/knitware/stitch-erp/internal/sample/handler"
	smprepo "github.com/knitware/stitch-erp/internal/sample/repository"
	smpsvc "github.com/knitware/stitch-erp/internal/sample/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting stitch-erp service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// 迁移各域的表
	for _, migrate := range []func(*gorm.DB) error{
		mdmentity.AutoMigrate,
		catentity.AutoMigrate,
		omsentity.AutoMigrate,
		smpentity.AutoMigrate,
		authentity.AutoMigrate,
	} {
		if err := migrate(db); err != nil {
			zapLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	zapLogger.Info("Database migration completed")

	// Redis（可选，未配置时主数据缓存和刷新令牌吊销被跳过）
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = initRedis(cfg.Redis)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			zapLogger.Warn("Redis unavailable, continuing without it", zap.Error(err))
			rdb = nil
		}
	}

	// MinIO（可选，未配置时打样附件只保留元数据）
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		mc, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			zapLogger.Warn("MinIO init failed, continuing without object storage", zap.Error(err))
		} else {
			minioClient = mc
		}
	}

	// 仓库、服务、处理器
	mdmHandlers := mdmhandler.NewHandlers(mdmsvc.NewServices(mdmrepo.NewRepositories(db), rdb))
	catHandlers := cathandler.NewHandlers(catsvc.NewServices(catrepo.NewRepositories(db)))
	omsHandlers := omshandler.NewHandlers(omssvc.NewServices(omsrepo.NewRepositories(db)))
	smpHandlers := smphandler.NewHandlers(smpsvc.NewServices(smprepo.NewRepositories(db), minioClient, cfg.MinIO.Bucket))
	authHandlers := authhandler.NewHandlers(authsvc.NewServices(authrepo.NewRepositories(db), rdb, cfg.JWT))

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, db, cfg, mdmHandlers, catHandlers, omsHandlers, smpHandlers, authHandlers)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	mdmH *mdmhandler.Handlers,
	catH *cathandler.Handlers,
	omsH *omshandler.Handlers,
	smpH *smphandler.Handlers,
	authH *authhandler.Handlers,
) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证（无需登录）
		auth := v1.Group("/auth")
		{
			auth.POST("/register-admin", authH.Auth.RegisterAdmin)
			auth.POST("/login", authH.Auth.Login)
			auth.POST("/refresh", authH.Auth.Refresh)
		}

		// 需要认证的接口
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		adminOnly := middleware.RequireRole("admin")
		{
			// 当前用户
			authorized.GET("/auth/me", authH.Auth.Me)
			authorized.POST("/auth/logout", authH.Auth.Logout)

			// 主数据：颜色
			colors := authorized.Group("/mdm/colors")
			{
				colors.GET("", mdmH.Color.List)
				colors.GET("/all", mdmH.Color.ListAll)
				colors.GET("/:id", mdmH.Color.Get)
				colors.POST("", mdmH.Color.Create)
				colors.POST("/import", mdmH.Color.Import)
				colors.PUT("/:id", mdmH.Color.Update)
				colors.DELETE("/:id", adminOnly, mdmH.Color.Delete)
			}

			// 主数据：尺码
			sizes := authorized.Group("/mdm/sizes")
			{
				sizes.GET("", mdmH.Size.List)
				sizes.GET("/all", mdmH.Size.ListAll)
				sizes.GET("/:id", mdmH.Size.Get)
				sizes.POST("", mdmH.Size.Create)
				sizes.PUT("/:id", mdmH.Size.Update)
				sizes.DELETE("/:id", adminOnly, mdmH.Size.Delete)
			}

			// 主数据：款式类别
			garmentTypes := authorized.Group("/mdm/garment-types")
			{
				garmentTypes.GET("", mdmH.GarmentType.List)
				garmentTypes.GET("/all", mdmH.GarmentType.ListAll)
				garmentTypes.GET("/:id", mdmH.GarmentType.Get)
				garmentTypes.POST("", mdmH.GarmentType.Create)
				garmentTypes.PUT("/:id", mdmH.GarmentType.Update)
				garmentTypes.DELETE("/:id", adminOnly, mdmH.GarmentType.Delete)
			}

			// 物料档案：纱线
			yarns := authorized.Group("/catalog/yarns")
			{
				yarns.GET("", catH.Yarn.List)
				yarns.GET("/:id", catH.Yarn.Get)
				yarns.POST("", catH.Yarn.Create)
				yarns.PUT("/:id", catH.Yarn.Update)
				yarns.DELETE("/:id", adminOnly, catH.Yarn.Delete)
			}

			// 物料档案：面料
			fabrics := authorized.Group("/catalog/fabrics")
			{
				fabrics.GET("", catH.Fabric.List)
				fabrics.GET("/:id", catH.Fabric.Get)
				fabrics.POST("", catH.Fabric.Create)
				fabrics.PUT("/:id", catH.Fabric.Update)
				fabrics.DELETE("/:id", adminOnly, catH.Fabric.Delete)
			}

			// 产品档案
			items := authorized.Group("/catalog/items")
			{
				items.GET("", catH.CatalogItem.List)
				items.GET("/:id", catH.CatalogItem.Get)
				items.POST("/preview-id", catH.CatalogItem.PreviewID)
				items.POST("", catH.CatalogItem.Create)
				items.PUT("/:id", catH.CatalogItem.Update)
				items.DELETE("/:id", adminOnly, catH.CatalogItem.Delete)
			}

			// 销售合同
			contracts := authorized.Group("/oms/contracts")
			{
				contracts.GET("", omsH.Contract.List)
				contracts.GET("/:id", omsH.Contract.Get)
				contracts.POST("", omsH.Contract.Create)
				contracts.PUT("/:id", omsH.Contract.Update)
				contracts.PUT("/:id/status", omsH.Contract.UpdateStatus)
				contracts.DELETE("/:id", omsH.Contract.Delete)
			}

			// 订单
			orders := authorized.Group("/oms/orders")
			{
				orders.GET("", omsH.Order.List)
				orders.GET("/:id", omsH.Order.Get)
				orders.POST("", omsH.Order.Create)
				orders.PUT("/:id", omsH.Order.Update)
				orders.PUT("/:id/status", omsH.Order.UpdateStatus)
				orders.DELETE("/:id", omsH.Order.Delete)

				// 颜色尺码分解
				orders.GET("/:id/breakdowns", omsH.Order.ListBreakdowns)
				orders.PUT("/:id/breakdowns", omsH.Order.ReplaceBreakdowns)

				// 出运计划
				orders.GET("/:id/deliveries", omsH.Order.ListDeliveries)
				orders.POST("/:id/deliveries", omsH.Order.CreateDelivery)

				// 装箱明细
				orders.GET("/:id/packing", omsH.Order.ListPacking)
				orders.POST("/:id/packing", omsH.Order.CreatePacking)

				// 导出
				orders.GET("/:id/export/breakdown", omsH.Order.ExportBreakdown)
				orders.GET("/:id/export/packing-list", omsH.Order.ExportPackingList)
			}
			authorized.PUT("/oms/deliveries/:id", omsH.Order.UpdateDelivery)
			authorized.DELETE("/oms/deliveries/:id", omsH.Order.DeleteDelivery)
			authorized.PUT("/oms/packing/:id", omsH.Order.UpdatePacking)
			authorized.DELETE("/oms/packing/:id", omsH.Order.DeletePacking)

			// 打样申请
			samples := authorized.Group("/samples")
			{
				samples.GET("", smpH.Sample.List)
				samples.GET("/:id", smpH.Sample.Get)
				samples.POST("", smpH.Sample.Create)
				samples.PUT("/:id/steps/basics", smpH.Sample.StepBasics)
				samples.PUT("/:id/steps/materials", smpH.Sample.StepMaterials)
				samples.PUT("/:id/steps/colorways", smpH.Sample.StepColorways)
				samples.PUT("/:id/steps/workmanship", smpH.Sample.StepWorkmanship)
				samples.POST("/:id/submit", smpH.Sample.Submit)
				samples.PUT("/:id/status", smpH.Sample.UpdateStatus)
				samples.GET("/:id/activities", smpH.Sample.ListActivities)

				// 附件
				samples.GET("/:id/attachments", smpH.Attachment.List)
				samples.POST("/:id/attachments", smpH.Attachment.Upload)
				samples.GET("/:id/attachments/:attachmentId/download", smpH.Attachment.Download)
				samples.DELETE("/:id/attachments/:attachmentId", smpH.Attachment.Delete)
			}
		}
	}
}
