package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boardhub/internal/config"
	"boardhub/internal/db"
	"boardhub/internal/handler"
	"boardhub/internal/middleware"
	"boardhub/internal/repository"
	"boardhub/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Migrations first: the schema's unique indexes back the uniqueness
	// invariants the repositories rely on.
	migrateURL := fmt.Sprintf("pgx5://%s:%s@%s:%s/%s?sslmode=disable",
		url.QueryEscape(cfg.DBUser), url.QueryEscape(cfg.DBPassword),
		cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	if err := db.Migrate(migrateURL); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
	}
	log.Println("✅ Database schema up to date")

	// Setup GORM. TranslateError turns unique-index violations into
	// gorm.ErrDuplicatedKey, which the repositories map to ErrDuplicate.
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	boardRepo := repository.NewBoardRepository(gormDB)
	membershipRepo := repository.NewMembershipRepository(gormDB)
	joinRequestRepo := repository.NewJoinRequestRepository(gormDB)
	settingRepo := repository.NewServiceSettingRepository(gormDB)
	permissionRepo := repository.NewServicePermissionRepository(gormDB)
	catalogRepo := repository.NewAvailableServiceRepository(gormDB)

	// Initialize services
	authorizer := service.NewAuthorizer(boardRepo, membershipRepo, permissionRepo)
	boardService := service.NewBoardService(boardRepo, membershipRepo, settingRepo, joinRequestRepo, catalogRepo)
	joinService := service.NewJoinService(boardRepo, membershipRepo, joinRequestRepo, settingRepo)
	membershipService := service.NewMembershipService(boardRepo, membershipRepo)
	permissionService := service.NewPermissionService(boardRepo, permissionRepo, authorizer)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	boardHandler := handler.NewBoardHandler(boardService)
	serviceHandler := handler.NewServiceHandler(boardService)
	membershipHandler := handler.NewMembershipHandler(membershipService, joinService)
	joinRequestHandler := handler.NewJoinRequestHandler(joinService)
	permissionHandler := handler.NewPermissionHandler(permissionService)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/services", serviceHandler.Catalog)
	r.GET("/boards", boardHandler.List)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// Board routes
		authorized.POST("/boards", boardHandler.Create)
		authorized.GET("/boards/my", boardHandler.My)
		authorized.GET("/boards/my-memberships", membershipHandler.MyMemberships)
		authorized.GET("/boards/:id", boardHandler.GetByID)
		authorized.PUT("/boards/:id", boardHandler.Update)

		// Board service routes
		authorized.GET("/boards/:id/services", serviceHandler.Settings)
		authorized.PUT("/boards/:id/services/:key", serviceHandler.Enable)
		authorized.DELETE("/boards/:id/services/:key", serviceHandler.Disable)

		// Membership routes
		authorized.POST("/boards/:id/join", membershipHandler.Join)
		authorized.GET("/boards/:id/members", membershipHandler.ListMembers)
		authorized.GET("/boards/:id/members/search/:username", membershipHandler.SearchMembers)
		authorized.PUT("/boards/:id/members/:user_id/role", membershipHandler.UpdateRole)

		// Join request routes
		authorized.POST("/boards/:id/request", joinRequestHandler.Request)
		authorized.GET("/boards/:id/requests", joinRequestHandler.List)
		authorized.POST("/boards/:id/requests/:user_id/approve", joinRequestHandler.Approve)
		authorized.POST("/boards/:id/requests/:user_id/reject", joinRequestHandler.Reject)

		// Service permission routes
		authorized.GET("/boards/:id/services/:key/permissions", permissionHandler.List)
		authorized.GET("/boards/:id/services/:key/permissions/me", permissionHandler.Me)
		authorized.PUT("/boards/:id/services/:key/permissions/:user_id", permissionHandler.Grant)
		authorized.DELETE("/boards/:id/services/:key/permissions/:user_id", permissionHandler.Revoke)
	}

	return &Server{
		Engine: r,
		DB:     gormDB,
		Config: cfg,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
