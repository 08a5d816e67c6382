package main

import (
	"fmt"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hugohenrick/chat-backend/docs"
	"github.com/hugohenrick/chat-backend/internal/adapter/api/controller"
	"github.com/hugohenrick/chat-backend/internal/adapter/api/route"
	"github.com/hugohenrick/chat-backend/internal/adapter/repository"
	"github.com/hugohenrick/chat-backend/internal/infrastructure/database"
	idp "github.com/hugohenrick/chat-backend/internal/infrastructure/provider"
	"github.com/hugohenrick/chat-backend/internal/service/conversation"
	"github.com/hugohenrick/chat-backend/internal/service/identity"
	"github.com/hugohenrick/chat-backend/pkg/auth"
	"github.com/hugohenrick/chat-backend/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	db     *pgxpool.Pool
	log    logger.Logger
}

// NewApp cria uma nova instância do aplicativo.
// Toda falha aqui é fatal para o chamador: o processo não deve atender
// requisições sem banco, migrações aplicadas e provedor configurado.
func NewApp() (*App, error) {
	log := logger.NewLogger()

	// Configurar banco de dados e aplicar migrações antes de servir
	dbConfig := database.NewPostgresConfigFromEnv()
	if err := database.RunMigrations(dbConfig); err != nil {
		return nil, fmt.Errorf("falha ao aplicar migrações: %w", err)
	}
	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		return nil, err
	}

	// Provedor externo de identidade
	idProvider, err := idp.NewRemoteProvider(idp.NewConfigFromEnv(), log)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("falha ao configurar provedor de identidade: %w", err)
	}

	// Repositórios
	userRepo := repository.NewUserRepository(db)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Serviços
	bridge := identity.NewBridge(userRepo, idProvider, log)
	convService := conversation.NewService(chatRepo, messageRepo, userRepo, log)
	projector := conversation.NewProjector(chatRepo, messageRepo, userRepo, log)

	// Guard de autenticação das rotas protegidas
	guard := auth.Middleware(idProvider, bridge, log)

	// Controllers
	authController := controller.NewAuthController(idProvider, bridge, log)
	chatController := controller.NewChatController(convService, projector, log)
	messageController := controller.NewMessageController(convService, log)

	if os.Getenv("APP_ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{getEnv("CORS_ALLOW_ORIGIN", "*")},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	// Documentação da API
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	route.SetupAuthRoutes(api, authController, guard)
	route.SetupChatRoutes(api, chatController, messageController, guard)

	return &App{
		router: router,
		db:     db,
		log:    log,
	}, nil
}

// Start inicia o servidor HTTP
func (a *App) Start() error {
	port := getEnv("PORT", "3000")
	a.log.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// getEnv retorna o valor de uma variável de ambiente ou um valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
