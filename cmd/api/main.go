package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-backoffice/internal/cache"
	"go-backoffice/internal/handler"
	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
	"go-backoffice/internal/tenant"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/database"
	"go-backoffice/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	zlog, err := logger.FromEnv("go-backoffice")
	if err != nil {
		log.Fatal("logger init failed:", err)
	}
	defer zlog.Sync()

	db := database.ConnectDB()
	// Auto migrate keeps dev setups simple; production schemas come from
	// migration tooling.
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Sistema{},
		&model.Botao{},
		&model.UserGroup{},
		&model.GroupPermission{},
		&model.Funcionario{},
	); err != nil {
		zlog.Fatal("auto migrate failed", zap.Error(err))
	}

	// Redis is optional; without REDIS_ADDR the permission cache degrades
	// to pass-through.
	var permCache *cache.PermissionCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		permCache = cache.NewPermissionCache(rdb)
		zlog.Info("permission cache enabled", zap.String("addr", addr))
	}

	wsHub := ws.NewHub(zlog)
	go wsHub.Run()

	usuarioRepo := repository.NewUsuarioRepo(db)
	sistemaRepo := repository.NewSistemaRepo(db)
	botaoRepo := repository.NewBotaoRepo(db)
	grupoRepo := repository.NewGrupoRepo(db)
	funcionarioRepo := repository.NewFuncionarioRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)

	grupoService := service.NewGrupoService(grupoRepo, permCache, wsHub, zlog)
	usuarioService := service.NewUsuarioService(usuarioRepo, wsHub, zlog)
	sistemaService := service.NewSistemaService(sistemaRepo, wsHub, zlog)
	botaoService := service.NewBotaoService(botaoRepo, wsHub, zlog)
	funcionarioService := service.NewFuncionarioService(funcionarioRepo, wsHub, zlog)
	authService := service.NewAuthService(usuarioRepo, grupoService, zlog)
	dashboardService := service.NewDashboardService(dashboardRepo)

	authHandler := handler.NewAuthHandler(authService)
	usuarioHandler := handler.NewUsuarioHandler(usuarioService, grupoService)
	sistemaHandler := handler.NewSistemaHandler(sistemaService)
	botaoHandler := handler.NewBotaoHandler(botaoService)
	funcionarioHandler := handler.NewFuncionarioHandler(funcionarioService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	app := fiber.New(fiber.Config{
		AppName: "Back Office API v1.0",
	})

	app.Use(requestid.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	auth := api.Group("/Auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("", middleware.RequireAuth())

	usuarios := protected.Group("/Usuarios")
	usuarios.Post("/list", usuarioHandler.Grid)
	usuarios.Post("/bulk-delete", middleware.RequirePermission("SEG", "USUARIOS", "E"), usuarioHandler.BulkDelete)
	usuarios.Post("/export/csv", usuarioHandler.ExportCSV)
	usuarios.Post("/export/excel", usuarioHandler.ExportExcel)
	usuarios.Post("/export/pdf", usuarioHandler.ExportPDF)
	usuarios.Post("/import", middleware.RequirePermission("SEG", "USUARIOS", "I"), usuarioHandler.Import)
	usuarios.Post("/", middleware.RequirePermission("SEG", "USUARIOS", "I"), usuarioHandler.Create)
	usuarios.Get("/:cd", usuarioHandler.Get)
	usuarios.Put("/:cd", middleware.RequirePermission("SEG", "USUARIOS", "A"), usuarioHandler.Update)
	usuarios.Delete("/:cd", middleware.RequirePermission("SEG", "USUARIOS", "E"), usuarioHandler.Delete)
	usuarios.Get("/:cd/grupos", usuarioHandler.ListGroups)
	usuarios.Post("/:cd/grupos", middleware.RequirePermission("SEG", "GRUPOS", "I"), usuarioHandler.GrantGroup)
	usuarios.Delete("/:cd/grupos/:id", middleware.RequirePermission("SEG", "GRUPOS", "E"), usuarioHandler.RevokeGroup)
	usuarios.Get("/:cd/permissoes", usuarioHandler.Permissions)

	sistemas := protected.Group("/Sistemas")
	sistemas.Get("/", sistemaHandler.GetAll)
	sistemas.Post("/list", sistemaHandler.Grid)
	sistemas.Post("/export/csv", sistemaHandler.ExportCSV)
	sistemas.Post("/export/excel", sistemaHandler.ExportExcel)
	sistemas.Post("/", middleware.RequirePermission("SEG", "SISTEMAS", "I"), sistemaHandler.Create)
	sistemas.Get("/:cd", sistemaHandler.Get)
	sistemas.Put("/:cd", middleware.RequirePermission("SEG", "SISTEMAS", "A"), sistemaHandler.Update)
	sistemas.Delete("/:cd", middleware.RequirePermission("SEG", "SISTEMAS", "E"), sistemaHandler.Delete)

	botoes := protected.Group("/Botoes")
	botoes.Get("/", botaoHandler.GetAll)
	botoes.Post("/", middleware.RequirePermission("SEG", "BOTOES", "I"), botaoHandler.Create)
	botoes.Get("/:id", botaoHandler.Get)
	botoes.Put("/:id", middleware.RequirePermission("SEG", "BOTOES", "A"), botaoHandler.Update)
	botoes.Delete("/:id", middleware.RequirePermission("SEG", "BOTOES", "E"), botaoHandler.Delete)

	funcionarios := protected.Group("/Funcionarios")
	funcionarios.Get("/", funcionarioHandler.GetAll)
	funcionarios.Post("/", middleware.RequirePermission("RHS", "FUNCIONARIOS", "I"), funcionarioHandler.Create)
	funcionarios.Get("/:id", funcionarioHandler.Get)
	funcionarios.Put("/:id", middleware.RequirePermission("RHS", "FUNCIONARIOS", "A"), funcionarioHandler.Update)
	funcionarios.Delete("/:id", middleware.RequirePermission("RHS", "FUNCIONARIOS", "E"), funcionarioHandler.Delete)

	protected.Get("/Dashboard/stats", dashboardHandler.Stats)

	app.Use("/ws", middleware.RequireAuth(), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		tc, ok := c.Locals("tenant").(tenant.Context)
		if !ok || !tc.Valid() {
			c.Close()
			return
		}
		client := ws.NewClient(c, tc.TenantID)
		wsHub.Register <- client
		defer func() { wsHub.Unregister <- client }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			zlog.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zlog.Fatal("forced shutdown", zap.Error(err))
	}
	zlog.Info("server exited")
}
