package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/handler"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/middleware"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/model"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/notify"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/repository"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/service"
	"github.com/asarDigimarketz/3i-smarthome-sub001/internal/ws"
	"github.com/asarDigimarketz/3i-smarthome-sub001/pkg/database"
	"github.com/asarDigimarketz/3i-smarthome-sub001/pkg/fcm"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found")
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("LOG_PRETTY") == "true" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// 2. Setup Database
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.User{}, &model.Role{}, &model.RolePermission{}, &model.Permission{},
		&model.Employee{}, &model.Customer{}, &model.Proposal{}, &model.Project{},
		&model.Task{}, &model.Notification{}, &model.DeviceToken{},
	); err != nil {
		log.Fatal().Err(err).Msg("database migration failed")
	}

	// 3. Seed default role and admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Setup FCM (push disabled when no credentials are configured)
	fcmClient, err := fcm.NewMessagingClient(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("fcm initialization failed")
	}
	if fcmClient == nil {
		log.Warn().Msg("FIREBASE_CREDENTIALS not set, push delivery disabled")
	}

	// 6. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	proposalRepo := repository.NewProposalRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	taskRepo := repository.NewTaskRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	tokenRepo := repository.NewDeviceTokenRepo(db)

	resolver := notify.NewResolver(employeeRepo, userRepo)
	selector := notify.NewSelector(userRepo, resolver)
	var messenger notify.Messenger
	if fcmClient != nil {
		messenger = fcmClient
	}
	engine := notify.NewEngine(tokenRepo, messenger)
	dispatcher := notify.NewDispatcher(notificationRepo, selector, engine, wsHub)

	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, roleRepo)
	roleService := service.NewRoleService(roleRepo, userRepo)
	employeeService := service.NewEmployeeService(employeeRepo, userRepo, dispatcher)
	proposalService := service.NewProposalService(proposalRepo, customerRepo, dispatcher)
	projectService := service.NewProjectService(projectRepo, customerRepo, employeeRepo, dispatcher)
	taskService := service.NewTaskService(taskRepo, projectRepo, employeeRepo, dispatcher)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	employeeHandler := handler.NewEmployeeHandler(employeeService)
	customerHandler := handler.NewCustomerHandler(customerRepo, projectRepo)
	proposalHandler := handler.NewProposalHandler(proposalService)
	projectHandler := handler.NewProjectHandler(projectService, taskService)
	taskHandler := handler.NewTaskHandler(taskService)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, tokenRepo)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "3i SmartHome API v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// User Management Routes
	protected.Get("/users", middleware.RequirePermission("employees", model.ActionView), userHandler.GetUsers)
	protected.Get("/users/:id", middleware.RequirePermission("employees", model.ActionView), userHandler.GetUser)
	protected.Post("/users", middleware.RequirePermission("employees", model.ActionAdd), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePermission("employees", model.ActionEdit), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePermission("employees", model.ActionDelete), userHandler.DeleteUser)

	// Role Routes
	protected.Get("/roles", middleware.RequirePermission("roles", model.ActionView), roleHandler.GetRoles)
	protected.Get("/roles/:id", middleware.RequirePermission("roles", model.ActionView), roleHandler.GetRole)
	protected.Post("/roles", middleware.RequirePermission("roles", model.ActionAdd), roleHandler.CreateRole)
	protected.Put("/roles/:id", middleware.RequirePermission("roles", model.ActionEdit), roleHandler.UpdateRole)
	protected.Delete("/roles/:id", middleware.RequirePermission("roles", model.ActionDelete), roleHandler.DeleteRole)

	// Functional area catalog (drives the role permission matrix UI)
	protected.Get("/areas", func(c *fiber.Ctx) error {
		return c.JSON(model.DefaultAreas)
	})

	// Employee Routes
	protected.Get("/employees", middleware.RequirePermission("employees", model.ActionView), employeeHandler.GetEmployees)
	protected.Get("/employees/:id", middleware.RequirePermission("employees", model.ActionView), employeeHandler.GetEmployee)
	protected.Post("/employees", middleware.RequirePermission("employees", model.ActionAdd), employeeHandler.CreateEmployee)
	protected.Put("/employees/:id", middleware.RequirePermission("employees", model.ActionEdit), employeeHandler.UpdateEmployee)
	protected.Delete("/employees/:id", middleware.RequirePermission("employees", model.ActionDelete), employeeHandler.DeleteEmployee)

	// Customer Routes
	protected.Get("/customers", middleware.RequirePermission("customers", model.ActionView), customerHandler.GetCustomers)
	protected.Get("/customers/:id", middleware.RequirePermission("customers", model.ActionView), customerHandler.GetCustomer)
	protected.Post("/customers", middleware.RequirePermission("customers", model.ActionAdd), customerHandler.CreateCustomer)
	protected.Put("/customers/:id", middleware.RequirePermission("customers", model.ActionEdit), customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", middleware.RequirePermission("customers", model.ActionDelete), customerHandler.DeleteCustomer)

	// Proposal Routes
	protected.Get("/proposals", middleware.RequirePermission("proposals", model.ActionView), proposalHandler.GetProposals)
	protected.Get("/proposals/:id", middleware.RequirePermission("proposals", model.ActionView), proposalHandler.GetProposal)
	protected.Post("/proposals", middleware.RequirePermission("proposals", model.ActionAdd), proposalHandler.CreateProposal)
	protected.Put("/proposals/:id", middleware.RequirePermission("proposals", model.ActionEdit), proposalHandler.UpdateProposal)
	protected.Delete("/proposals/:id", middleware.RequirePermission("proposals", model.ActionDelete), proposalHandler.DeleteProposal)

	// Project Routes
	protected.Get("/projects", middleware.RequirePermission("projects", model.ActionView), projectHandler.GetProjects)
	protected.Get("/projects/:id", middleware.RequirePermission("projects", model.ActionView), projectHandler.GetProject)
	protected.Get("/projects/:id/tasks", middleware.RequirePermission("tasks", model.ActionView), projectHandler.GetProjectTasks)
	protected.Post("/projects", middleware.RequirePermission("projects", model.ActionAdd), projectHandler.CreateProject)
	protected.Put("/projects/:id", middleware.RequirePermission("projects", model.ActionEdit), projectHandler.UpdateProject)
	protected.Delete("/projects/:id", middleware.RequirePermission("projects", model.ActionDelete), projectHandler.DeleteProject)

	// Task Routes
	protected.Get("/tasks", middleware.RequirePermission("tasks", model.ActionView), taskHandler.GetTasks)
	protected.Get("/tasks/:id", middleware.RequirePermission("tasks", model.ActionView), taskHandler.GetTask)
	protected.Post("/tasks", middleware.RequirePermission("tasks", model.ActionAdd), taskHandler.CreateTask)
	protected.Put("/tasks/:id", middleware.RequirePermission("tasks", model.ActionEdit), taskHandler.UpdateTask)
	protected.Delete("/tasks/:id", middleware.RequirePermission("tasks", model.ActionDelete), taskHandler.DeleteTask)

	// Notification Routes (always scoped to the caller, no area permission)
	protected.Get("/notifications", notificationHandler.GetNotifications)
	protected.Patch("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.Patch("/notifications/:id/read", notificationHandler.MarkRead)
	protected.Delete("/notifications/:id", notificationHandler.DeleteNotification)
	protected.Post("/notifications/tokens", notificationHandler.RegisterToken)
	protected.Delete("/notifications/tokens", notificationHandler.UnregisterToken)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Retention sweep: read notifications older than the cutoff are purged
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go runRetentionSweep(sweepCtx, notificationRepo)

	// 10. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	stopSweep()
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// runRetentionSweep deletes read notifications older than
// NOTIFICATION_RETENTION_DAYS (default 30) once a day.
func runRetentionSweep(ctx context.Context, notifications repository.NotificationRepository) {
	days := 30
	if raw := os.Getenv("NOTIFICATION_RETENTION_DAYS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			days = parsed
		}
	}
	age := time.Duration(days) * 24 * time.Hour

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := notifications.DeleteReadOlderThan(age)
			if err != nil {
				log.Error().Err(err).Msg("notification retention sweep failed")
				continue
			}
			if deleted > 0 {
				log.Info().Int64("deleted", deleted).Msg("notification retention sweep finished")
			}
		}
	}
}

// seedAdmin creates the default admin role and user if they don't exist.
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	adminRole, err := roleRepo.FindByName("admin")
	if err != nil {
		permissions := make([]model.RolePermission, len(model.DefaultAreas))
		for i, area := range model.DefaultAreas {
			permissions[i] = model.RolePermission{
				Area: area.Name,
				URL:  area.URL,
				Actions: model.Actions{
					CanView: true, CanAdd: true, CanEdit: true, CanDelete: true,
				},
			}
		}
		adminRole = &model.Role{
			Name:        "admin",
			Description: "Full access to every functional area",
			Permissions: permissions,
		}
		if err := roleRepo.Create(adminRole); err != nil {
			log.Warn().Err(err).Msg("failed to seed admin role")
			return
		}
		log.Info().Msg("seeded admin role")
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
		log.Warn().Msg("ADMIN_PASSWORD not set, using default credential")
	}

	admin := &model.User{
		Email:    email,
		Name:     "Administrator",
		IsAdmin:  true,
		RoleID:   &adminRole.ID,
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(password); err != nil {
		log.Warn().Err(err).Msg("failed to hash admin password")
		return
	}
	if err := userRepo.Create(admin); err != nil {
		log.Warn().Err(err).Msg("failed to seed admin user")
		return
	}
	log.Info().Str("email", email).Msg("seeded admin user")
}
