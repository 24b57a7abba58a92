// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	_ "zentra-api/docs" // Required for Swagger
	"zentra-api/internal/api"
	"zentra-api/internal/api/handlers"
	"zentra-api/internal/auth"
	"zentra-api/internal/comments"
	"zentra-api/internal/config"
	"zentra-api/internal/docstore"
	"zentra-api/internal/email"
	"zentra-api/internal/identity"
	"zentra-api/internal/invitations"
	"zentra-api/internal/members"
	"zentra-api/internal/permissions"
	"zentra-api/internal/projects"
	"zentra-api/internal/ratelimit"
	"zentra-api/internal/storage"
	"zentra-api/internal/tasks"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title           Zentra API
// @version         1.0
// @description     API for managing projects, tasks and team collaboration

// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                         header
// @name                       Authorization
func main() {

	gin.SetMode(gin.ReleaseMode)

	f, _ := os.Create("gin.log")
	gin.DefaultWriter = io.MultiWriter(f, os.Stdout)

	// Load configuration from .env
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tokens := auth.NewService(cfg.JWT.Secret)

	// Create database configuration
	dbConfig := storage.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
	}

	// Create database if it doesn't exist
	rootDb, err := storage.NewDB(storage.Config{
		Host:     dbConfig.Host,
		Port:     dbConfig.Port,
		User:     dbConfig.User,
		Password: dbConfig.Password,
		DBName:   "",
	})
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}

	_, err = rootDb.Exec("CREATE DATABASE IF NOT EXISTS " + dbConfig.DBName)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	rootDb.Close()

	// Connect to the application database
	db, err := storage.NewDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := docstore.NewMySQLStore(db)

	memberRepo := members.NewRepository(store)
	projectRepo := projects.NewRepository(store, memberRepo)
	taskRepo := tasks.NewRepository(store)
	commentRepo := comments.NewRepository(store)
	inviteManager := invitations.NewManager(store, memberRepo)
	identityService := identity.NewService(store, tokens)
	permEngine := permissions.NewEngine(memberRepo)

	var sink email.Sink
	switch cfg.Email.Mode {
	case "ses":
		sink, err = email.NewSESSink(context.Background(), cfg.Email.From)
		if err != nil {
			log.Fatalf("Failed to initialize SES email sink: %v", err)
		}
	default:
		sink = email.NewLogSink()
	}

	rateLimiter, err := ratelimit.NewRateLimiter(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}
	defer rateLimiter.Close()

	h := handlers.NewHandler(handlers.Deps{
		Store:       store,
		Identity:    identityService,
		Permissions: permEngine,
		Projects:    projectRepo,
		Tasks:       taskRepo,
		Comments:    commentRepo,
		Members:     memberRepo,
		Invitations: inviteManager,
		Email:       sink,
		AppBaseURL:  cfg.App.BaseURL,
	})

	// Set up and start the server
	router := api.SetupRouter(h, tokens, rateLimiter)

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	if cfg.Env == "development" {
		log.Printf("Server starting on http://localhost%s", serverAddr)
		log.Printf("Swagger UI available at http://localhost%s/swagger/index.html", serverAddr)
	}

	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
