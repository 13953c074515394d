package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/tempsuisse/platform/internal/ai"
	"github.com/tempsuisse/platform/internal/config"
	"github.com/tempsuisse/platform/internal/db"
	"github.com/tempsuisse/platform/internal/export"
	"github.com/tempsuisse/platform/internal/photo"
	"github.com/tempsuisse/platform/internal/render"
	"github.com/tempsuisse/platform/internal/server"
	"github.com/tempsuisse/platform/internal/server/ratelimit"
	"github.com/tempsuisse/platform/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP server exposing the agency directory, the blog, and the CV builder API.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// Assisted text is optional; the endpoints report unavailability
	// when no API key is configured.
	var aiClient ai.Client
	if cfg.GeminiAPIKey != "" {
		client, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return fmt.Errorf("failed to create AI client: %w", err)
		}
		aiClient = client
	} else {
		log.Println("GEMINI_API_KEY not set; assisted text disabled")
	}

	var photos photo.Uploader
	if cfg.Cloudinary.Enabled() {
		uploader, err := photo.NewCloudinaryUploader(
			cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			return fmt.Errorf("failed to create photo uploader: %w", err)
		}
		photos = uploader
	} else {
		log.Println("Cloudinary not configured; photo upload disabled")
	}

	registry, err := render.NewRegistry()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	password, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	jwtCfg, err := config.NewJWTConfig()
	if err != nil {
		return err
	}

	srv, err := server.New(
		server.Config{
			Addr:              cfg.Addr(),
			AdminPasswordHash: cfg.AdminPasswordHash,
		},
		server.Deps{
			Directory: database,
			Sessions:  session.NewStore(session.DefaultTTL),
			Templates: registry,
			Engine:    export.NewChromeEngine(),
			AI:        aiClient,
			Photos:    photos,
			JWT:       jwtCfg,
			Password:  password,
			RateLimit: ratelimit.LoadConfig(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
