package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wayfarer-ai/wayfarer/internal/chat"
	"github.com/wayfarer-ai/wayfarer/internal/config"
	"github.com/wayfarer-ai/wayfarer/internal/llm"
	"github.com/wayfarer-ai/wayfarer/internal/logger"
	"github.com/wayfarer-ai/wayfarer/internal/registry"
	"github.com/wayfarer-ai/wayfarer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the wayfarer backend server",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		if host, _ := cmd.Flags().GetString("host"); host != "" {
			cfg.Host = host
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			cfg.Port = port
		}
		if apiKey, _ := cmd.Flags().GetString("groq-api-key"); apiKey != "" {
			cfg.GroqAPIKey = apiKey
		}
		if embedURL, _ := cmd.Flags().GetString("embed-url"); embedURL != "" {
			cfg.EmbedURL = embedURL
		}
		if memDir, _ := cmd.Flags().GetString("memory-dir"); memDir != "" {
			cfg.MemoryDir = memDir
		}

		if err := config.EnsureDirs(cfg); err != nil {
			return err
		}

		log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

		client := llm.New(cfg.GroqBaseURL, cfg.GroqAPIKey)
		reg := registry.New(chat.NewManagerFactory(cfg, client, log))
		orch := chat.NewOrchestrator(client, reg, log)

		if cfg.EmbedURL == "" {
			log.Warn("no embeddings endpoint configured, semantic memory disabled")
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg, client, reg, orch, log)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("config", "", "path to YAML config file")
	serveCmd.Flags().String("host", "", "bind address")
	serveCmd.Flags().Int("port", 0, "listen port")
	serveCmd.Flags().String("groq-api-key", "", "Groq API key")
	serveCmd.Flags().String("embed-url", "", "OpenAI-compatible embeddings endpoint")
	serveCmd.Flags().String("memory-dir", "", "vector memory storage directory")
	rootCmd.AddCommand(serveCmd)
}
