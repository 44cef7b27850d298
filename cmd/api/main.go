package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voicetask/config"
	_ "voicetask/docs" // Swagger docs
	"voicetask/internal/httpserver"
	"voicetask/internal/session"
	taskHTTP "voicetask/internal/task/delivery/http"
	taskMemory "voicetask/internal/task/repository/memory"
	taskUC "voicetask/internal/task/usecase"
	voiceHTTP "voicetask/internal/voice/delivery/http"
	"voicetask/internal/voice/resolver"
	voiceUC "voicetask/internal/voice/usecase"
	"voicetask/pkg/gcalendar"
	"voicetask/pkg/llmprovider"
	"voicetask/pkg/log"
	"voicetask/pkg/temporal"
)

// @title       VoiceTask API
// @description Voice-driven task planner: transcripts in, calendar-anchored tasks out.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting VoiceTask...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Temporal resolver
	var temporalOpts []temporal.Option
	if cfg.Resolver.StrictMeridiem {
		temporalOpts = append(temporalOpts, temporal.WithStrictMeridiem())
	}
	temporalResolver, err := temporal.NewResolver(cfg.Resolver.Timezone, temporalOpts...)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Resolver.Timezone, err)
		temporalResolver, _ = temporal.NewResolver("UTC", temporalOpts...)
	}

	// 4. LLM provider manager (optional: heuristic-only without it)
	var llm resolver.LLMClient
	if cfg.Resolver.LLMEnabled {
		providers, perr := llmprovider.InitializeProviders(&cfg.LLM)
		if perr != nil {
			logger.Warnf(ctx, "LLM providers unavailable, running heuristic-only: %v", perr)
		} else {
			llm = llmprovider.NewManager(providers, llmManagerConfig(cfg), logger)
			logger.Infof(ctx, "LLM providers initialized: %d", len(providers))
		}
	} else {
		logger.Info(ctx, "LLM disabled by config, running heuristic-only")
	}

	// 5. Google Calendar client (optional)
	var calendarClient *gcalendar.Client
	if cfg.GoogleCalendar.CredentialsPath != "" {
		calendarClient, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			calendarClient = nil
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 6. Task domain
	taskRepo := taskMemory.New()
	taskUseCase := taskUC.New(logger, taskRepo, calendarClient, cfg.GoogleCalendar.CalendarID, cfg.Resolver.Timezone)
	taskHandler := taskHTTP.New(logger, taskUseCase)

	// 7. Voice domain
	sessionTTL, err := time.ParseDuration(cfg.Resolver.SessionTTL)
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 30 * time.Minute
	}
	sessions := session.NewStore(cfg.Resolver.CacheSize, sessionTTL)

	cmdResolver := resolver.New(logger, temporalResolver, llm, resolver.Options{
		MaxConcurrency: cfg.Resolver.MaxConcurrency,
		RatePerMinute:  cfg.Resolver.RatePerMinute,
	})
	voiceUseCase := voiceUC.New(logger, temporalResolver, cmdResolver, sessions, taskUseCase, cfg.Resolver.CacheSize)
	voiceHandler := voiceHTTP.New(logger, voiceUseCase)

	// 8. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:       logger,
		Port:         cfg.HTTPServer.Port,
		Mode:         cfg.HTTPServer.Mode,
		Environment:  cfg.Environment.Name,
		VoiceHandler: voiceHandler,
		TaskHandler:  taskHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 9. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func llmManagerConfig(cfg *config.Config) *llmprovider.Config {
	retryDelay, err := time.ParseDuration(cfg.LLM.RetryDelay)
	if err != nil {
		retryDelay = time.Second
	}
	maxTotal, err := time.ParseDuration(cfg.LLM.MaxTotalTimeout)
	if err != nil {
		maxTotal = 30 * time.Second
	}
	return &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}
}
