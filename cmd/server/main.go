// Storeboard onboarding service.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/warasiri/storeboard/agent/agents/onboarder"
	"github.com/warasiri/storeboard/agent/agents/workflow"
	contractx "github.com/warasiri/storeboard/agent/contract"
	"github.com/warasiri/storeboard/agent/extract"
	"github.com/warasiri/storeboard/agent/gateway"
	"github.com/warasiri/storeboard/agent/llm"
	promptx "github.com/warasiri/storeboard/agent/prompt"
	statex "github.com/warasiri/storeboard/agent/state"
	toolx "github.com/warasiri/storeboard/agent/tool"
	"github.com/warasiri/storeboard/pkg/config"
	_ "github.com/warasiri/storeboard/pkg/logger/autoload"
	openrouterx "github.com/warasiri/storeboard/pkg/openrouter"
	serverx "github.com/warasiri/storeboard/server"
)

type appConfig struct {
	Addr            string        `envconfig:"ADDR" split_words:"true" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" split_words:"true" default:"10s"`
}

func main() {
	appCfg := config.MustNew[appConfig]("APP")
	llmCfg := config.MustNew[llm.Config]("LLM")
	gatewayCfg := config.MustNew[gateway.Config]("MCP")

	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid model configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prompts := promptx.LoadPromptSet()

	tools := gateway.NewClient(*gatewayCfg)
	defer tools.Close()

	onboarderCfg := llmCfg.OpenRouterFor(contractx.RoleOnboarder)
	chatModel, err := onboarderCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build onboarder model")
	}

	runner, err := onboarder.New(chatModel, toolx.NewExecutor(tools), prompts.Onboarder)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build onboarder runner")
	}

	extractorCfg := llmCfg.OpenRouterFor(contractx.RoleExtractor)
	rawClient, err := openrouterx.NewClient(extractorCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build extractor client")
	}
	extractor := extract.New(rawClient, extractorCfg.Model)

	svc, err := workflow.New(statex.NewRegistry(), runner, extractor)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build workflow service")
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(serverx.RequestLogger)
	serverx.NewHandler(svc).RegisterRoutes(r)

	srv := &http.Server{
		Addr:         appCfg.Addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	stop()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), appCfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}
	log.Info().Msg("server stopped")
}
