package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/promptgate/internal/config"
	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/http"
	"github.com/davidbz/promptgate/internal/http/middleware"
	"github.com/davidbz/promptgate/internal/observability"
	"github.com/davidbz/promptgate/internal/prompt"
	"github.com/davidbz/promptgate/internal/provider/echo"
	"github.com/davidbz/promptgate/internal/provider/inference"
	"github.com/davidbz/promptgate/internal/provider/openai"
	"github.com/davidbz/promptgate/internal/provider/registry"
)

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, cfg *config.ServerConfig, closeStore storeCloser) error {
		defer func() {
			if closeErr := closeStore(); closeErr != nil {
				log.Printf("Failed to close template store: %v", closeErr)
			}
		}()
		return run(server, time.Duration(cfg.ShutdownTimeout)*time.Second)
	})
	if err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(dig.RootCause(err), &cfgErr) {
			log.Fatalf("Refusing to start: %v", cfgErr)
		}
		log.Fatalf("Failed to start application: %v", err)
	}
}

// storeCloser releases the template store's connections.
type storeCloser func() error

// run serves until SIGINT/SIGTERM, then drains in-flight requests.
func run(server *http.Server, shutdownTimeout time.Duration) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration, validated before anything else is built.
	if err := container.Provide(func() (*config.Config, error) {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Prompt template
	if err := container.Provide(func(cfg *prompt.Config) (domain.TemplateStore, storeCloser) {
		store, closeFn := prompt.NewStore(cfg)
		return store, closeFn
	}); err != nil {
		log.Fatalf("Failed to provide template store: %v", err)
	}
	if err := container.Provide(loadTemplate); err != nil {
		log.Fatalf("Failed to provide template: %v", err)
	}

	// Backend Registry
	if err := container.Provide(func() domain.BackendRegistry {
		return registry.NewRegistry()
	}); err != nil {
		log.Fatalf("Failed to provide registry: %v", err)
	}

	// Selected backend, after registering every configured one.
	if err := container.Provide(selectBackend); err != nil {
		log.Fatalf("Failed to provide backend: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(
		backend domain.Backend,
		tmpl *domain.PromptTemplate,
		gatewayCfg *config.GatewayConfig,
	) (*domain.GatewayService, error) {
		return domain.NewGatewayService(backend, tmpl, gatewayCfg.Model)
	}); err != nil {
		log.Fatalf("Failed to provide gateway service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// loadTemplate reads the template once at startup and warns when sidecar
// defaults disagree with the sampling actually sent. The logger parameter
// orders logger initialization first.
func loadTemplate(store domain.TemplateStore, _ *zap.Logger) (*domain.PromptTemplate, error) {
	ctx := context.Background()

	tmpl, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt template: %w", err)
	}

	if defaults, ok := tmpl.Defaults(); ok && defaults != domain.FixedSampling() {
		observability.FromContext(ctx).Warn("prompt config defaults are ignored; fixed sampling is used",
			observability.String("template", tmpl.Name()),
			observability.Int("config_max_tokens", defaults.MaxTokens),
			observability.Float64("config_temperature", defaults.Temperature))
	}

	return tmpl, nil
}

// selectBackend registers every backend whose settings are present and
// returns the one named by GATEWAY_BACKEND.
func selectBackend(
	_ *zap.Logger,
	reg domain.BackendRegistry,
	gatewayCfg *config.GatewayConfig,
	openaiCfg *openai.Config,
	inferenceCfg *inference.Config,
) (domain.Backend, error) {
	ctx := context.Background()

	if err := reg.Register(ctx, echo.NewBackend()); err != nil {
		return nil, fmt.Errorf("failed to register echo backend: %w", err)
	}

	if openaiCfg.APIKey != "" {
		backend, err := openai.NewBackend(*openaiCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenAI backend: %w", err)
		}
		if err = reg.Register(ctx, backend); err != nil {
			return nil, fmt.Errorf("failed to register OpenAI backend: %w", err)
		}
	}

	if inferenceCfg.Endpoint != "" && inferenceCfg.APIKey != "" {
		backend, err := inference.NewBackend(*inferenceCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create inference backend: %w", err)
		}
		if err = reg.Register(ctx, backend); err != nil {
			return nil, fmt.Errorf("failed to register inference backend: %w", err)
		}
	}

	backend, err := reg.Get(ctx, gatewayCfg.Backend)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "GATEWAY_BACKEND", Reason: err.Error()}
	}

	names, _ := reg.List(ctx)
	observability.FromContext(ctx).Info("backend selected",
		observability.String("backend", backend.Name()),
		observability.String("model", gatewayCfg.Model),
		observability.Int("registered", len(names)))

	return backend, nil
}
