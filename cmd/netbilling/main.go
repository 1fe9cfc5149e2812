package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/netbilling-gateway/internal/adapters/netbilling"
	"github.com/kevin07696/netbilling-gateway/internal/adapters/secrets"
	"github.com/kevin07696/netbilling-gateway/internal/adapters/transport"
	"github.com/kevin07696/netbilling-gateway/internal/config"
	"github.com/kevin07696/netbilling-gateway/pkg/observability"
	"github.com/kevin07696/netbilling-gateway/pkg/shutdown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := parseFlags(args, os.Stderr)
	if err != nil {
		return 2
	}
	req, err := flags.request()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		return 1
	}

	logger := initLogger(cfg.Logger)
	shutdownManager := shutdown.NewManager(logger, 5*time.Second)
	shutdownManager.RegisterNoErr("logger", func() { _ = logger.Sync() })
	defer shutdownManager.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Gateway.Login == "" {
		secretManager, err := secrets.NewSecretManager(ctx, cfg.Secrets, logger)
		if err != nil {
			logger.Error("Failed to initialize secret manager", zap.Error(err))
			return 1
		}
		if err := cfg.ResolveLogin(ctx, secretManager); err != nil {
			logger.Error("Failed to resolve gateway login", zap.Error(err))
			return 1
		}
	}

	httpTransport := transport.NewHTTPTransportWithDefaults(&transport.Config{
		URL:                cfg.Transport.URL,
		Timeout:            cfg.Transport.Timeout,
		MaxRetries:         cfg.Transport.MaxRetries,
		RetryableErrors:    transport.DefaultConfig(cfg.Transport.URL).RetryableErrors,
		RateLimit:          cfg.Transport.RateLimit,
		RateBurst:          cfg.Transport.RateBurst,
		InsecureSkipVerify: cfg.Transport.InsecureSkipVerify,
	}, logger)

	gateway, err := netbilling.NewGateway(netbilling.Config{
		Login:   cfg.Gateway.Login,
		SiteTag: cfg.Gateway.SiteTag,
		Test:    cfg.Gateway.TestMode,
	}, httpTransport, logger)
	if err != nil {
		logger.Error("Failed to create gateway", zap.Error(err))
		return 1
	}

	if flags.metricsAddr != "" {
		healthChecker := observability.NewHealthChecker()
		healthChecker.Register("netbilling_circuit", circuitCheck(httpTransport.CircuitBreaker()))
		server := observability.StartMetricsServer(flags.metricsAddr, healthChecker, logger)
		shutdownManager.RegisterHTTPServer("metrics_server", server)
		logger.Info("Metrics server started", zap.String("addr", flags.metricsAddr))
	}

	callCtx, cancel := context.WithTimeout(ctx, cfg.Transport.Timeout+flags.grace)
	defer cancel()

	result, err := execute(callCtx, gateway, req)
	if err != nil {
		logger.Error("Transaction failed", zap.String("operation", string(req.op)), zap.Error(err))
		return 1
	}

	if err := writeResult(os.Stdout, result); err != nil {
		logger.Error("Failed to write result", zap.Error(err))
		return 1
	}

	if flags.metricsAddr != "" && flags.hold {
		logger.Info("Holding for metrics scrape, interrupt to exit")
		<-ctx.Done()
	}

	if !result.Success {
		return 3
	}
	return 0
}

func circuitCheck(breaker *transport.CircuitBreaker) observability.CheckFunc {
	return func(ctx context.Context) error {
		if state := breaker.State(); state == transport.StateOpen {
			return fmt.Errorf("circuit %s", state)
		}
		return nil
	}
}

// initLogger initializes the zap logger
func initLogger(cfg config.LoggerConfig) *zap.Logger {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	if cfg.Environment == "production" {
		zapCfg := zap.NewProductionConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		logger, _ := zapCfg.Build()
		return logger
	}

	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, _ := zapCfg.Build()
	return logger
}
