package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/BubbleXIV/dashboard-new/internal/app"
	"github.com/BubbleXIV/dashboard-new/internal/config"
	"github.com/BubbleXIV/dashboard-new/internal/crypto"
	"github.com/BubbleXIV/dashboard-new/internal/discord"
	"github.com/BubbleXIV/dashboard-new/internal/filestore"
	"github.com/BubbleXIV/dashboard-new/internal/logging"
	"github.com/BubbleXIV/dashboard-new/internal/metrics"
	"github.com/BubbleXIV/dashboard-new/internal/server"
	"github.com/BubbleXIV/dashboard-new/internal/store"
	"github.com/BubbleXIV/dashboard-new/internal/twitch"
	"github.com/BubbleXIV/dashboard-new/internal/version"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupCrypto(cfg *config.Config) crypto.Service {
	if cfg.TokenEncryptionKey == "" {
		slog.Warn("TOKEN_ENCRYPTION_KEY not set, storing tokens unencrypted")
		return crypto.NoopService{}
	}

	svc, err := crypto.NewTokenCipher(cfg.TokenEncryptionKey)
	if err != nil {
		slog.Error("Failed to create token cipher", "error", err)
		os.Exit(1)
	}
	return svc
}

func setupPoller(cfg *config.Config, appSvc *app.Service, clock clockwork.Clock) *twitch.Poller {
	if cfg.TwitchClientID == "" {
		slog.Info("Twitch credentials not configured, stream poller disabled")
		return nil
	}

	client, err := twitch.NewHelixClient(cfg.TwitchClientID, cfg.TwitchClientSecret)
	if err != nil {
		slog.Error("Failed to create helix client", "error", err)
		os.Exit(1)
	}
	return twitch.NewPoller(appSvc, client, clock, cfg.StreamPollInterval)
}

func runGracefulShutdown(srv *server.Server, poller *twitch.Poller, cancel context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		if poller != nil {
			poller.Stop()
		}
		cancel()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	info := version.Get()
	metrics.BuildInfo.WithLabelValues(info.Version, info.Commit, info.BuildTime, info.GoVersion).Set(1)

	files, err := filestore.New(cfg.DataDir, clock)
	if err != nil {
		slog.Error("Failed to open snapshot directory", "error", err, "dir", cfg.DataDir)
		os.Exit(1)
	}

	stores := store.New(store.UUIDGenerator{}, clock)
	appSvc := app.NewService(stores, files, setupCrypto(cfg), clock)

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := appSvc.Load(loadCtx); err != nil {
		loadCancel()
		slog.Error("Failed to load snapshots", "error", err)
		os.Exit(1)
	}
	loadCancel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := setupPoller(cfg, appSvc, clock)
	if poller != nil {
		go poller.Start(ctx)
	}

	oauth := discord.NewOAuthClient(cfg.DiscordClientID, cfg.DiscordClientSecret, cfg.DiscordRedirectURI)
	roster := discord.NewRosterClient()
	srv := server.NewServer(cfg, appSvc, oauth, roster, clock)

	done := runGracefulShutdown(srv, poller, cancel)

	slog.Info("Server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
