package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	intconfig "tours/internal/config"
	intdb "tours/internal/db"
	router "tours/internal/http"
	h "tours/internal/http/handlers"
	"tours/internal/utils"
)

var env intconfig.Env

var rootCmd = &cobra.Command{
	Use:   "tours",
	Short: "Tours & Travels cab booking backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		env = intconfig.LoadEnv()
		utils.SetupLogger(env.LogLevel, env.GinMode)
	},
	RunE: runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (default)",
	RunE:  runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedAdminCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := env.Validate(); err != nil {
		return err
	}
	if env.JWTSecretGenerated {
		log.Warn().Msg("JWT_SECRET not set; using a random secret, tokens will not survive a restart")
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	if env.MigrateOnStart {
		if err := intdb.MigrateUp(env.DB.DSNString()); err != nil {
			return err
		}
	}

	db, err := intconfig.ConnectDB(env.DB)
	if err != nil {
		return err
	}
	defer intconfig.CloseDB()

	deps := h.NewDeps(env)
	deps.DB = db
	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", env.AppAddr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
