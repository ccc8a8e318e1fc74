package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/ljmurray/marquee/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve card generation over HTTP",
	Long: `Serve runs an HTTP API that generates cards on request. POST card
parameters to /api/cards; the card is written to the requested output path
on this host.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadEnvironment()
		if err != nil {
			return err
		}

		addr, _ := cmd.Flags().GetString("addr")

		e := echo.New()
		e.HideBanner = true
		e.Use(middleware.Recover())

		handler := server.NewHandler(newGenerator(env), env.logger)
		handler.Register(e)

		go func() {
			env.logger.Info("server listening", "addr", addr)
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				env.logger.Error("server stopped", "error", err)
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		env.logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			return fmt.Errorf("error shutting down server: %v", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8787", "Listen address")
}
