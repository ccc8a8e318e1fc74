package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ljmurray/marquee/internal/app"
	"github.com/ljmurray/marquee/internal/compositor"
	"github.com/ljmurray/marquee/internal/config"
	"github.com/ljmurray/marquee/internal/fontcheck"
	"github.com/ljmurray/marquee/internal/logging"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "marquee",
	Short: "Tool for generating episode title cards",
	Long: `Marquee generates styled title card images for episodes of episodic media.
It lays out title and index text, accent lines, and gradients over a source
frame and composites the result with ImageMagick.`,
}

var (
	configPath   string
	logLevelFlag string
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (defaults to the XDG config location)")
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn or error")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// environment bundles the loaded config and logger every command needs.
type environment struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	levelName := logLevelFlag
	if levelName == "" {
		levelName = cfg.General.LogLevel
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:    cfg,
		logger: logging.New(os.Stderr, level),
	}, nil
}

// newGenerator wires the card generator against the real compositor.
func newGenerator(env *environment) *app.Generator {
	im := compositor.New(env.cfg.General.Convert, env.logger)
	return &app.Generator{
		AssetsDir: env.cfg.General.AssetsDir,
		FontMap:   env.cfg.Fonts,
		Policy:    env.cfg.Policy(),
		Measurer:  im,
		Runner:    im,
		Glyphs:    fontcheck.New(env.logger),
		Logger:    env.logger,
	}
}
