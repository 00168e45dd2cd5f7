// Package cli provides the swagdoc command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitalvas/swagdoc/config"
	"github.com/vitalvas/swagdoc/examples/petstore"
	"github.com/vitalvas/swagdoc/logging"
	"github.com/vitalvas/swagdoc/swagger"
)

// CLI holds the root command and its flags.
type CLI struct {
	rootCmd    *cobra.Command
	configPath string
	logOutput  io.Writer
}

// New creates the command tree.
func New() *CLI {
	c := &CLI{logOutput: os.Stderr}

	c.rootCmd = &cobra.Command{
		Use:   "swagdoc",
		Short: "Serve and generate Swagger 2.0 documents of the petstore demo",
		Long: `swagdoc builds Swagger 2.0 documents from service descriptors at runtime.

The serve command hosts the demo API together with its documents and the
bundled viewer. The generate command writes a document to a file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c.rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to the TOML configuration file (default config.toml when present)")

	c.rootCmd.AddCommand(c.serveCommand(), c.generateCommand())

	return c
}

// Command returns the root command.
func (c *CLI) Command() *cobra.Command {
	return c.rootCmd
}

// Execute runs the CLI.
func (c *CLI) Execute() error {
	return c.rootCmd.Execute()
}

// loadConfig reads the configuration. Without a --config flag the default
// file is optional.
func (c *CLI) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	switch {
	case c.configPath != "":
		cfg, err = config.Load(c.configPath)
	default:
		cfg, err = config.Load(config.DefaultConfigFile)
		if errors.Is(err, fs.ErrNotExist) {
			cfg, err = config.Parse(nil)
		}
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *CLI) logger(cfg *config.Config) *slog.Logger {
	return logging.NewWriter(c.logOutput, &cfg.Logging)
}

// newBuilder documents the services of the default catalog, which includes
// the petstore demo.
func newBuilder(cfg *config.Config, log *slog.Logger) *swagger.Builder {
	b := swagger.NewBuilder(swagger.BuilderConfig{
		HiddenTags:  cfg.Swagger.HiddenTags(),
		VisibleTags: cfg.Swagger.VisibleTags(),
		Settings:    cfg.Swagger.Settings,
		Logger:      log,
	})
	b.SetOverrides(swagger.Overrides{SecurityDefinitions: petstore.SecurityDefinitions()})
	return b
}
