package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vitalvas/swagdoc/config"
	"github.com/vitalvas/swagdoc/swagger"
)

// Document formats written by generate.
const (
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatOpenAPI3 = "openapi3"
)

type generateOptions struct {
	format string
	scope  string
	out    string
}

func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the document of a scope to a file or stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			if opts.out == "" || opts.out == "-" {
				return c.generate(cfg, opts, cmd.OutOrStdout())
			}

			f, err := os.Create(opts.out)
			if err != nil {
				return fmt.Errorf("create output: %w", err)
			}
			if err := c.generate(cfg, opts, f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", FormatJSON, "Output format: json, yaml, openapi3")
	cmd.Flags().StringVarP(&opts.scope, "scope", "s", "", "Scope labelling the build in logs")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func (c *CLI) generate(cfg *config.Config, opts generateOptions, w io.Writer) error {
	log := c.logger(cfg)

	render, err := renderer(opts.format)
	if err != nil {
		return err
	}

	doc, err := newBuilder(cfg, log).Build(opts.scope)
	if err != nil {
		return fmt.Errorf("build document: %w", err)
	}

	data, err := render(doc)
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.format, err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func renderer(format string) (func(*swagger.Document) ([]byte, error), error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return swagger.Serialize, nil
	case FormatYAML, "yml":
		return swagger.SerializeYAML, nil
	case FormatOpenAPI3, "v3":
		return swagger.ConvertV3, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: json, yaml, openapi3)", format)
	}
}
