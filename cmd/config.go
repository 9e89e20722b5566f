package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/new-component/internal/config"
)

// configReport is what `config` prints.
type configReport struct {
	Config  config.Config `json:"config" yaml:"config"`
	Sources []string      `json:"sources" yaml:"sources"`
}

func newConfigCommand(a *app) *cobra.Command {
	var outputFormat string

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Resolve the configuration exactly as a generate run would and print it,
together with the override files that contributed to it.

Examples:
  new-component config
  new-component config --format yaml
  new-component config --dir lib/components`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := a.logger()
			if err != nil {
				return err
			}
			cfg, err := a.resolve(cmd, logger)
			if err != nil {
				return a.handled(err)
			}
			return writeConfig(cmd.OutOrStdout(), outputFormat, configReport{
				Config:  cfg,
				Sources: cfg.Sources(),
			})
		},
	}
	configCmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, yaml)")

	configCmd.AddCommand(newConfigInitCommand(a))
	return configCmd
}

func writeConfig(w io.Writer, outputFormat string, report configReport) error {
	if report.Sources == nil {
		report.Sources = []string{}
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unsupported format: %s (supported: json, yaml)", outputFormat)
	}
}

func newConfigInitCommand(a *app) *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project override file interactively",
		Long: `Ask for every setting, offering the current effective value as the
default, and write the answers to ./` + config.FileName + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := a.logger()
			if err != nil {
				return err
			}
			cfg, err := a.resolve(cmd, logger)
			if err != nil {
				return a.handled(err)
			}

			selector, err := a.selector(cfg)
			if err != nil {
				return a.handled(err)
			}
			variants, err := selector.AllVariants()
			if err != nil {
				return err
			}

			answers, err := config.NewWizard(a.env.Stdin, cmd.OutOrStdout(), cfg, variants).Run()
			if err != nil {
				return err
			}

			path, err := config.WriteFile(a.env.Fs, a.env.WorkDir, answers, force)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing override file")
	return initCmd
}
