package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/new-component/internal/templates"
)

func newTemplatesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "List the available component templates",
		Long: `List template families and their variants from the active template
source: the built-in set, or templatesDir when configured.`,
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

			out := cmd.OutOrStdout()
			source := "built-in"
			if cfg.TemplatesDir != "" {
				source = cfg.TemplatesDir
			}
			fmt.Fprintf(out, "Template source: %s\n\n", source)

			for _, family := range templates.Families {
				variants, err := selector.Variants(family)
				if err != nil {
					return err
				}
				list := "(none)"
				if len(variants) > 0 {
					list = strings.Join(variants, ", ")
				}
				fmt.Fprintf(out, "%-3s *.%s -> index.%s: %s\n",
					family, family.TemplateExtension(), family.IndexExtension(), list)
			}

			style := "missing"
			if selector.HasStyle() {
				style = "available"
			}
			fmt.Fprintf(out, "style %s: %s\n", filepath.Base(templates.StylePath), style)
			return nil
		},
	}
}
