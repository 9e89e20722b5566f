package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/new-component/internal/version"
)

func versionString() string {
	return version.Get().Short()
}

func newVersionCommand(_ *app) *cobra.Command {
	var (
		outputFormat string
		detailed     bool
	)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Display version information for new-component.

Examples:
  new-component version
  new-component version --detailed
  new-component version --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.Get()
			out := cmd.OutOrStdout()

			switch outputFormat {
			case "json":
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(struct {
					version.BuildInfo
					IsRelease bool `json:"is_release"`
				}{info, info.IsRelease()})
			case "text":
				if detailed {
					fmt.Fprintln(out, info.Detailed())
					return nil
				}
				fmt.Fprintf(out, "new-component %s\n", info.Short())
				return nil
			default:
				return fmt.Errorf("unsupported format: %s (supported: text, json)", outputFormat)
			}
		},
	}
	versionCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json)")
	versionCmd.Flags().BoolVar(&detailed, "detailed", false, "show detailed version information")
	return versionCmd
}
