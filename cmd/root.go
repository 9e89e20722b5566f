// Package cmd wires the generator into a cobra command tree.
//
// Configuration is layered, lowest precedence first:
//  1. built-in defaults
//  2. ~/.new-component-config.json
//  3. ./.new-component-config.json
//  4. NEW_COMPONENT_* entries in ./.env
//  5. NEW_COMPONENT_* environment variables
//  6. flags given on the command line
//
// Errors the user can fix (a malformed override file, an existing
// component, a missing template) are printed and the process exits 0.
// Anything else is returned from Execute.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/conneroisu/new-component/internal/config"
	cerrors "github.com/conneroisu/new-component/internal/errors"
	"github.com/conneroisu/new-component/internal/format"
	"github.com/conneroisu/new-component/internal/logging"
	"github.com/conneroisu/new-component/internal/naming"
	"github.com/conneroisu/new-component/internal/scaffolding"
	"github.com/conneroisu/new-component/internal/templates"
	"github.com/conneroisu/new-component/internal/ui"
)

// Env is everything the commands read from the process.
type Env struct {
	Fs      afero.Fs
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	HomeDir string
	WorkDir string
	Environ []string
}

// DefaultEnv describes the running process.
func DefaultEnv() (Env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Env{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	// Without a home directory the global override file is skipped.
	home, _ := os.UserHomeDir()

	return Env{
		Fs:      afero.NewOsFs(),
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		HomeDir: home,
		WorkDir: wd,
		Environ: os.Environ(),
	}, nil
}

// Execute runs the command tree against the current process.
func Execute() error {
	env, err := DefaultEnv()
	if err != nil {
		return err
	}
	return NewRootCommand(env).Execute()
}

type rootOptions struct {
	yes       bool
	dryRun    bool
	noColor   bool
	logLevel  string
	logFormat string
}

// app carries the environment and global options into every command.
type app struct {
	env  Env
	opts rootOptions
}

// NewRootCommand builds the full command tree.
func NewRootCommand(env Env) *cobra.Command {
	a := &app{env: env}

	rootCmd := &cobra.Command{
		Use:   "new-component <componentName>",
		Short: "Scaffold a React component directory",
		Long: `new-component creates a directory for a React component containing the
component source, an index file re-exporting it and, optionally, a CSS module.

Examples:
  new-component Button
  new-component nav-bar --type class
  new-component Widget.tsx --style
  new-component Card --dir src/ui --dry-run`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		Version:      versionString(),
		RunE:         a.runGenerate,
	}
	rootCmd.SetIn(env.Stdin)
	rootCmd.SetOut(env.Stdout)
	rootCmd.SetErr(env.Stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringP("dir", "d", "", `path to the "components" directory (default "src/components")`)
	pf.StringP("type", "t", "", `component variant, e.g. functional, class, pure-class (default "functional")`)
	pf.StringP("extension", "x", "", `file extension for the component (default "jsx")`)
	pf.Bool("no-pascal-case", false, "keep the component name as written instead of converting it to PascalCase")
	pf.Bool("style", false, "also generate a CSS module")
	pf.String("style-extension", "", `file extension for the style module (default "css")`)
	pf.String("templates-dir", "", "directory with custom templates (js/, ts/, style/)")
	pf.StringVar(&a.opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&a.opts.logFormat, "log-format", "text", "log format (text, json)")
	pf.BoolVar(&a.opts.noColor, "no-color", false, "disable coloured output")

	rootCmd.Flags().BoolVarP(&a.opts.yes, "yes", "y", false, "create a missing components directory without asking")
	rootCmd.Flags().BoolVar(&a.opts.dryRun, "dry-run", false, "show what would be created without writing anything")

	rootCmd.AddCommand(
		newConfigCommand(a),
		newTemplatesCommand(a),
		newVersionCommand(a),
	)
	return rootCmd
}

func (a *app) logger() (logging.Logger, error) {
	level, err := logging.ParseLevel(a.opts.logLevel)
	if err != nil {
		return nil, err
	}
	switch a.opts.logFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unsupported log format: %s (supported: text, json)", a.opts.logFormat)
	}

	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    a.opts.logFormat,
		Output:    a.env.Stderr,
		Component: "new-component",
	}), nil
}

func (a *app) resolve(cmd *cobra.Command, logger logging.Logger) (config.Config, error) {
	return config.Resolve(config.ResolveOptions{
		Fs:      a.env.Fs,
		HomeDir: a.env.HomeDir,
		WorkDir: a.env.WorkDir,
		Environ: a.env.Environ,
		Flags:   cmd.Flags(),
		Logger:  logger,
	})
}

// selector returns the template selector for cfg, reading templatesDir when set.
func (a *app) selector(cfg config.Config) (*templates.Selector, error) {
	if cfg.TemplatesDir == "" {
		return templates.NewSelector(nil), nil
	}

	dir := cfg.TemplatesDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(a.env.WorkDir, dir)
	}
	ok, err := afero.DirExists(a.env.Fs, dir)
	if err != nil || !ok {
		if err == nil {
			err = os.ErrNotExist
		}
		return nil, cerrors.NewTemplateNotFoundError(dir, err)
	}
	return templates.NewSelector(templates.FromDir(a.env.Fs, dir)), nil
}

func (a *app) console() *ui.Console {
	return ui.NewConsole(a.env.Stdout, a.opts.noColor)
}

// handled prints user-facing errors and swallows them so the process exits 0.
func (a *app) handled(err error) error {
	if err == nil || !cerrors.IsUserFacing(err) {
		return err
	}
	a.console().Error(err)
	return nil
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger, err := a.logger()
	if err != nil {
		return err
	}

	cfg, err := a.resolve(cmd, logger)
	if err != nil {
		return a.handled(err)
	}

	req, err := naming.Normalize(args[0], cfg)
	if err != nil {
		return a.handled(err)
	}

	selector, err := a.selector(cfg)
	if err != nil {
		return a.handled(err)
	}

	var confirmer scaffolding.Confirmer = ui.NewPrompt(a.env.Stdin, a.env.Stdout)
	if a.opts.yes {
		confirmer = scaffolding.AutoConfirm(true)
	}

	generator := scaffolding.New(scaffolding.Options{
		Fs:       a.env.Fs,
		WorkDir:  a.env.WorkDir,
		Selector: selector,
		Formatter: format.New(format.Options{
			Explicit: cfg.PrettierConfig,
			WorkDir:  a.env.WorkDir,
			Fs:       a.env.Fs,
			Logger:   logger,
		}),
		Reporter:  a.console(),
		Confirmer: confirmer,
		Logger:    logger,
		DryRun:    a.opts.dryRun,
	})

	result := generator.Generate(ctx, req, cfg)
	if result.OK() || cerrors.IsUserFacing(result.Err) {
		return nil
	}
	return result.Err
}
