// Package config resolves the effective generator configuration by layering
// built-in defaults, the user-global and project-local override files, the
// project .env file, the process environment and explicitly changed CLI
// flags, in that order. Each layer overrides the previous one key by key.
//
// Resolution is a pure function of its inputs: the filesystem, home and
// working directories, environment and flag set are all passed in through
// ResolveOptions, so nothing here reads process-wide state.
package config

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	cerrors "github.com/conneroisu/new-component/internal/errors"
	"github.com/conneroisu/new-component/internal/logging"
)

// FileName is the override file looked up in the home and working directories.
const FileName = ".new-component-config.json"

// EnvPrefix prefixes every environment variable the resolver honours.
const EnvPrefix = "NEW_COMPONENT_"

// Config is the effective configuration for one invocation.
type Config struct {
	Dir            string                 `mapstructure:"dir" json:"dir" yaml:"dir"`
	Type           string                 `mapstructure:"type" json:"type" yaml:"type"`
	Extension      string                 `mapstructure:"extension" json:"extension" yaml:"extension"`
	PascalCase     bool                   `mapstructure:"pascalCase" json:"pascalCase" yaml:"pascalCase"`
	Style          bool                   `mapstructure:"style" json:"style" yaml:"style"`
	StyleExtension string                 `mapstructure:"styleExtension" json:"styleExtension" yaml:"styleExtension"`
	TemplatesDir   string                 `mapstructure:"templatesDir" json:"templatesDir,omitempty" yaml:"templatesDir,omitempty"`
	PrettierConfig map[string]interface{} `mapstructure:"prettierConfig" json:"prettierConfig,omitempty" yaml:"prettierConfig,omitempty"`

	sources []string
}

// Sources lists the files that contributed overrides, lowest precedence first.
func (c Config) Sources() []string {
	out := make([]string, len(c.sources))
	copy(out, c.sources)
	return out
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Dir:            "src/components",
		Type:           "functional",
		Extension:      "jsx",
		PascalCase:     true,
		Style:          false,
		StyleExtension: "css",
	}
}

func defaultValues() map[string]interface{} {
	d := Defaults()
	return map[string]interface{}{
		"dir":            d.Dir,
		"type":           d.Type,
		"extension":      d.Extension,
		"pascalCase":     d.PascalCase,
		"style":          d.Style,
		"styleExtension": d.StyleExtension,
		"templatesDir":   d.TemplatesDir,
	}
}

// ResolveOptions carries every input the resolver reads.
type ResolveOptions struct {
	// Fs defaults to the OS filesystem.
	Fs afero.Fs
	// HomeDir holds the user-global override file. Empty skips that layer.
	HomeDir string
	// WorkDir holds the project override file and .env. Empty skips both.
	WorkDir string
	// Environ is a list of KEY=VALUE pairs, as returned by os.Environ.
	Environ []string
	// Flags contributes only the flags that were explicitly changed.
	Flags  *pflag.FlagSet
	Logger logging.Logger
}

// Resolve merges all configuration layers into one Config.
func Resolve(opts ResolveOptions) (Config, error) {
	ctx := context.Background()
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.WithComponent("config")

	v := viper.New()
	v.SetFs(fsys)
	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}

	var sources []string
	var prettier map[string]interface{}
	for _, dir := range []string{opts.HomeDir, opts.WorkDir} {
		if dir == "" {
			continue
		}
		path := filepath.Join(dir, FileName)
		data, ok, err := readOverrideFile(fsys, path)
		if err != nil {
			logger.Warn(ctx, err, "Skipping unreadable override file", "file", path)
			continue
		}
		if !ok {
			logger.Debug(ctx, "No override file", "file", path)
			continue
		}
		v.SetConfigType("json")
		if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
			return Config{}, cerrors.NewConfigParseError(path, "override file is not a valid JSON object", err)
		}
		// viper deep-merges nested maps and folds their keys to lower case,
		// so prettierConfig is taken whole from the last file that sets it.
		rules, set, err := prettierOverride(data)
		if err != nil {
			return Config{}, cerrors.NewConfigParseError(path, "prettierConfig must be an object", err)
		}
		if set {
			prettier = rules
		}
		sources = append(sources, path)
		logger.Debug(ctx, "Merged override file", "file", path)
	}

	if opts.WorkDir != "" {
		path := filepath.Join(opts.WorkDir, ".env")
		values, ok, err := readDotEnv(fsys, path)
		if err != nil {
			return Config{}, err
		}
		if ok {
			if overrides := envOverrides(values); len(overrides) > 0 {
				if err := v.MergeConfigMap(overrides); err != nil {
					return Config{}, cerrors.NewConfigParseError(path, "cannot merge .env overrides", err)
				}
				sources = append(sources, path)
				logger.Debug(ctx, "Merged .env overrides", "file", path, "keys", len(overrides))
			}
		}
	}

	if overrides := envOverrides(environMap(opts.Environ)); len(overrides) > 0 {
		if err := v.MergeConfigMap(overrides); err != nil {
			return Config{}, fmt.Errorf("merge environment overrides: %w", err)
		}
		logger.Debug(ctx, "Merged environment overrides", "keys", len(overrides))
	}

	if overrides := flagOverrides(opts.Flags); len(overrides) > 0 {
		if err := v.MergeConfigMap(overrides); err != nil {
			return Config{}, fmt.Errorf("merge flag overrides: %w", err)
		}
		logger.Debug(ctx, "Merged flag overrides", "keys", len(overrides))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, cerrors.NewConfigParseError(lastOr(sources, FileName), "configuration values have the wrong type", err)
	}
	cfg.PrettierConfig = prettier
	cfg.sources = sources

	if err := validate(cfg); err != nil {
		return Config{}, cerrors.NewConfigParseError(lastOr(sources, "configuration"), err.Error(), nil)
	}

	return cfg, nil
}

var extensionPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{0,7}$`)

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Dir) == "" {
		return fmt.Errorf("dir must not be empty")
	}
	if strings.TrimSpace(cfg.Type) == "" {
		return fmt.Errorf("type must not be empty")
	}
	if !extensionPattern.MatchString(cfg.Extension) {
		return fmt.Errorf("extension %q is not a valid file extension", cfg.Extension)
	}
	if !extensionPattern.MatchString(cfg.StyleExtension) {
		return fmt.Errorf("styleExtension %q is not a valid file extension", cfg.StyleExtension)
	}
	return nil
}

func lastOr(list []string, fallback string) string {
	if len(list) == 0 {
		return fallback
	}
	return list[len(list)-1]
}
