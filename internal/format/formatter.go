// Package format wraps a pluggable code-formatting engine. A Formatter
// resolves formatting rules once per file extension and hands back a
// memoized function that formats text of that kind.
//
// Rule resolution order:
//  1. the explicit rule set from configuration (prettierConfig);
//  2. the nearest .prettierrc, .prettierrc.json, .prettierrc.yaml,
//     .prettierrc.yml or package.json#prettier found walking up from the
//     working directory;
//  3. DefaultRules.
package format

import (
	"context"
	"sync"

	"github.com/spf13/afero"

	cerrors "github.com/conneroisu/new-component/internal/errors"
	"github.com/conneroisu/new-component/internal/logging"
)

// Func formats text. It is safe to call repeatedly.
type Func func(text string) (string, error)

// Options configures a Formatter.
type Options struct {
	// Explicit rules win over anything discovered on disk.
	Explicit map[string]interface{}
	// WorkDir is where the upward rule-file search starts.
	WorkDir string
	Fs      afero.Fs
	Engine  Engine
	Logger  logging.Logger
}

// Formatter builds per-kind formatting functions.
type Formatter struct {
	opts Options

	once     sync.Once
	base     Rules
	baseErr  error
	mu       sync.Mutex
	builders map[string]Func
}

// New creates a Formatter. Rule files are not read until the first Build.
func New(opts Options) *Formatter {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Engine == nil {
		opts.Engine = LayoutEngine{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	opts.Logger = opts.Logger.WithComponent("format")
	return &Formatter{opts: opts, builders: make(map[string]Func)}
}

func (f *Formatter) resolveBase() (Rules, error) {
	f.once.Do(func() {
		ctx := context.Background()
		if f.opts.Explicit != nil {
			f.base, f.baseErr = RulesFromMap(f.opts.Explicit)
			if f.baseErr != nil {
				f.baseErr = cerrors.NewConfigParseError("prettierConfig", "invalid formatting rules", f.baseErr)
				return
			}
			f.opts.Logger.Debug(ctx, "Using explicit formatting rules")
			return
		}

		rules, source, found, err := discoverRules(f.opts.Fs, f.opts.WorkDir)
		if err != nil {
			f.baseErr = err
			return
		}
		if found {
			f.base = rules
			f.opts.Logger.Debug(ctx, "Using discovered formatting rules", "file", source)
			return
		}

		f.base = DefaultRules()
		f.opts.Logger.Debug(ctx, "Using built-in formatting rules")
	})
	return f.base, f.baseErr
}

// Build returns the formatting function for files with extension ext.
// Repeated calls with the same extension return the same function.
func (f *Formatter) Build(ext string) (Func, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if fn, ok := f.builders[ext]; ok {
		return fn, nil
	}

	base, err := f.resolveBase()
	if err != nil {
		return nil, err
	}

	rules := base.ForFile("file." + ext)
	kind := KindFor(ext)
	engine := f.opts.Engine
	fn := func(text string) (string, error) {
		return engine.Format(text, kind, rules)
	}
	f.builders[ext] = fn
	return fn, nil
}

// Rules returns the resolved rules for ext, mainly for diagnostics.
func (f *Formatter) Rules(ext string) (Rules, error) {
	base, err := f.resolveBase()
	if err != nil {
		return Rules{}, err
	}
	return base.ForFile("file." + ext), nil
}
