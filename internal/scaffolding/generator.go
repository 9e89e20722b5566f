// Package scaffolding turns a normalized component request into files on
// disk. Generation is a fixed sequence of steps: every check that can fail
// without touching the filesystem runs first, then the component directory
// and its files are written in order. Files already written are not rolled
// back when a later write fails.
package scaffolding

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/conneroisu/new-component/internal/config"
	cerrors "github.com/conneroisu/new-component/internal/errors"
	"github.com/conneroisu/new-component/internal/format"
	"github.com/conneroisu/new-component/internal/logging"
	"github.com/conneroisu/new-component/internal/naming"
	"github.com/conneroisu/new-component/internal/templates"
)

// Messages reported after each completed write.
const (
	MsgDirectoryCreated = "Directory created."
	MsgComponentWritten = "Component built and saved to disk."
	MsgStyleWritten     = "Style module built and saved to disk."
	MsgIndexWritten     = "Index file built and saved to disk."
)

// Options configures a Generator. Only Fs is required.
type Options struct {
	Fs afero.Fs
	// WorkDir anchors a relative configured directory.
	WorkDir   string
	Selector  *templates.Selector
	Formatter *format.Formatter
	Reporter  Reporter
	// Confirmer is asked before creating a missing parent directory. A nil
	// Confirmer declines.
	Confirmer Confirmer
	Logger    logging.Logger
	// DryRun renders and checks everything but writes nothing.
	DryRun bool
}

// Generator runs the generation pipeline.
type Generator struct {
	fs        afero.Fs
	workDir   string
	selector  *templates.Selector
	formatter *format.Formatter
	reporter  Reporter
	confirmer Confirmer
	logger    logging.Logger
	dryRun    bool
}

// New creates a Generator.
func New(opts Options) *Generator {
	g := &Generator{
		fs:        opts.Fs,
		workDir:   opts.WorkDir,
		selector:  opts.Selector,
		formatter: opts.Formatter,
		reporter:  opts.Reporter,
		confirmer: opts.Confirmer,
		logger:    opts.Logger,
		dryRun:    opts.DryRun,
	}
	if g.fs == nil {
		g.fs = afero.NewOsFs()
	}
	if g.selector == nil {
		g.selector = templates.NewSelector(nil)
	}
	if g.reporter == nil {
		g.reporter = nopReporter{}
	}
	if g.confirmer == nil {
		g.confirmer = AutoConfirm(false)
	}
	if g.logger == nil {
		g.logger = logging.Nop()
	}
	g.logger = g.logger.WithComponent("scaffolding")
	return g
}

// Artifact is one rendered file.
type Artifact struct {
	Path     string
	Template string
	Content  string
	Message  string
}

// plan is the state shared by the steps of one run.
type plan struct {
	req       naming.ComponentRequest
	cfg       config.Config
	parentDir string
	dir       string

	ref       templates.Reference
	component *Artifact
	style     *Artifact
	index     *Artifact

	written []string
}

// Generate creates the component described by req. Every outcome is
// reported to the Reporter and returned as a Result.
func (g *Generator) Generate(ctx context.Context, req naming.ComponentRequest, cfg config.Config) Result {
	p := &plan{
		req:       req,
		cfg:       cfg,
		parentDir: g.resolveDir(cfg.Dir),
	}
	p.dir = filepath.Join(p.parentDir, req.Name)

	g.reporter.Intro(g.intro(p))
	g.logger.Debug(ctx, "Generating component",
		"name", req.Name,
		"dir", p.dir,
		"extension", req.Extension,
		"variant", req.Variant,
		"dry_run", g.dryRun)

	result := sequence(ctx, g.logger, g.steps(req), p)
	result.Dir = p.dir
	result.DryRun = g.dryRun
	// Files already written stay on disk after a failure and are listed.
	result.Files = p.written
	if !result.OK() {
		g.reporter.Error(result.Err)
		return result
	}

	g.reporter.Conclusion(result)
	return result
}

func (g *Generator) resolveDir(dir string) string {
	if filepath.IsAbs(dir) || g.workDir == "" {
		return filepath.Clean(dir)
	}
	return filepath.Join(g.workDir, dir)
}

func (g *Generator) intro(p *plan) Intro {
	variant := p.req.Variant
	if variant == "" {
		variant = templates.DefaultVariant
	}
	variants, err := g.selector.Variants(templates.Classify(p.req.Extension))
	if err != nil {
		g.logger.Warn(context.Background(), err, "Cannot list template variants")
	}
	return Intro{
		Name:      p.req.Name,
		Dir:       p.cfg.Dir,
		Extension: p.req.Extension,
		Variant:   variant,
		Variants:  variants,
		Style:     p.req.Style,
		DryRun:    g.dryRun,
	}
}

func (g *Generator) steps(req naming.ComponentRequest) []Step {
	steps := []Step{
		{Name: "select-templates", Run: g.selectTemplates},
		{Name: "check-target", Run: g.checkTarget},
		{Name: "render", Run: g.render},
		{Name: "check-parent", Run: g.checkParent},
	}
	if g.dryRun {
		return append(steps, Step{Name: "preview", Run: g.preview})
	}

	steps = append(steps,
		Step{Name: "create-directory", Run: g.createDirectory},
		Step{Name: "write-component", Run: g.writer(func(p *plan) *Artifact { return p.component })},
	)
	if req.Style {
		steps = append(steps, Step{Name: "write-style", Run: g.writer(func(p *plan) *Artifact { return p.style })})
	}
	return append(steps, Step{Name: "write-index", Run: g.writer(func(p *plan) *Artifact { return p.index })})
}

func (g *Generator) selectTemplates(_ context.Context, p *plan) error {
	ref, err := g.selector.Select(p.req)
	if err != nil {
		return err
	}
	p.ref = ref
	return nil
}

func (g *Generator) checkTarget(_ context.Context, p *plan) error {
	exists, err := afero.Exists(g.fs, p.dir)
	if err != nil {
		return cerrors.NewWriteError(p.dir, err)
	}
	if exists {
		return cerrors.NewComponentExistsError(p.dir)
	}
	return nil
}

// render produces every artifact in memory. Nothing is written here.
func (g *Generator) render(ctx context.Context, p *plan) error {
	replacer := strings.NewReplacer(
		templates.ClassPlaceholder, p.req.ClassName,
		templates.NamePlaceholder, p.req.Name,
	)

	build := func(tpl, text, name, ext, message string) (*Artifact, error) {
		target := filepath.Join(p.dir, name)
		content, err := g.format(replacer.Replace(text), ext, tpl, target)
		if err != nil {
			return nil, err
		}
		g.logger.Debug(ctx, "Rendered artifact", "template", tpl, "path", target, "bytes", len(content))
		return &Artifact{Path: target, Template: tpl, Content: content, Message: message}, nil
	}

	text, err := g.selector.Load(p.ref.ComponentPath)
	if err != nil {
		return err
	}
	p.component, err = build(p.ref.ComponentPath, text, p.req.Name+"."+p.req.Extension, p.req.Extension, MsgComponentWritten)
	if err != nil {
		return err
	}

	if p.ref.StylePath != "" {
		text, err := g.selector.Load(p.ref.StylePath)
		if err != nil {
			return err
		}
		name := fmt.Sprintf("%s.module.%s", p.req.Name, p.req.StyleExtension)
		p.style, err = build(p.ref.StylePath, text, name, p.req.StyleExtension, MsgStyleWritten)
		if err != nil {
			return err
		}
	}

	indexExt := p.ref.Family.IndexExtension()
	p.index, err = build("index", p.ref.Index, "index."+indexExt, indexExt, MsgIndexWritten)
	return err
}

func (g *Generator) format(text, ext, tpl, target string) (string, error) {
	if g.formatter == nil {
		return text, nil
	}
	fn, err := g.formatter.Build(ext)
	if err != nil {
		return "", err
	}
	out, err := fn(text)
	if err != nil {
		return "", cerrors.NewFormattingError(target, fmt.Sprintf("cannot format template %s: %v", tpl, err))
	}
	return out, nil
}

func (g *Generator) checkParent(ctx context.Context, p *plan) error {
	exists, err := afero.DirExists(g.fs, p.parentDir)
	if err != nil {
		return cerrors.NewWriteError(p.parentDir, err)
	}
	if exists {
		return nil
	}

	g.reporter.Warning(fmt.Sprintf("No parent \"components\" directory found at '%s'.", p.cfg.Dir))
	if g.dryRun {
		return nil
	}

	ok, err := g.confirmer.Confirm(`Create "components" directory? (Y/N): `)
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		return cerrors.NewMissingParentError(p.cfg.Dir)
	}

	if err := g.fs.MkdirAll(p.parentDir, 0o755); err != nil {
		return cerrors.NewWriteError(p.parentDir, err)
	}
	g.logger.Info(ctx, "Created parent directory", "path", p.parentDir)
	g.reporter.ItemCompleted(fmt.Sprintf("Created \"components\" directory at '%s'.", p.cfg.Dir))
	return nil
}

func (g *Generator) createDirectory(_ context.Context, p *plan) error {
	if err := g.fs.Mkdir(p.dir, 0o755); err != nil {
		return cerrors.NewWriteError(p.dir, err)
	}
	g.reporter.ItemCompleted(MsgDirectoryCreated)
	return nil
}

func (g *Generator) writer(pick func(*plan) *Artifact) func(context.Context, *plan) error {
	return func(ctx context.Context, p *plan) error {
		a := pick(p)
		if a == nil {
			return nil
		}
		if err := afero.WriteFile(g.fs, a.Path, []byte(a.Content), 0o644); err != nil {
			return cerrors.NewWriteError(a.Path, err)
		}
		p.written = append(p.written, a.Path)
		g.logger.Debug(ctx, "Wrote file", "path", a.Path)
		g.reporter.ItemCompleted(a.Message)
		return nil
	}
}

func (g *Generator) preview(_ context.Context, p *plan) error {
	for _, a := range []*Artifact{p.component, p.style, p.index} {
		if a == nil {
			continue
		}
		p.written = append(p.written, a.Path)
		g.reporter.ItemCompleted(fmt.Sprintf("Would write %s", a.Path))
	}
	return nil
}
