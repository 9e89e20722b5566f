//go:build property
// +build property

package scaffolding

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/spf13/afero"

	"github.com/conneroisu/new-component/internal/config"
	"github.com/conneroisu/new-component/internal/format"
	"github.com/conneroisu/new-component/internal/naming"
	"github.com/conneroisu/new-component/internal/templates"
)

var typedSet = map[string]bool{"ts": true, "tsx": true, "mts": true, "cts": true}

// randomCase flips the case of letters selected by mask.
func randomCase(s string, mask uint32) string {
	var b strings.Builder
	for i, r := range s {
		if mask&(1<<uint(i%32)) != 0 {
			b.WriteString(strings.ToUpper(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestTypedFamilyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(4321)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	selector := templates.NewSelector(nil)

	properties.Property("typed family iff the extension is typed, in any case", prop.ForAll(
		func(name, ext string, mask uint32) bool {
			raw := name + "." + randomCase(ext, mask)
			req, err := naming.Normalize(raw, config.Defaults())
			if err != nil {
				return false
			}
			ref, err := selector.Select(req)
			if err != nil {
				return false
			}
			typed := typedSet[strings.ToLower(ext)]
			if typed != (ref.Family == templates.FamilyTyped) {
				return false
			}
			return ref.Family.IndexExtension() == map[bool]string{true: "ts", false: "js"}[typed]
		},
		gen.Identifier(),
		gen.OneConstOf("ts", "tsx", "mts", "cts", "js", "jsx", "mjs", "cjs", "vue", "es"),
		gen.UInt32(),
	))

	properties.TestingRun(t)
}

func TestSubstitutionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(8765)
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("no placeholder survives generation", prop.ForAll(
		func(name, variant string, typed, style bool) bool {
			fsys := afero.NewMemMapFs()
			if err := fsys.MkdirAll(parentDir, 0o755); err != nil {
				return false
			}

			cfg := config.Defaults()
			cfg.Type = variant
			cfg.Style = style
			if typed {
				cfg.Extension = "tsx"
			}

			req, err := naming.Normalize(name, cfg)
			if err != nil {
				return false
			}

			res := New(Options{
				Fs:        fsys,
				WorkDir:   workDir,
				Formatter: format.New(format.Options{Fs: fsys, WorkDir: workDir}),
			}).Generate(context.Background(), req, cfg)
			if !res.OK() {
				return false
			}

			for _, p := range res.Files {
				if filepath.Dir(p) != res.Dir {
					return false
				}
				data, err := afero.ReadFile(fsys, p)
				if err != nil {
					return false
				}
				content := string(data)
				if strings.Contains(content, templates.NamePlaceholder) || strings.Contains(content, templates.ClassPlaceholder) {
					return false
				}
				if !strings.Contains(content, req.Name) {
					return false
				}
			}
			return true
		},
		gen.Identifier(),
		gen.OneConstOf("functional", "class", "pure-class"),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
