// Package templates maps a component request to the template resources that
// produce it. Templates live in an fs.FS laid out as
//
//	js/<variant>.jsx
//	ts/<variant>.tsx
//	style/module.css
//
// The built-in set is embedded; a project can point templatesDir at a
// directory with the same layout to replace it.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"

	cerrors "github.com/conneroisu/new-component/internal/errors"
	"github.com/conneroisu/new-component/internal/naming"
)

//go:embed files
var builtin embed.FS

// Placeholder tokens substituted into every template.
const (
	NamePlaceholder  = "COMPONENT_NAME"
	ClassPlaceholder = "COMPONENT_CLASS"
)

// DefaultVariant is used when a request does not name a variant.
const DefaultVariant = "functional"

// StylePath is the style module template, shared by both families.
const StylePath = "style/module.css"

// IndexTemplate re-exports the component from its directory. It is inlined
// rather than loaded because it never varies between projects.
const IndexTemplate = `export * from './COMPONENT_NAME';
export { default } from './COMPONENT_NAME';
`

// Family is the language family a template belongs to.
type Family string

const (
	FamilyPlain Family = "js"
	FamilyTyped Family = "ts"
)

// Families lists every family in display order.
var Families = []Family{FamilyPlain, FamilyTyped}

var typedExtensions = regexp.MustCompile(`(?i)^(ts|tsx|mts|cts)$`)

// Classify returns the family for a component file extension.
func Classify(ext string) Family {
	if typedExtensions.MatchString(strings.TrimPrefix(ext, ".")) {
		return FamilyTyped
	}
	return FamilyPlain
}

// TemplateExtension is the suffix of component templates in this family.
func (f Family) TemplateExtension() string { return string(f) + "x" }

// IndexExtension is the extension of the generated index file.
func (f Family) IndexExtension() string { return string(f) }

// Reference is the resolved set of templates for one request.
type Reference struct {
	Family        Family
	Variant       string
	ComponentPath string
	// StylePath is empty when no style module was requested.
	StylePath string
	Index     string
}

// Builtin returns the embedded template tree.
func Builtin() fs.FS {
	sub, err := fs.Sub(builtin, "files")
	if err != nil {
		panic(fmt.Sprintf("templates: embedded tree is missing: %v", err))
	}
	return sub
}

// FromDir exposes dir on fsys as a template tree.
func FromDir(fsys afero.Fs, dir string) fs.FS {
	return afero.NewIOFS(afero.NewBasePathFs(fsys, dir))
}

// Selector resolves requests against one template tree.
type Selector struct {
	fsys fs.FS
}

// NewSelector creates a selector over fsys; nil means the built-in set.
func NewSelector(fsys fs.FS) *Selector {
	if fsys == nil {
		fsys = Builtin()
	}
	return &Selector{fsys: fsys}
}

// Select picks the templates for req and checks that every one of them can
// be read. It never touches the output filesystem.
func (s *Selector) Select(req naming.ComponentRequest) (Reference, error) {
	family := Classify(req.Extension)
	variant := req.Variant
	if variant == "" {
		variant = DefaultVariant
	}

	ref := Reference{
		Family:        family,
		Variant:       variant,
		ComponentPath: path.Join(string(family), variant+"."+family.TemplateExtension()),
		Index:         IndexTemplate,
	}
	if req.Style {
		ref.StylePath = StylePath
	}

	for _, p := range []string{ref.ComponentPath, ref.StylePath} {
		if p == "" {
			continue
		}
		if err := s.checkReadable(p); err != nil {
			notFound := cerrors.NewTemplateNotFoundError(p, err)
			if p == ref.ComponentPath {
				if variants, _ := s.Variants(family); len(variants) > 0 {
					notFound.WithHint(fmt.Sprintf("Available types for .%s components: %s", req.Extension, strings.Join(variants, ", ")))
				}
			}
			return Reference{}, notFound
		}
	}
	return ref, nil
}

func (s *Selector) checkReadable(p string) error {
	f, err := s.fsys.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", p)
	}
	return nil
}

// Load reads a template selected earlier.
func (s *Selector) Load(p string) (string, error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return "", cerrors.NewTemplateNotFoundError(p, err)
	}
	return string(data), nil
}

// Variants lists the variants available for family, sorted.
func (s *Selector) Variants(family Family) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, string(family))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s templates: %w", family, err)
	}

	suffix := "." + family.TemplateExtension()
	var variants []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		variants = append(variants, strings.TrimSuffix(entry.Name(), suffix))
	}
	sort.Strings(variants)
	return variants, nil
}

// AllVariants lists every variant available in at least one family.
func (s *Selector) AllVariants() ([]string, error) {
	seen := map[string]bool{}
	var all []string
	for _, family := range Families {
		variants, err := s.Variants(family)
		if err != nil {
			return nil, err
		}
		for _, v := range variants {
			if !seen[v] {
				seen[v] = true
				all = append(all, v)
			}
		}
	}
	sort.Strings(all)
	return all, nil
}

// HasStyle reports whether the tree provides a style module template.
func (s *Selector) HasStyle() bool {
	return s.checkReadable(StylePath) == nil
}
