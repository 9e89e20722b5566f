// Package naming turns the raw component-name argument into a normalized
// ComponentRequest: it splits off an inline file extension and, when
// enabled, rewrites the name into PascalCase.
package naming

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/new-component/internal/config"
	cerrors "github.com/conneroisu/new-component/internal/errors"
)

// ComponentRequest is the normalized unit of work for one invocation.
type ComponentRequest struct {
	// Name is the directory and file base name.
	Name string
	// ClassName is Name in canonical casing, always a usable identifier.
	ClassName string
	// Extension is the component source file extension, without the dot.
	Extension string
	// Variant selects a template within a family. Empty means the
	// selector's default.
	Variant string
	// Style requests a style module next to the component.
	Style          bool
	StyleExtension string
}

var (
	inlineExtension = regexp.MustCompile(`^(.*)\.([A-Za-z]{1,5})$`)
	wordSeparators  = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// SplitExtension separates a trailing ".ext" suffix from raw. ok is false
// when raw has no extension-like suffix.
func SplitExtension(raw string) (base, ext string, ok bool) {
	m := inlineExtension.FindStringSubmatch(raw)
	if m == nil {
		return raw, "", false
	}
	return m[1], m[2], true
}

// PascalCase capitalizes every word of s and drops the separators between
// them. Letters after the first of each word keep their case, so
// "fooBar-baz" becomes "FooBarBaz". The transform does not depend on locale.
func PascalCase(s string) string {
	caser := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	for _, word := range wordSeparators.Split(s, -1) {
		if word == "" {
			continue
		}
		b.WriteString(caser.String(word))
	}
	return b.String()
}

// Normalize builds the request for raw using cfg for everything raw does
// not specify itself.
func Normalize(raw string, cfg config.Config) (ComponentRequest, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.ContainsAny(trimmed, `/\`) {
		return ComponentRequest{}, cerrors.NewInvalidNameError(raw, "name must not contain path separators")
	}

	name, ext := trimmed, cfg.Extension
	if base, inline, ok := SplitExtension(trimmed); ok {
		name, ext = base, inline
	}
	if strings.TrimSpace(name) == "" {
		return ComponentRequest{}, cerrors.NewInvalidNameError(raw, "name is empty")
	}

	className := PascalCase(name)
	if className == "" {
		return ComponentRequest{}, cerrors.NewInvalidNameError(raw, "name has no letters or digits")
	}

	if cfg.PascalCase {
		name = className
	} else if strings.Contains(name, ".") {
		return ComponentRequest{}, cerrors.NewInvalidNameError(raw, "name must not contain '.' apart from one file extension")
	}

	return ComponentRequest{
		Name:           name,
		ClassName:      className,
		Extension:      ext,
		Variant:        cfg.Type,
		Style:          cfg.Style,
		StyleExtension: cfg.StyleExtension,
	}, nil
}
