package naming

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/new-component/internal/config"
	cerrors "github.com/conneroisu/new-component/internal/errors"
)

func TestPascalCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "foo-bar", want: "FooBar"},
		{in: "my_button", want: "MyButton"},
		{in: "hello world", want: "HelloWorld"},
		{in: "fooBar", want: "FooBar"},
		{in: "FooBar", want: "FooBar"},
		{in: "--nav--item--", want: "NavItem"},
		{in: "user.card", want: "UserCard"},
		{in: "ümlaut-name", want: "ÜmlautName"},
		{in: "---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, PascalCase(tt.in))
		})
	}
}

func TestSplitExtension(t *testing.T) {
	tests := []struct {
		in       string
		wantBase string
		wantExt  string
		wantOK   bool
	}{
		{in: "widget.tsx", wantBase: "widget", wantExt: "tsx", wantOK: true},
		{in: "Button.JSX", wantBase: "Button", wantExt: "JSX", wantOK: true},
		{in: "a.b.js", wantBase: "a.b", wantExt: "js", wantOK: true},
		{in: "Button", wantBase: "Button", wantOK: false},
		{in: "Button.", wantBase: "Button.", wantOK: false},
		{in: "Button.tsx2", wantBase: "Button.tsx2", wantOK: false},
		{in: "Button.toolong", wantBase: "Button.toolong", wantOK: false},
		{in: ".tsx", wantBase: "", wantExt: "tsx", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			base, ext, ok := SplitExtension(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantBase, base)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestNormalize(t *testing.T) {
	noPascal := config.Defaults()
	noPascal.PascalCase = false

	styled := config.Defaults()
	styled.Style = true
	styled.StyleExtension = "scss"
	styled.Type = "class"

	tests := []struct {
		name      string
		raw       string
		cfg       config.Config
		wantName  string
		wantClass string
		wantExt   string
	}{
		{name: "default casing and extension", raw: "foo-bar", cfg: config.Defaults(), wantName: "FooBar", wantClass: "FooBar", wantExt: "jsx"},
		{name: "inline extension wins", raw: "widget.tsx", cfg: config.Defaults(), wantName: "Widget", wantClass: "Widget", wantExt: "tsx"},
		{name: "casing disabled keeps raw name", raw: "foo-bar", cfg: noPascal, wantName: "foo-bar", wantClass: "FooBar", wantExt: "jsx"},
		{name: "surrounding whitespace", raw: "  card  ", cfg: config.Defaults(), wantName: "Card", wantClass: "Card", wantExt: "jsx"},
		{name: "dotted name collapses under casing", raw: "user.card.js", cfg: config.Defaults(), wantName: "UserCard", wantClass: "UserCard", wantExt: "js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := Normalize(tt.raw, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, req.Name)
			assert.Equal(t, tt.wantClass, req.ClassName)
			assert.Equal(t, tt.wantExt, req.Extension)
			assert.Equal(t, tt.cfg.Type, req.Variant)
		})
	}

	t.Run("carries style settings", func(t *testing.T) {
		req, err := Normalize("Modal", styled)
		require.NoError(t, err)
		assert.True(t, req.Style)
		assert.Equal(t, "scss", req.StyleExtension)
		assert.Equal(t, "class", req.Variant)
	})
}

func TestNormalizeInvalid(t *testing.T) {
	noPascal := config.Defaults()
	noPascal.PascalCase = false

	tests := []struct {
		name string
		raw  string
		cfg  config.Config
	}{
		{name: "only an extension", raw: ".tsx", cfg: config.Defaults()},
		{name: "empty", raw: "   ", cfg: config.Defaults()},
		{name: "path separator", raw: "ui/Button", cfg: config.Defaults()},
		{name: "windows separator", raw: `ui\Button`, cfg: config.Defaults()},
		{name: "no letters", raw: "---", cfg: config.Defaults()},
		{name: "dot without casing", raw: "user.card.js", cfg: noPascal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.raw, tt.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, cerrors.ErrInvalidName))
		})
	}
}
