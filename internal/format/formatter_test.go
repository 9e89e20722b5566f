package format

import (
	"errors"
	"reflect"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/conneroisu/new-component/internal/errors"
)

func writeFile(t *testing.T, fsys afero.Fs, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, name, []byte(content), 0o644))
}

func TestFormatterRuleResolution(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		explicit map[string]interface{}
		workDir  string
		ext      string
		want     Rules
	}{
		{
			name:    "defaults when nothing is found",
			workDir: "/work/app",
			ext:     "jsx",
			want:    DefaultRules(),
		},
		{
			name:    "prettierrc in working directory",
			files:   map[string]string{"/work/app/.prettierrc": `{"tabWidth": 4}`},
			workDir: "/work/app",
			ext:     "jsx",
			want:    Rules{TabWidth: 4, EndOfLine: "lf"},
		},
		{
			name:    "yaml rules in a parent directory",
			files:   map[string]string{"/work/.prettierrc.yaml": "tabWidth: 4\nuseTabs: true\n"},
			workDir: "/work/app/src",
			ext:     "tsx",
			want:    Rules{TabWidth: 4, UseTabs: true, EndOfLine: "lf"},
		},
		{
			name: "package.json without prettier key is skipped",
			files: map[string]string{
				"/work/app/package.json":  `{"name": "app"}`,
				"/work/.prettierrc.json": `{"endOfLine": "crlf"}`,
			},
			workDir: "/work/app",
			ext:     "js",
			want:    Rules{TabWidth: 2, EndOfLine: "crlf"},
		},
		{
			name:    "package.json prettier key",
			files:   map[string]string{"/work/app/package.json": `{"prettier": {"tabWidth": 3}}`},
			workDir: "/work/app",
			ext:     "js",
			want:    Rules{TabWidth: 3, EndOfLine: "lf"},
		},
		{
			name:     "explicit rules win over discovered ones",
			files:    map[string]string{"/work/app/.prettierrc": `{"tabWidth": 4}`},
			explicit: map[string]interface{}{"tabWidth": 8},
			workDir:  "/work/app",
			ext:      "jsx",
			want:     Rules{TabWidth: 8, EndOfLine: "lf"},
		},
		{
			name: "override for style files",
			explicit: map[string]interface{}{
				"tabWidth": 2,
				"overrides": []interface{}{
					map[string]interface{}{
						"files":   "*.css",
						"options": map[string]interface{}{"tabWidth": 4},
					},
				},
			},
			workDir: "/work/app",
			ext:     "css",
			want:    Rules{TabWidth: 4, EndOfLine: "lf"},
		},
		{
			name: "override turns tabs off for style files",
			explicit: map[string]interface{}{
				"useTabs": true,
				"overrides": []interface{}{
					map[string]interface{}{
						"files":   "*.css",
						"options": map[string]interface{}{"useTabs": false},
					},
				},
			},
			workDir: "/work/app",
			ext:     "css",
			want:    Rules{TabWidth: 2, UseTabs: false, EndOfLine: "lf"},
		},
		{
			name: "override without useTabs keeps the base value",
			explicit: map[string]interface{}{
				"useTabs": true,
				"overrides": []interface{}{
					map[string]interface{}{
						"files":   "*.css",
						"options": map[string]interface{}{"tabWidth": 4},
					},
				},
			},
			workDir: "/work/app",
			ext:     "css",
			want:    Rules{TabWidth: 4, UseTabs: true, EndOfLine: "lf"},
		},
		{
			name:     "empty explicit rules skip discovery",
			files:    map[string]string{"/work/app/.prettierrc": `{"tabWidth": 4}`},
			explicit: map[string]interface{}{},
			workDir:  "/work/app",
			ext:      "jsx",
			want:     DefaultRules(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			for name, content := range tt.files {
				writeFile(t, fsys, name, content)
			}

			f := New(Options{Explicit: tt.explicit, WorkDir: tt.workDir, Fs: fsys})
			got, err := f.Rules(tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatterOverrideDoesNotLeak(t *testing.T) {
	f := New(Options{
		Fs: afero.NewMemMapFs(),
		Explicit: map[string]interface{}{
			"overrides": []interface{}{
				map[string]interface{}{
					"files":   []interface{}{"*.css", "*.scss"},
					"options": map[string]interface{}{"useTabs": true},
				},
			},
		},
	})

	css, err := f.Rules("css")
	require.NoError(t, err)
	assert.True(t, css.UseTabs)

	js, err := f.Rules("js")
	require.NoError(t, err)
	assert.False(t, js.UseTabs)
}

func TestFormatterRuleErrors(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		explicit map[string]interface{}
	}{
		{
			name:  "malformed rule file",
			files: map[string]string{"/work/app/.prettierrc.json": `{"tabWidth": `},
		},
		{
			name:  "invalid value in rule file",
			files: map[string]string{"/work/app/.prettierrc": `{"endOfLine": "sometimes"}`},
		},
		{
			name:     "invalid explicit rules",
			explicit: map[string]interface{}{"tabWidth": 0},
		},
		{
			name:     "overrides is not a list",
			explicit: map[string]interface{}{"overrides": "*.css"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			for name, content := range tt.files {
				writeFile(t, fsys, name, content)
			}

			f := New(Options{Explicit: tt.explicit, WorkDir: "/work/app", Fs: fsys})
			_, err := f.Build("jsx")
			require.Error(t, err)
			assert.True(t, errors.Is(err, cerrors.ErrConfigParse))
		})
	}
}

func TestFormatterBuildIsMemoized(t *testing.T) {
	fsys := afero.NewMemMapFs()
	f := New(Options{WorkDir: "/work/app", Fs: fsys})

	first, err := f.Build("jsx")
	require.NoError(t, err)
	second, err := f.Build("jsx")
	require.NoError(t, err)
	assert.Equal(t, reflect.ValueOf(first).Pointer(), reflect.ValueOf(second).Pointer())

	// Rules are resolved once per formatter.
	writeFile(t, fsys, "/work/app/.prettierrc", `{"tabWidth": 4}`)
	rules, err := f.Rules("css")
	require.NoError(t, err)
	assert.Equal(t, 2, rules.TabWidth)
}

func TestFormatterFunc(t *testing.T) {
	f := New(Options{
		Fs:       afero.NewMemMapFs(),
		Explicit: map[string]interface{}{"useTabs": true},
	})

	fn, err := f.Build("jsx")
	require.NoError(t, err)

	got, err := fn("function a() {\n  return 1;\n}")
	require.NoError(t, err)
	assert.Equal(t, "function a() {\n\treturn 1;\n}\n", got)

	_, err = fn("function a() {\n")
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}

type recordingEngine struct {
	kinds []Kind
}

func (e *recordingEngine) Format(text string, kind Kind, _ Rules) (string, error) {
	e.kinds = append(e.kinds, kind)
	return text, nil
}

func TestFormatterUsesEngine(t *testing.T) {
	engine := &recordingEngine{}
	f := New(Options{Fs: afero.NewMemMapFs(), Engine: engine})

	script, err := f.Build("tsx")
	require.NoError(t, err)
	style, err := f.Build("css")
	require.NoError(t, err)

	_, _ = script("x")
	_, _ = style("y")
	assert.Equal(t, []Kind{KindScript, KindStyle}, engine.kinds)
}

func TestRulesFromMapCaseInsensitive(t *testing.T) {
	rules, err := RulesFromMap(map[string]interface{}{"TABWIDTH": 4.0, "UseTabs": "true", "endofline": "CRLF"})
	require.NoError(t, err)
	assert.Equal(t, Rules{TabWidth: 4, UseTabs: true, EndOfLine: "crlf"}, rules)

	_, err = RulesFromMap(map[string]interface{}{"tabWidth": 2.5})
	assert.Error(t, err)
}
