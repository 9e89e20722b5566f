package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	cerrors "github.com/conneroisu/new-component/internal/errors"
)

// readOverrideFile returns the file content and whether the file exists.
// Whitespace-only files count as absent.
func readOverrideFile(fsys afero.Fs, path string) ([]byte, bool, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}

// prettierOverride extracts the top-level prettierConfig object of an
// override file with its keys as written. set is false when the file does
// not mention the key; an explicit null clears earlier values.
func prettierOverride(data []byte) (map[string]interface{}, bool, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, false, err
	}
	for key, raw := range doc {
		if !strings.EqualFold(key, "prettierConfig") {
			continue
		}
		if string(bytes.TrimSpace(raw)) == "null" {
			return nil, true, nil
		}
		var rules map[string]interface{}
		if err := json.Unmarshal(raw, &rules); err != nil {
			return nil, false, err
		}
		return rules, true, nil
	}
	return nil, false, nil
}

func readDotEnv(fsys afero.Fs, path string) (map[string]string, bool, error) {
	f, err := fsys.Open(path)
	if err != nil {
		// Missing or unreadable .env files never fail resolution.
		return nil, false, nil
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, false, cerrors.NewConfigParseError(path, "cannot parse .env file", err)
	}
	return values, true, nil
}

// envKeys maps the part after EnvPrefix to a config key.
var envKeys = map[string]string{
	"DIR":             "dir",
	"TYPE":            "type",
	"EXTENSION":       "extension",
	"PASCALCASE":      "pascalCase",
	"PASCAL_CASE":     "pascalCase",
	"STYLE":           "style",
	"STYLEEXTENSION":  "styleExtension",
	"STYLE_EXTENSION": "styleExtension",
	"TEMPLATESDIR":    "templatesDir",
	"TEMPLATES_DIR":   "templatesDir",
}

func envOverrides(values map[string]string) map[string]interface{} {
	out := make(map[string]interface{})
	for name, value := range values {
		if !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		if key, ok := envKeys[strings.TrimPrefix(name, EnvPrefix)]; ok {
			out[key] = value
		}
	}
	return out
}

func environMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		out[name] = value
	}
	return out
}

// flagKeys maps CLI flag names to config keys.
var flagKeys = map[string]string{
	"dir":             "dir",
	"type":            "type",
	"extension":       "extension",
	"style":           "style",
	"style-extension": "styleExtension",
	"templates-dir":   "templatesDir",
}

func flagOverrides(flags *pflag.FlagSet) map[string]interface{} {
	out := make(map[string]interface{})
	if flags == nil {
		return out
	}
	flags.Visit(func(f *pflag.Flag) {
		if f.Name == "no-pascal-case" {
			if f.Value.String() == "true" {
				out["pascalCase"] = false
			}
			return
		}
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}
