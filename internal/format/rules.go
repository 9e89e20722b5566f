package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	cerrors "github.com/conneroisu/new-component/internal/errors"
)

// Rules is the subset of prettier options the layout engine honours.
type Rules struct {
	TabWidth  int
	UseTabs   bool
	EndOfLine string
	Overrides []Override
}

// Override applies Options to files whose base name matches one of Files.
type Override struct {
	Files   []string
	Options RuleOptions
}

// RuleOptions holds the rule values a document sets explicitly. Unset
// fields are zero or nil and leave the underlying rules alone.
type RuleOptions struct {
	TabWidth  int
	UseTabs   *bool
	EndOfLine string
}

// DefaultRules is the built-in fallback rule set.
func DefaultRules() Rules {
	return Rules{TabWidth: 2, EndOfLine: "lf"}
}

// ForFile returns the rules with every matching override applied, in order.
func (r Rules) ForFile(name string) Rules {
	out := r
	out.Overrides = nil
	base := path.Base(filepath.ToSlash(name))
	for _, o := range r.Overrides {
		if !matchAny(o.Files, base) {
			continue
		}
		out = merge(out, o.Options)
	}
	return out
}

func matchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		p = strings.TrimPrefix(p, "**/")
		if ok, err := path.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// merge overlays every option set in o on r.
func merge(r Rules, o RuleOptions) Rules {
	if o.TabWidth > 0 {
		r.TabWidth = o.TabWidth
	}
	if o.UseTabs != nil {
		r.UseTabs = *o.UseTabs
	}
	if o.EndOfLine != "" {
		r.EndOfLine = o.EndOfLine
	}
	return r
}

// RulesFromMap decodes a prettier option document. Keys are matched
// case-insensitively and unknown keys are ignored.
func RulesFromMap(m map[string]interface{}) (Rules, error) {
	rules := DefaultRules()
	overlay, err := decodeOptions(m)
	if err != nil {
		return Rules{}, err
	}
	rules = merge(rules, overlay)

	if raw, ok := lookup(m, "overrides"); ok {
		list, ok := raw.([]interface{})
		if !ok {
			return Rules{}, fmt.Errorf("overrides must be a list")
		}
		for i, item := range list {
			entry, ok := toStringMap(item)
			if !ok {
				return Rules{}, fmt.Errorf("overrides[%d] must be an object", i)
			}
			o, err := decodeOverride(entry)
			if err != nil {
				return Rules{}, fmt.Errorf("overrides[%d]: %w", i, err)
			}
			rules.Overrides = append(rules.Overrides, o)
		}
	}
	return rules, nil
}

func decodeOverride(m map[string]interface{}) (Override, error) {
	var o Override
	switch files := valueOrNil(m, "files").(type) {
	case string:
		o.Files = []string{files}
	case []interface{}:
		for _, f := range files {
			s, ok := f.(string)
			if !ok {
				return Override{}, fmt.Errorf("files must be strings")
			}
			o.Files = append(o.Files, s)
		}
	default:
		return Override{}, fmt.Errorf("files must be a string or a list of strings")
	}

	opts, ok := toStringMap(valueOrNil(m, "options"))
	if !ok {
		return Override{}, fmt.Errorf("options must be an object")
	}
	decoded, err := decodeOptions(opts)
	if err != nil {
		return Override{}, err
	}
	o.Options = decoded
	return o, nil
}

func decodeOptions(m map[string]interface{}) (RuleOptions, error) {
	var r RuleOptions
	if v, ok := lookup(m, "tabWidth"); ok {
		n, err := toInt(v)
		if err != nil || n < 1 || n > 16 {
			return RuleOptions{}, fmt.Errorf("tabWidth must be an integer between 1 and 16")
		}
		r.TabWidth = n
	}
	if v, ok := lookup(m, "useTabs"); ok {
		b, err := toBool(v)
		if err != nil {
			return RuleOptions{}, fmt.Errorf("useTabs: %w", err)
		}
		r.UseTabs = &b
	}
	if v, ok := lookup(m, "endOfLine"); ok {
		s, _ := v.(string)
		switch strings.ToLower(s) {
		case "lf", "crlf", "cr", "auto":
			r.EndOfLine = strings.ToLower(s)
		default:
			return RuleOptions{}, fmt.Errorf("endOfLine must be one of lf, crlf, cr, auto")
		}
	}
	return r, nil
}

func lookup(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

func valueOrNil(m map[string]interface{}, key string) interface{} {
	v, _ := lookup(m, key)
	return v
}

func toStringMap(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("not an integer: %v", n)
		}
		return int(n), nil
	case string:
		return strconv.Atoi(n)
	default:
		return 0, fmt.Errorf("not an integer: %v", v)
	}
}

func toBool(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	default:
		return false, fmt.Errorf("not a boolean: %v", v)
	}
}

// ruleFiles are checked in every directory, in this order.
var ruleFiles = []string{
	".prettierrc",
	".prettierrc.json",
	".prettierrc.yaml",
	".prettierrc.yml",
	"package.json",
}

// discoverRules searches dir and its parents for a rule file. found is
// false when the search reached the root without a match.
func discoverRules(fsys afero.Fs, dir string) (rules Rules, source string, found bool, err error) {
	if dir == "" {
		return Rules{}, "", false, nil
	}
	dir = filepath.Clean(dir)
	for {
		for _, name := range ruleFiles {
			p := filepath.Join(dir, name)
			data, readErr := afero.ReadFile(fsys, p)
			if readErr != nil {
				continue
			}
			doc, ok, parseErr := parseRuleFile(name, data)
			if parseErr != nil {
				return Rules{}, p, false, cerrors.NewConfigParseError(p, "cannot parse formatting rules", parseErr)
			}
			if !ok {
				continue
			}
			r, decodeErr := RulesFromMap(doc)
			if decodeErr != nil {
				return Rules{}, p, false, cerrors.NewConfigParseError(p, "invalid formatting rules", decodeErr)
			}
			return r, p, true, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Rules{}, "", false, nil
		}
		dir = parent
	}
}

// parseRuleFile decodes a rule file. ok is false for a package.json
// without a "prettier" object.
func parseRuleFile(name string, data []byte) (map[string]interface{}, bool, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]interface{}{}, true, nil
	}

	switch name {
	case "package.json":
		var pkg map[string]interface{}
		if err := json.Unmarshal(data, &pkg); err != nil {
			return nil, false, err
		}
		doc, ok := toStringMap(valueOrNil(pkg, "prettier"))
		return doc, ok, nil
	case ".prettierrc.json":
		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, false, err
		}
		return doc, true, nil
	default:
		// .prettierrc may hold JSON or YAML; YAML decoding covers both.
		var doc map[string]interface{}
		if err := json.Unmarshal(data, &doc); err == nil {
			return doc, true, nil
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, false, err
		}
		return doc, true, nil
	}
}
