package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Wizard asks for each override key and writes a project override file.
type Wizard struct {
	reader *bufio.Reader
	out    io.Writer
	config Config
	types  []string
}

// NewWizard creates a wizard seeded with the current effective config.
// types lists the component variants offered for the "type" question.
func NewWizard(in io.Reader, out io.Writer, current Config, types []string) *Wizard {
	return &Wizard{
		reader: bufio.NewReader(in),
		out:    out,
		config: current,
		types:  types,
	}
}

// Run asks every question and returns the answers.
func (w *Wizard) Run() (Config, error) {
	fmt.Fprintln(w.out, "new-component configuration")
	fmt.Fprintln(w.out, "===========================")
	fmt.Fprintln(w.out, "Press enter to keep the value in brackets.")
	fmt.Fprintln(w.out)

	w.config.Dir = w.askString("Components directory", w.config.Dir)
	if len(w.types) > 0 {
		w.config.Type = w.askChoice("Component type", w.types, w.config.Type)
	}
	w.config.Extension = strings.TrimPrefix(w.askString("File extension", w.config.Extension), ".")
	w.config.PascalCase = w.askBool("Convert names to PascalCase", w.config.PascalCase)
	w.config.Style = w.askBool("Generate a style module", w.config.Style)
	if w.config.Style {
		w.config.StyleExtension = strings.TrimPrefix(w.askString("Style module extension", w.config.StyleExtension), ".")
	}

	if err := validate(w.config); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return w.config, nil
}

func (w *Wizard) askString(prompt, defaultValue string) string {
	if defaultValue != "" {
		fmt.Fprintf(w.out, "%s [%s]: ", prompt, defaultValue)
	} else {
		fmt.Fprintf(w.out, "%s: ", prompt)
	}

	input, _ := w.reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultValue
	}
	return input
}

func (w *Wizard) askBool(prompt string, defaultValue bool) bool {
	defaultStr := "n"
	if defaultValue {
		defaultStr = "y"
	}
	fmt.Fprintf(w.out, "%s [%s]: ", prompt, defaultStr)

	input, _ := w.reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	if input == "" {
		return defaultValue
	}
	return input == "y" || input == "yes" || input == "true"
}

func (w *Wizard) askChoice(prompt string, choices []string, defaultValue string) string {
	for {
		fmt.Fprintf(w.out, "%s [%s] (options: %s): ", prompt, defaultValue, strings.Join(choices, ", "))

		input, err := w.reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			return defaultValue
		}
		for _, choice := range choices {
			if strings.EqualFold(input, choice) {
				return choice
			}
		}
		if err != nil {
			return defaultValue
		}
		fmt.Fprintf(w.out, "Invalid choice. Please select from: %s\n", strings.Join(choices, ", "))
	}
}

// WriteFile stores cfg as the project override file in dir. It refuses to
// replace an existing file unless overwrite is set.
func WriteFile(fsys afero.Fs, dir string, cfg Config, overwrite bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if exists, err := afero.Exists(fsys, path); err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", path, err)
	} else if exists && !overwrite {
		return "", fmt.Errorf("configuration file %s already exists", path)
	}

	doc := map[string]interface{}{
		"dir":        cfg.Dir,
		"type":       cfg.Type,
		"extension":  cfg.Extension,
		"pascalCase": cfg.PascalCase,
		"style":      cfg.Style,
	}
	if cfg.Style {
		doc["styleExtension"] = cfg.StyleExtension
	}
	if cfg.TemplatesDir != "" {
		doc["templatesDir"] = cfg.TemplatesDir
	}
	if cfg.PrettierConfig != nil {
		doc["prettierConfig"] = cfg.PrettierConfig
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode configuration: %w", err)
	}
	data = append(data, '\n')

	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write configuration file: %w", err)
	}
	return path, nil
}
