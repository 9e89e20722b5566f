// Package internal contains the implementation packages for new-component.
//
// # Package Organization
//
// Packages are organized by the stage of generation they serve:
//
//   - config: layered configuration (defaults, override files, .env, environment, flags)
//   - naming: component name parsing and PascalCase conversion
//   - templates: template families, variants and the embedded template tree
//   - format: formatting rule discovery and the layout engine
//   - scaffolding: the ordered generation pipeline
//   - ui: terminal reporter and confirmation prompt
//   - errors: the user-facing error taxonomy
//   - logging: structured logging on log/slog
//   - version: build information
//
// # Data Flow
//
// cmd resolves a config.Config, naming turns the argument into a
// naming.ComponentRequest, and scaffolding.Generator selects templates,
// renders every file in memory and only then writes to the filesystem.
// Every filesystem access goes through an afero.Fs so tests run in memory.
package internal
