// Package testutils holds fixtures shared by the package tests.
package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Fixed roots of an in-memory project.
const (
	HomeDir = "/home/dev"
	WorkDir = "/work/app"
)

// Project is a project tree plus a home directory on one filesystem.
type Project struct {
	Fs   afero.Fs
	Home string
	Work string
}

// MemProject creates an empty in-memory project rooted at WorkDir.
func MemProject(t *testing.T) *Project {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(HomeDir, 0o755))
	require.NoError(t, fsys.MkdirAll(WorkDir, 0o755))
	return &Project{Fs: fsys, Home: HomeDir, Work: WorkDir}
}

// DiskProject creates a project in a temporary directory on the OS
// filesystem. The home directory is a sibling of the project.
func DiskProject(t *testing.T) *Project {
	t.Helper()
	root := t.TempDir()
	p := &Project{
		Fs:   afero.NewOsFs(),
		Home: filepath.Join(root, "home"),
		Work: filepath.Join(root, "app"),
	}
	require.NoError(t, os.MkdirAll(p.Home, 0o755))
	require.NoError(t, os.MkdirAll(p.Work, 0o755))
	return p
}

// Path resolves rel against the project root.
func (p *Project) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(p.Work, rel)
}

// Mkdir creates rel and its parents.
func (p *Project) Mkdir(t *testing.T, rel string) {
	t.Helper()
	require.NoError(t, p.Fs.MkdirAll(p.Path(rel), 0o755))
}

// WriteFile writes content to rel, creating parents.
func (p *Project) WriteFile(t *testing.T, rel, content string) {
	t.Helper()
	path := p.Path(rel)
	require.NoError(t, p.Fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(p.Fs, path, []byte(content), 0o644))
}

// WriteJSON encodes v into rel.
func (p *Project) WriteJSON(t *testing.T, rel string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	p.WriteFile(t, rel, string(data))
}

// ReadFile returns the content of rel.
func (p *Project) ReadFile(t *testing.T, rel string) string {
	t.Helper()
	data, err := afero.ReadFile(p.Fs, p.Path(rel))
	require.NoError(t, err)
	return string(data)
}

// Exists reports whether rel exists.
func (p *Project) Exists(t *testing.T, rel string) bool {
	t.Helper()
	ok, err := afero.Exists(p.Fs, p.Path(rel))
	require.NoError(t, err)
	return ok
}

// Files lists every regular file under rel, relative to it.
func (p *Project) Files(t *testing.T, rel string) []string {
	t.Helper()
	root := p.Path(rel)
	var files []string
	err := afero.Walk(p.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			r, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(r))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}
