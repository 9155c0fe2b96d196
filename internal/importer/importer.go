// Package importer reads spreadsheet exports into sheet.Table values.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/fundreport/internal/sheet"
)

// Parser converts one spreadsheet file into a Table. Only the first sheet
// of a workbook is read.
type Parser interface {
	Parse(r io.Reader) (*sheet.Table, error)
	Format() string
}

// Registry holds parsers keyed by format, which doubles as the file
// extension without the dot.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a spreadsheet file found by Scan.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats returns the registered formats, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ForFile returns the parser matching the extension of name.
func (r *Registry) ForFile(name string) (Parser, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return nil, fmt.Errorf("%s: no file extension", name)
	}
	p := r.Get(ext)
	if p == nil {
		return nil, fmt.Errorf("%s: unsupported format %q (supported: %s)", name, ext, strings.Join(r.Formats(), ", "))
	}
	return p, nil
}

// Read parses r with the parser for name and names the table after it.
func (r *Registry) Read(name string, rd io.Reader) (*sheet.Table, error) {
	p, err := r.ForFile(name)
	if err != nil {
		return nil, err
	}
	t, err := p.Parse(rd)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	t.Name = filepath.Base(name)
	return t, nil
}

// ReadFile opens path and parses it.
func (r *Registry) ReadFile(path string) (*sheet.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return r.Read(path, f)
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&XLSXParser{})
	r.Register(&XLSParser{})
	r.Register(&CSVParser{})
	return r
}

// Scan returns the files in dir that some parser in the registry can read.
func (r *Registry) Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") {
			continue
		}
		if _, err := r.ForFile(e.Name()); err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}
