// Package index maps source documents to the test suites they declare
// and resolves the classpath entries for a project.
package index

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"jtr/internal/config"
	"jtr/internal/domain"
)

// Index caches per-document suite lists. An entry is invalidated when
// the document is marked dirty or its modification time changes.
type Index struct {
	cfg     *config.Config
	scanner *Scanner
	parser  *Parser

	mu   sync.Mutex
	docs map[string]*documentEntry
}

type documentEntry struct {
	modTime time.Time
	suites  []domain.TestSuite
}

// New creates an Index over the configured project.
func New(cfg *config.Config) *Index {
	return &Index{
		cfg:     cfg,
		scanner: NewScanner(cfg.PathsToIgnore),
		parser:  NewParser(),
		docs:    make(map[string]*documentEntry),
	}
}

// Suites returns the test suites declared in one source document: the
// class-granularity suite first, then one method-granularity suite per
// test method.
func (ix *Index) Suites(document string) ([]domain.TestSuite, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	info, err := os.Stat(document)
	if err != nil {
		return nil, err
	}
	if entry, ok := ix.docs[document]; ok && entry.modTime.Equal(info.ModTime()) {
		return entry.suites, nil
	}

	className, methods, err := ix.parser.FindSuites(document)
	if err != nil {
		return nil, err
	}
	var suites []domain.TestSuite
	if className != "" {
		suites = append(suites, domain.NewClassSuite(className, document))
		for _, m := range methods {
			suites = append(suites, domain.NewMethodSuite(className, m, document))
		}
	}

	ix.docs[document] = &documentEntry{modTime: info.ModTime(), suites: suites}
	return suites, nil
}

// MarkDirty drops the cached entry for a document (e.g. after its text
// changed).
func (ix *Index) MarkDirty(document string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.docs, document)
}

// AllSuites scans the configured test path and returns the suites of
// every discovered test file in scan order.
func (ix *Index) AllSuites() ([]domain.TestSuite, error) {
	files, err := ix.scanner.Scan(ix.cfg.GetTestPath())
	if err != nil {
		return nil, err
	}
	var suites []domain.TestSuite
	for _, file := range files {
		fileSuites, err := ix.Suites(file)
		if err != nil {
			return nil, err
		}
		suites = append(suites, fileSuites...)
	}
	return suites, nil
}

// TestFiles scans the configured test path, optionally filtered by name.
func (ix *Index) TestFiles(nameFilter string) ([]string, error) {
	files, err := ix.scanner.Scan(ix.cfg.GetTestPath())
	if err != nil {
		return nil, err
	}
	return NewFilter().FilterByName(files, nameFilter), nil
}

// Classpath resolves the project's classpath entries: the configured
// class output directories that exist, then every jar under lib/, in
// stable order.
func (ix *Index) Classpath() []string {
	var entries []string
	for _, dir := range ix.cfg.ClasspathDirs {
		p := filepath.Join(ix.cfg.ProjectPath, dir)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			entries = append(entries, p)
		}
	}
	jars, _ := filepath.Glob(filepath.Join(ix.cfg.ProjectPath, "lib", "*.jar"))
	entries = append(entries, jars...)
	return entries
}
