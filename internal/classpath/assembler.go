// Package classpath builds the classpath argument for a run and works
// around OS command-line length limits with a manifest-only jar.
package classpath

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// MaxCommandLineLength is the longest classpath string passed directly on
// the command line. Beyond this the entries are packaged into a manifest
// jar instead (32767 is the historical Windows CreateProcess limit).
const MaxCommandLineLength = 32767

// ManifestJarName is the fixed file name of the generated manifest jar
// inside the run's storage directory.
const ManifestJarName = "path.jar"

// Separator returns the platform classpath separator.
func Separator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}

// Assembler resolves an ordered entry list into a single classpath argument.
type Assembler struct {
	maxLength int
}

// NewAssembler creates an Assembler with the default length limit.
func NewAssembler() *Assembler {
	return &Assembler{maxLength: MaxCommandLineLength}
}

// Assemble joins entries with separator and returns the joined string when
// it fits on a command line. Otherwise it writes a jar containing only a
// META-INF/MANIFEST.MF whose Class-Path header lists every entry in order,
// and returns the jar's path as the effective classpath argument.
func (a *Assembler) Assemble(entries []string, separator, storagePath string) (string, error) {
	joined := strings.Join(entries, separator)
	if len(joined) <= a.maxLength {
		return joined, nil
	}

	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("create run storage dir: %w", err)
	}

	jarPath := filepath.Join(storagePath, ManifestJarName)
	if err := writeManifestJar(jarPath, entries); err != nil {
		return "", err
	}
	return jarPath, nil
}

// writeManifestJar writes a zip with a single META-INF/MANIFEST.MF entry
// carrying the Class-Path attribute.
func writeManifestJar(jarPath string, entries []string) error {
	f, err := os.Create(jarPath)
	if err != nil {
		return fmt.Errorf("create manifest jar: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	mf, err := zw.Create("META-INF/MANIFEST.MF")
	if err != nil {
		zw.Close()
		return fmt.Errorf("create manifest entry: %w", err)
	}
	if _, err := mf.Write([]byte(manifestBody(entries))); err != nil {
		zw.Close()
		return fmt.Errorf("write manifest entry: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish manifest jar: %w", err)
	}
	return nil
}

// manifestBody renders the Class-Path header. Each entry becomes a file
// URL; directories get a trailing slash, archives stay as-is. Per the jar
// manifest convention a physical line break followed by a single space
// continues the header value.
func manifestBody(entries []string) string {
	eol := "\n"
	if runtime.GOOS == "windows" {
		eol = "\r\n"
	}
	urls := make([]string, len(entries))
	for i, entry := range entries {
		urls[i] = fileURL(entry)
	}
	return "Class-Path: " + strings.Join(urls, eol+" ") + eol
}

// fileURL converts a filesystem path to a file: URL, suffixing
// non-archive entries with a trailing slash.
func fileURL(entry string) string {
	p := filepath.ToSlash(entry)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := "file:" + p
	if !strings.HasSuffix(strings.ToLower(p), ".jar") && !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}
