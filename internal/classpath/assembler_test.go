package classpath

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssembler_Assemble(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jtr-classpath-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	entries := []string{
		"/project/target/classes",
		"/project/target/test-classes",
		"/project/lib/junit-4.13.2.jar",
	}

	t.Run("returns joined string under the limit", func(t *testing.T) {
		a := NewAssembler()
		got, err := a.Assemble(entries, ":", tmpDir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := strings.Join(entries, ":")
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("packages a manifest jar over the limit", func(t *testing.T) {
		a := &Assembler{maxLength: 10}
		storage := filepath.Join(tmpDir, "run-1")
		got, err := a.Assemble(entries, ":", storage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if filepath.Base(got) != ManifestJarName {
			t.Fatalf("expected path ending in %s, got %q", ManifestJarName, got)
		}
		if _, err := os.Stat(got); err != nil {
			t.Fatalf("manifest jar does not exist: %v", err)
		}

		body := readManifest(t, got)
		if !strings.HasPrefix(body, "Class-Path: ") {
			t.Errorf("manifest missing Class-Path header: %q", body)
		}
		// All entries present, in original order.
		last := -1
		for _, entry := range entries {
			idx := strings.Index(body, filepath.ToSlash(entry))
			if idx < 0 {
				t.Errorf("entry %q missing from manifest", entry)
				continue
			}
			if idx < last {
				t.Errorf("entry %q out of order", entry)
			}
			last = idx
		}
	})

	t.Run("suffixes directories and keeps archives as-is", func(t *testing.T) {
		a := &Assembler{maxLength: 1}
		storage := filepath.Join(tmpDir, "run-2")
		got, err := a.Assemble(entries, ":", storage)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		body := readManifest(t, got)
		if !strings.Contains(body, "file:/project/target/classes/") {
			t.Errorf("directory entry not suffixed with /: %q", body)
		}
		if !strings.Contains(body, "file:/project/lib/junit-4.13.2.jar") {
			t.Errorf("jar entry missing: %q", body)
		}
		if strings.Contains(body, "junit-4.13.2.jar/") {
			t.Errorf("jar entry must not be suffixed with /: %q", body)
		}
	})

	t.Run("tolerates pre-existing storage dir", func(t *testing.T) {
		a := &Assembler{maxLength: 1}
		storage := filepath.Join(tmpDir, "run-3")
		if err := os.MkdirAll(storage, 0755); err != nil {
			t.Fatalf("failed to pre-create dir: %v", err)
		}
		if _, err := a.Assemble(entries, ":", storage); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func readManifest(t *testing.T, jarPath string) string {
	t.Helper()
	zr, err := zip.OpenReader(jarPath)
	if err != nil {
		t.Fatalf("failed to open jar: %v", err)
	}
	defer zr.Close()

	if len(zr.File) != 1 || zr.File[0].Name != "META-INF/MANIFEST.MF" {
		t.Fatalf("expected single META-INF/MANIFEST.MF entry, got %d entries", len(zr.File))
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("failed to open manifest: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("failed to read manifest: %v", err)
	}
	return string(data)
}
