package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"jtr/internal/config"
	"jtr/internal/domain"
)

func TestIndex_Suites(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jtr-index-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	doc := filepath.Join(tmpDir, "FooTest.java")
	source := "package pkg;\npublic class FooTest {\n@Test\npublic void testA() {}\n}\n"
	if err := os.WriteFile(doc, []byte(source), 0644); err != nil {
		t.Fatalf("failed to write source: %v", err)
	}

	cfg := config.New()
	cfg.ProjectPath = tmpDir
	ix := New(cfg)

	t.Run("class suite first, then methods", func(t *testing.T) {
		suites, err := ix.Suites(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(suites) != 2 {
			t.Fatalf("expected 2 suites, got %v", suites)
		}
		if suites[0].Name != "pkg.FooTest" || suites[0].Granularity != domain.GranularityClass {
			t.Errorf("unexpected class suite: %+v", suites[0])
		}
		if suites[1].Name != "pkg.FooTest#testA" || suites[1].Granularity != domain.GranularityMethod {
			t.Errorf("unexpected method suite: %+v", suites[1])
		}
	})

	t.Run("re-parses after document change", func(t *testing.T) {
		updated := "package pkg;\npublic class FooTest {\n@Test\npublic void testA() {}\n@Test\npublic void testB() {}\n}\n"
		if err := os.WriteFile(doc, []byte(updated), 0644); err != nil {
			t.Fatalf("failed to update source: %v", err)
		}
		// Ensure the mtime moves on filesystems with coarse resolution.
		future := time.Now().Add(2 * time.Second)
		if err := os.Chtimes(doc, future, future); err != nil {
			t.Fatalf("failed to bump mtime: %v", err)
		}

		suites, err := ix.Suites(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(suites) != 3 {
			t.Errorf("expected re-parse to see 3 suites, got %v", suites)
		}
	})

	t.Run("mark dirty drops the cache", func(t *testing.T) {
		ix.MarkDirty(doc)
		suites, err := ix.Suites(doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(suites) != 3 {
			t.Errorf("expected 3 suites after re-parse, got %v", suites)
		}
	})
}

func TestIndex_Classpath(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jtr-cp-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	for _, dir := range []string{"target/classes", "lib"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, dir), 0755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
	}
	jar := filepath.Join(tmpDir, "lib", "junit-4.13.2.jar")
	if err := os.WriteFile(jar, []byte("jar"), 0644); err != nil {
		t.Fatalf("failed to create jar: %v", err)
	}

	cfg := config.New()
	cfg.ProjectPath = tmpDir
	ix := New(cfg)

	entries := ix.Classpath()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %v", entries)
	}
	if filepath.Base(entries[0]) != "classes" {
		t.Errorf("expected class dir first, got %v", entries)
	}
	if entries[1] != jar {
		t.Errorf("expected lib jar, got %v", entries)
	}
}
