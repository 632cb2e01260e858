package index

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const sampleSource = `package com.example.app;

import org.junit.Test;
import org.junit.Ignore;

public class UserServiceTest {

    @Test
    public void testCreateUser() {
    }

    @Test(timeout = 1000)
    public void testDeleteUser() {
    }

    @Test
    @Ignore("flaky")
    public void findsByName() {
    }

    public void helperMethod() {
    }
}
`

func TestParser_FindSuites(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jtr-parse-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	writeSource := func(name, content string) string {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
		return path
	}

	parser := NewParser()

	t.Run("extracts class and test methods", func(t *testing.T) {
		path := writeSource("UserServiceTest.java", sampleSource)
		className, methods, err := parser.FindSuites(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if className != "com.example.app.UserServiceTest" {
			t.Errorf("expected fully-qualified class name, got %q", className)
		}
		want := []string{"findsByName", "testCreateUser", "testDeleteUser"}
		if !reflect.DeepEqual(methods, want) {
			t.Errorf("expected methods %v, got %v", want, methods)
		}
	})

	t.Run("default package class", func(t *testing.T) {
		path := writeSource("NoPkgTest.java", "public class NoPkgTest {\n@Test\npublic void testX() {}\n}\n")
		className, methods, err := parser.FindSuites(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if className != "NoPkgTest" {
			t.Errorf("expected bare class name, got %q", className)
		}
		if len(methods) != 1 {
			t.Errorf("expected 1 method, got %v", methods)
		}
	})

	t.Run("no class yields nothing", func(t *testing.T) {
		path := writeSource("Empty.java", "// nothing here\n")
		className, methods, err := parser.FindSuites(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if className != "" || methods != nil {
			t.Errorf("expected empty result, got %q %v", className, methods)
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		if _, _, err := parser.FindSuites(filepath.Join(tmpDir, "absent.java")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
