package launch

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"jtr/internal/classpath"
)

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestBuilder_Build(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "jtr-launch-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	serverDir := filepath.Join(tmpDir, "server")
	launcherJar := filepath.Join(serverDir, "com.microsoft.java.test.runner-1.2.0.jar")
	if err := os.MkdirAll(serverDir, 0755); err != nil {
		t.Fatalf("failed to create server dir: %v", err)
	}
	if err := os.WriteFile(launcherJar, []byte("jar"), 0644); err != nil {
		t.Fatalf("failed to create launcher jar: %v", err)
	}

	entries := []string{"/p/target/classes", "/p/target/test-classes", "/p/lib/junit.jar"}
	suites := []string{"pkg.FooTest#testA", "pkg.FooTest#testB"}
	builder := NewBuilder(serverDir, classpath.NewAssembler(), discardLogger())

	t.Run("non-debug token sequence", func(t *testing.T) {
		spec, err := builder.Build("java", entries, suites, filepath.Join(tmpDir, "run-1"), 0, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spec == nil {
			t.Fatal("expected a launch spec")
		}
		joined := strings.Join(append([]string{launcherJar}, entries...), classpath.Separator())
		want := []string{
			"java", "-cp", joined,
			LauncherMainClass,
			"pkg.FooTest#testA", "pkg.FooTest#testB",
		}
		if !reflect.DeepEqual(spec.Tokens, want) {
			t.Errorf("expected tokens %v, got %v", want, spec.Tokens)
		}
	})

	t.Run("debug flags precede the main class", func(t *testing.T) {
		spec, err := builder.Build("java", entries, suites, filepath.Join(tmpDir, "run-2"), 5005, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var xdebug, jdwp, main int
		for i, tok := range spec.Tokens {
			switch {
			case tok == "-Xdebug":
				xdebug = i
			case strings.HasPrefix(tok, "-Xrunjdwp:"):
				jdwp = i
				if !strings.HasSuffix(tok, "address=5005") {
					t.Errorf("expected jdwp address 5005, got %q", tok)
				}
			case tok == LauncherMainClass:
				main = i
			}
		}
		if xdebug == 0 || jdwp == 0 || main == 0 {
			t.Fatalf("missing debug tokens in %v", spec.Tokens)
		}
		if !(xdebug < jdwp && jdwp < main) {
			t.Errorf("debug flags must precede the main class: %v", spec.Tokens)
		}
	})

	t.Run("missing launcher yields nil spec and nil error", func(t *testing.T) {
		b := NewBuilder(filepath.Join(tmpDir, "empty"), classpath.NewAssembler(), discardLogger())
		spec, err := b.Build("java", entries, suites, filepath.Join(tmpDir, "run-3"), 0, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spec != nil {
			t.Errorf("expected nil spec, got %v", spec.Tokens)
		}
	})

	t.Run("quotes space-bearing interpreter path", func(t *testing.T) {
		spec, err := builder.Build("/opt/java se/bin/java", entries, suites, filepath.Join(tmpDir, "run-4"), 0, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if spec.Tokens[0] != `"/opt/java se/bin/java"` {
			t.Errorf("expected quoted interpreter path, got %q", spec.Tokens[0])
		}
	})
}
