// Package launch composes the full command line for one test run.
package launch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"jtr/internal/classpath"
	"jtr/internal/domain"
)

const (
	// LauncherJarPattern matches the runner entry-point archive injected
	// onto the classpath to drive JUnit inside the spawned process.
	LauncherJarPattern = "com.microsoft.java.test.runner-*.jar"

	// LauncherMainClass is the main class of the launcher archive.
	LauncherMainClass = "com.microsoft.java.test.runner.JUnitLauncher"
)

// Builder resolves launch parameters: launcher archive, classpath,
// optional debug agent flags, main class and suite identifiers.
type Builder struct {
	serverDir string
	assembler *classpath.Assembler
	log       logrus.FieldLogger
}

// NewBuilder creates a Builder searching serverDir for the launcher archive.
func NewBuilder(serverDir string, assembler *classpath.Assembler, log logrus.FieldLogger) *Builder {
	return &Builder{serverDir: serverDir, assembler: assembler, log: log}
}

// Build resolves the token sequence for one invocation. A nil spec with a
// nil error means the launcher archive was not found; callers must not
// start a process in that case.
func (b *Builder) Build(javaBin string, entries []string, suiteIDs []string, storagePath string, debugPort int, isDebug bool) (*domain.LaunchSpec, error) {
	launcherJar := b.findLauncherJar()
	if launcherJar == "" {
		b.log.WithField("dir", b.serverDir).Error("launcher archive not found")
		return nil, nil
	}

	// Launcher first; relative order of the rest is preserved.
	combined := append([]string{launcherJar}, entries...)
	cp, err := b.assembler.Assemble(combined, classpath.Separator(), storagePath)
	if err != nil {
		return nil, err
	}

	tokens := []string{quote(javaBin), "-cp", quote(cp)}
	if isDebug {
		tokens = append(tokens,
			"-Xdebug",
			fmt.Sprintf("-Xrunjdwp:transport=dt_socket,server=y,suspend=y,address=%d", debugPort),
		)
	}
	tokens = append(tokens, LauncherMainClass)
	tokens = append(tokens, suiteIDs...)

	return &domain.LaunchSpec{Tokens: tokens}, nil
}

// findLauncherJar returns the first archive under the server directory
// matching the launcher pattern, or "".
func (b *Builder) findLauncherJar() string {
	var found string
	filepath.WalkDir(b.serverDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(LauncherJarPattern, d.Name()); ok {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// quote wraps tokens that may contain spaces so the joined command line
// stays a single argument.
func quote(token string) string {
	if strings.Contains(token, " ") && !strings.HasPrefix(token, `"`) {
		return `"` + token + `"`
	}
	return token
}
