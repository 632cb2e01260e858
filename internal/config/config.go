package config

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	TestPath    string

	// Run storage settings
	StorageDir     string
	OutputJSONFile string

	// Launcher settings
	ServerDir string

	// Interpreter settings
	JavaHome string

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Class output directories probed under the project path
	ClasspathDirs []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	TestPath   string
	NameFilter string
	JavaHome   string
	DebugPort  int
	TestCases  bool
	OpenViewer bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		TestPath:       DefaultTestPath,
		StorageDir:     DefaultStorageDir,
		OutputJSONFile: DefaultOutputJSONFile,
		ServerDir:      DefaultServerDir,
	}
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	cfg.ClasspathDirs = make([]string, len(DefaultClasspathDirs))
	copy(cfg.ClasspathDirs, DefaultClasspathDirs)

	// A .env in the project root may carry JAVA_HOME and friends.
	// Missing files are fine.
	godotenv.Load(filepath.Join(cfg.ProjectPath, ".env"))

	return cfg
}

// GetTestPath returns the test source path, using the flag if provided
func (c *Config) GetTestPath() string {
	if c.Flags.TestPath != "" {
		if filepath.IsAbs(c.Flags.TestPath) {
			return c.Flags.TestPath
		}
		return filepath.Join(c.ProjectPath, c.Flags.TestPath)
	}
	return filepath.Join(c.ProjectPath, c.TestPath)
}

// GetStorageRoot returns the absolute base directory for run-scoped storage.
// Resolved to an absolute path so run and details always use the same tree
// regardless of cwd.
func (c *Config) GetStorageRoot() string {
	p := filepath.Join(c.ProjectPath, c.StorageDir)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetOutputPath returns the full path to the persisted last-run results file.
func (c *Config) GetOutputPath() string {
	return filepath.Join(c.GetStorageRoot(), c.OutputJSONFile)
}

// GetServerDir returns the directory searched for the launcher archive.
func (c *Config) GetServerDir() string {
	return filepath.Join(c.ProjectPath, c.ServerDir)
}

// ResolveJavaHome locates the Java installation root. Resolution order:
// explicit flag, then JAVA_HOME, then JDK_HOME, then the java binary on
// PATH. Returns "" when nothing usable is found; callers treat that as
// fatal to all run attempts.
func (c *Config) ResolveJavaHome() string {
	if c.Flags.JavaHome != "" {
		return c.Flags.JavaHome
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		return home
	}
	if home := os.Getenv("JDK_HOME"); home != "" {
		return home
	}
	if bin, err := exec.LookPath("java"); err == nil {
		// bin is <home>/bin/java
		return filepath.Dir(filepath.Dir(bin))
	}
	return ""
}

// GetJavaBin returns the java executable under the resolved home.
func (c *Config) GetJavaBin() string {
	if c.JavaHome == "" {
		return "java"
	}
	return filepath.Join(c.JavaHome, "bin", "java")
}
