package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default test source path
	DefaultTestPath = "."
	// DefaultStorageDir is the directory holding run-scoped storage and results
	DefaultStorageDir = "storage"
	// DefaultOutputJSONFile is the persisted last-run results file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultServerDir is the directory searched for the launcher archive
	DefaultServerDir = "server"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for tests
var DefaultPathsToIgnore = []string{
	"target",
	"build",
	"out",
	"bin",
	"node_modules",
	".gradle",
	".mvn",
}

// DefaultClasspathDirs are class output directories added to the
// classpath when they exist under the project path.
var DefaultClasspathDirs = []string{
	"target/classes",
	"target/test-classes",
	"build/classes/java/main",
	"build/classes/java/test",
}
