package cli

import "jtr/internal/config"

// Flags holds command-line flags
type Flags struct {
	TestPath    string
	NameFilter  string
	JavaHome    string
	DebugPort   int
	TestCases   bool
	Interactive bool
	Verbose     bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		TestPath:   f.TestPath,
		NameFilter: f.NameFilter,
		JavaHome:   f.JavaHome,
		DebugPort:  f.DebugPort,
		TestCases:  f.TestCases,
		OpenViewer: f.Interactive,
	}
}
