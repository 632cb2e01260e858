package domain

import "fmt"

// Granularity is the level a test suite addresses: a whole class or one method.
type Granularity int

const (
	// GranularityClass addresses every test method in a class.
	GranularityClass Granularity = iota
	// GranularityMethod addresses a single test method.
	GranularityMethod
)

// TestSuite identifies one runnable unit: a fully-qualified class or
// class#method name plus the source document it came from. Immutable
// once constructed; supplied by the resource index.
type TestSuite struct {
	Name        string // fully-qualified, e.g. "pkg.FooTest" or "pkg.FooTest#testA"
	Document    string // path of the originating source file
	Granularity Granularity
}

// NewClassSuite builds a class-granularity suite.
func NewClassSuite(name, document string) TestSuite {
	return TestSuite{Name: name, Document: document, Granularity: GranularityClass}
}

// NewMethodSuite builds a method-granularity suite for class#method.
func NewMethodSuite(class, method, document string) TestSuite {
	return TestSuite{
		Name:        fmt.Sprintf("%s#%s", class, method),
		Document:    document,
		Granularity: GranularityMethod,
	}
}
