package index

import (
	"fmt"
	"os"
	"regexp"
	"sort"
)

// Parser extracts the test class and test methods from a Java source file
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

var (
	packagePattern = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	classPattern   = regexp.MustCompile(`(?m)^\s*(?:(?:public|final|abstract)\s+)*class\s+(\w+)`)

	// @Test possibly with arguments, possibly stacked with other
	// annotations, followed by the method declaration.
	testMethodPattern = regexp.MustCompile(`@Test(?:\([^)]*\))?\s*(?:@\w+(?:\([^)]*\))?\s*)*(?:public\s+)?void\s+(\w+)\s*\(`)
)

// FindSuites parses a test file and returns the fully-qualified class
// name plus its test method names, sorted for consistent output.
func (p *Parser) FindSuites(filePath string) (string, []string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("error reading file %s: %w", filePath, err)
	}
	fileContent := string(content)

	classMatch := classPattern.FindStringSubmatch(fileContent)
	if classMatch == nil {
		return "", nil, nil
	}
	className := classMatch[1]
	if pkgMatch := packagePattern.FindStringSubmatch(fileContent); pkgMatch != nil {
		className = pkgMatch[1] + "." + className
	}

	methodsMap := make(map[string]bool) // avoid duplicates
	for _, match := range testMethodPattern.FindAllStringSubmatch(fileContent, -1) {
		methodsMap[match[1]] = true
	}

	var methods []string
	for m := range methodsMap {
		methods = append(methods, m)
	}
	sort.Strings(methods)

	return className, methods, nil
}
