package calc_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// languageDirs are the front-end packages, relative to this one.
var languageDirs = []string{"../token", "../grammar", "../calc", "../query", "../numword"}

// TestLanguagePackagesImportOnly verifies the front-end packages import only
// the standard library and each other. The CLI and server depend on them,
// never the reverse.
func TestLanguagePackagesImportOnly(t *testing.T) {
	allowed := map[string]bool{
		"github.com/leapstack-labs/leapcalc/pkg/token":   true,
		"github.com/leapstack-labs/leapcalc/pkg/grammar": true,
	}

	fset := token.NewFileSet()
	for _, dir := range languageDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", dir, err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") {
				continue
			}
			// Skip test files
			if strings.HasSuffix(entry.Name(), "_test.go") {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
			if err != nil {
				t.Errorf("Failed to parse %s: %v", path, err)
				continue
			}

			for _, imp := range f.Imports {
				importPath := strings.Trim(imp.Path.Value, `"`)

				// Allow stdlib (no dots in path)
				if !strings.Contains(importPath, ".") {
					continue
				}
				if !allowed[importPath] {
					t.Errorf("%s imports forbidden package: %s", path, importPath)
				}
			}
		}
	}
}

// TestTokenImportsNothingInternal verifies pkg/token stays at the bottom of
// the import graph.
func TestTokenImportsNothingInternal(t *testing.T) {
	fset := token.NewFileSet()
	entries, err := os.ReadDir("../token")
	if err != nil {
		t.Fatalf("Failed to read token directory: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".go") || strings.HasSuffix(entry.Name(), "_test.go") {
			continue
		}

		path := filepath.Join("../token", entry.Name())
		f, err := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if err != nil {
			t.Errorf("Failed to parse %s: %v", path, err)
			continue
		}

		for _, imp := range f.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.HasPrefix(importPath, "github.com/leapstack-labs/leapcalc/") {
				t.Errorf("%s imports %s (token must not import other module packages)", entry.Name(), importPath)
			}
		}
	}
}
