package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if !strings.Contains(importPath, "cigbreak/internal/modules/") {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", slash, layer, importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.Contains(importPath, "/internal/modules/"+module+"/")
	if !sameModule {
		if strings.Contains(importPath, "/service/") || strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/")
	case "domain":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") || strings.Contains(importPath, "/service/")
	default:
		return false
	}
}

// allowedModuleDeps is the cross-module graph: clip and stats are leaves, a
// break session orchestrates both, reminders only read the stored cadence.
var allowedModuleDeps = map[string][]string{
	"breaksession": {"clip", "stats"},
	"clip":         {},
	"reminder":     {"stats"},
	"stats":        {},
}

func TestModuleDependencyGraph(t *testing.T) {
	t.Parallel()
	imports := productionImports(t, filepath.Join("..", "modules"))
	for file, paths := range imports {
		from := moduleName(file)
		if _, ok := allowedModuleDeps[from]; !ok {
			t.Fatalf("module %q has no entry in the dependency graph", from)
		}
		for _, importPath := range paths {
			to := moduleName(importPath)
			if to == "" || to == from {
				continue
			}
			if !slices.Contains(allowedModuleDeps[from], to) {
				t.Fatalf("%s: module %s must not depend on %s (%s)", file, from, to, importPath)
			}
			if !isPortIn(importPath) && !isDTO(importPath) {
				t.Fatalf("%s: %s reaches %s outside port/in and dto (%s)", file, from, to, importPath)
			}
		}
	}
}

func TestPlatformNeverImportsModules(t *testing.T) {
	t.Parallel()
	for file, paths := range productionImports(t, filepath.Join("..", "platform")) {
		for _, importPath := range paths {
			if strings.Contains(importPath, "cigbreak/internal/modules/") || strings.Contains(importPath, "cigbreak/internal/ui") {
				t.Fatalf("%s: platform package imports %s", file, importPath)
			}
		}
	}
}

// productionImports maps every non-test Go file under root to its cigbreak
// imports.
func productionImports(t *testing.T, root string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()
	out := map[string][]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		slash := filepath.ToSlash(path)
		out[slash] = []string{}
		for _, imp := range node.Imports {
			if importPath := strings.Trim(imp.Path.Value, `"`); strings.HasPrefix(importPath, "cigbreak/") {
				out[slash] = append(out[slash], importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	if len(out) == 0 {
		t.Fatalf("no Go files under %s", root)
	}
	return out
}

