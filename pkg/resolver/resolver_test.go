package resolver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mkorsbak/sattlint/pkg/graph"
	"github.com/mkorsbak/sattlint/pkg/lang"
)

func writeUnit(t *testing.T, dir, name, src string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%s): %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+UnitExt), []byte(src), 0o644); err != nil {
		t.Fatalf("WriteFile(%s): %v", name, err)
	}
}

func unit(name string, uses ...string) string {
	src := "MODULE " + name + ";\n"
	for _, u := range uses {
		src += "USES " + u + ";\n"
	}
	src += "END_MODULE\n"
	return src
}

func newResolver(programs string, libs []string, strict bool) *Resolver {
	return New(Options{
		ProgramsDir: programs,
		LibDirs:     libs,
		Dialect:     lang.DialectOfficial,
		Strict:      strict,
	})
}

func TestEarlierDirectoryWins(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")
	libs1 := filepath.Join(tmp, "libs1")
	libs2 := filepath.Join(tmp, "libs2")

	writeUnit(t, programs, "Main", unit("Main", "LibA"))
	writeUnit(t, libs1, "LibA", unit("LibA"))
	writeUnit(t, libs2, "LibA", unit("LibA"))

	g, err := newResolver(programs, []string{libs1, libs2}, false).Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	node, ok := g.Node("LibA")
	if !ok {
		t.Fatal("LibA not resolved")
	}
	if node.Dir != libs1 {
		t.Errorf("Expected LibA from %s, got %s", libs1, node.Dir)
	}
}

func TestCycleTerminatesWithOneNodeEach(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "UnitA", unit("UnitA", "UnitB"))
	writeUnit(t, programs, "UnitB", unit("UnitB", "UnitA"))

	g, err := newResolver(programs, nil, false).Resolve(context.Background(), "UnitA")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if g.Len() != 2 {
		t.Errorf("Expected exactly 2 nodes, got %d: %v", g.Len(), g.Names())
	}
	for _, name := range []string{"UnitA", "UnitB"} {
		node, ok := g.Node(name)
		if !ok || node.Status != graph.StatusResolved {
			t.Errorf("Expected %s resolved", name)
		}
	}
	if len(g.Missing()) != 0 {
		t.Errorf("Expected no missing entries, got %v", g.Missing())
	}
}

func TestMissingDependencyLenient(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", unit("Main", "LibMissing"))

	g, err := newResolver(programs, nil, false).Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if g.Len() != 1 {
		t.Errorf("Expected 1 node, got %d", g.Len())
	}
	missing := g.Missing()
	if len(missing) != 1 {
		t.Fatalf("Expected 1 missing entry, got %d", len(missing))
	}
	if missing[0].Name != "LibMissing" || missing[0].RequestedBy != "Main" {
		t.Errorf("Unexpected missing entry: %+v", missing[0])
	}
}

func TestMissingDependencyStrict(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", unit("Main", "LibMissing"))

	g, err := newResolver(programs, nil, true).Resolve(context.Background(), "Main")
	if err == nil {
		t.Fatal("Expected strict resolution to fail")
	}
	var missingErr *MissingDependencyError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Expected MissingDependencyError, got %T: %v", err, err)
	}
	if missingErr.Name != "LibMissing" || missingErr.RequestedBy != "Main" {
		t.Errorf("Unexpected error fields: %+v", missingErr)
	}
	if g != nil {
		t.Error("Expected partial graph to be discarded on strict failure")
	}
}

func TestScanRootOnly(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", unit("Main", "LibA"))
	writeUnit(t, programs, "LibA", unit("LibA"))

	r := New(Options{
		ProgramsDir:  programs,
		Dialect:      lang.DialectOfficial,
		ScanRootOnly: true,
	})
	g, err := r.Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if g.Len() != 1 {
		t.Errorf("Expected only the root node, got %d: %v", g.Len(), g.Names())
	}
	if len(g.Missing()) != 0 {
		t.Errorf("Expected no missing entries, got %v", g.Missing())
	}
}

func TestRootNotFound(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")
	if err := os.MkdirAll(programs, 0o755); err != nil {
		t.Fatal(err)
	}

	// Lenient: empty graph plus one missing entry for the root.
	g, err := newResolver(programs, nil, false).Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if g.Len() != 0 {
		t.Errorf("Expected empty graph, got %d nodes", g.Len())
	}
	if len(g.Missing()) != 1 || g.Missing()[0].Name != "Main" {
		t.Errorf("Expected missing entry for root, got %v", g.Missing())
	}

	// Strict: hard failure.
	_, err = newResolver(programs, nil, true).Resolve(context.Background(), "Main")
	var rootErr *RootNotFoundError
	if !errors.As(err, &rootErr) {
		t.Fatalf("Expected RootNotFoundError, got %T: %v", err, err)
	}
}

func TestRootParseError(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", "MODULE ;\n")

	g, err := newResolver(programs, nil, false).Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Lenient Resolve() error = %v", err)
	}
	node, ok := g.Node("Main")
	if !ok || node.Status != graph.StatusParseError {
		t.Errorf("Expected parse-error node for root, got %+v", node)
	}

	_, err = newResolver(programs, nil, true).Resolve(context.Background(), "Main")
	var parseErr *RootParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Expected RootParseError, got %T: %v", err, err)
	}
}

func TestDependencyParseErrorLenient(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", unit("Main", "LibBad", "LibGood"))
	writeUnit(t, programs, "LibBad", "MODULE\n")
	writeUnit(t, programs, "LibGood", unit("LibGood"))

	g, err := newResolver(programs, nil, false).Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	bad, ok := g.Node("LibBad")
	if !ok || bad.Status != graph.StatusParseError {
		t.Error("Expected LibBad recorded as parse-error node")
	}
	// A parse error is still "resolved" for completeness: not missing.
	if len(g.Missing()) != 0 {
		t.Errorf("Expected no missing entries, got %v", g.Missing())
	}
	good, ok := g.Node("LibGood")
	if !ok || good.Status != graph.StatusResolved {
		t.Error("Expected resolution to continue past the parse error")
	}
}

func TestDependencyParseErrorStrict(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", unit("Main", "LibBad"))
	writeUnit(t, programs, "LibBad", "MODULE\n")

	_, err := newResolver(programs, nil, true).Resolve(context.Background(), "Main")
	var depErr *DependencyParseError
	if !errors.As(err, &depErr) {
		t.Fatalf("Expected DependencyParseError, got %T: %v", err, err)
	}
}

func TestDiscoveryOrderIsBreadthFirst(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", unit("Main", "LibB", "LibC"))
	writeUnit(t, programs, "LibB", unit("LibB", "LibD"))
	writeUnit(t, programs, "LibC", unit("LibC"))
	writeUnit(t, programs, "LibD", unit("LibD"))

	g, err := newResolver(programs, nil, false).Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	names := g.Names()
	want := []string{"Main", "LibB", "LibC", "LibD"}
	if len(names) != len(want) {
		t.Fatalf("Expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}

func TestVendorIgnore(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")
	vendor := filepath.Join(tmp, "vendor")

	writeUnit(t, programs, "Main", unit("Main", "LibA"))
	writeUnit(t, vendor, "LibA", unit("LibA"))

	r := New(Options{
		ProgramsDir:  programs,
		LibDirs:      []string{vendor},
		Dialect:      lang.DialectOfficial,
		VendorIgnore: true,
	})
	g, err := r.Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if _, ok := g.Node("LibA"); ok {
		t.Error("Expected vendor dir to be ignored")
	}
	if len(g.Missing()) != 1 {
		t.Errorf("Expected LibA missing, got %v", g.Missing())
	}
}

func TestExactCaseMatch(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", unit("Main", "LibA"))
	writeUnit(t, programs, "LIBA", unit("LIBA"))

	g, err := newResolver(programs, nil, false).Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if _, ok := g.Node("LibA"); ok {
		t.Error("LIBA.sl must not satisfy a request for LibA")
	}
	if len(g.Missing()) != 1 || g.Missing()[0].Name != "LibA" {
		t.Errorf("Expected LibA missing, got %v", g.Missing())
	}
}

func TestSharedDependencyParsedOnce(t *testing.T) {
	tmp := t.TempDir()
	programs := filepath.Join(tmp, "programs")

	writeUnit(t, programs, "Main", unit("Main", "LibA", "LibB"))
	writeUnit(t, programs, "LibA", unit("LibA", "Shared"))
	writeUnit(t, programs, "LibB", unit("LibB", "Shared"))
	writeUnit(t, programs, "Shared", unit("Shared"))

	g, err := newResolver(programs, nil, false).Resolve(context.Background(), "Main")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if g.Len() != 4 {
		t.Errorf("Expected 4 nodes, got %d: %v", g.Len(), g.Names())
	}
}
