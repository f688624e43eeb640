package resolver

import (
	"fmt"
	"strings"
)

// RootNotFoundError reports that the root unit name matched no file in
// any search directory.
type RootNotFoundError struct {
	Name string
	Dirs []string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("root unit %s not found (searched: %s)", e.Name, strings.Join(e.Dirs, ", "))
}

// RootParseError reports that the root file was found but failed to
// parse, in strict mode.
type RootParseError struct {
	Name string
	Path string
	Err  error
}

func (e *RootParseError) Error() string {
	return fmt.Sprintf("root unit %s failed to parse: %v", e.Name, e.Err)
}

func (e *RootParseError) Unwrap() error { return e.Err }

// MissingDependencyError reports an unresolvable transitive reference,
// in strict mode.
type MissingDependencyError struct {
	Name        string
	RequestedBy string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependency %s (referenced by %s) not found in any search directory", e.Name, e.RequestedBy)
}

// DependencyParseError reports a transitive dependency that was found
// but failed to parse, in strict mode.
type DependencyParseError struct {
	Name string
	Path string
	Err  error
}

func (e *DependencyParseError) Error() string {
	return fmt.Sprintf("dependency %s failed to parse: %v", e.Name, e.Err)
}

func (e *DependencyParseError) Unwrap() error { return e.Err }
