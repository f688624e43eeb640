package resolver

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mkorsbak/sattlint/pkg/blueprint"
	"github.com/mkorsbak/sattlint/pkg/graph"
	"github.com/mkorsbak/sattlint/pkg/lang"
	"github.com/mkorsbak/sattlint/pkg/logging"
	"github.com/mkorsbak/sattlint/pkg/parser"
)

// Options is the per-run resolver configuration. Every switch that was
// a process-wide flag in older tooling is an explicit field here, so
// two resolution runs can never leak state into each other.
type Options struct {
	ProgramsDir  string       // primary search directory
	LibDirs      []string     // additional search directories, in precedence order
	Dialect      lang.Dialect // applied uniformly to every parsed unit
	ScanRootOnly bool         // parse the root and stop; no references followed
	Strict       bool         // first missing/unparseable dependency aborts the run
	VendorIgnore bool         // drop search directories named "vendor"
}

// Resolver builds the dependency graph for a root unit: a breadth-first
// closure over unit references, locating each name across the search
// directories, parsing it, and extracting its references until no new
// names appear.
type Resolver struct {
	opts Options
	dirs []string
}

func New(opts Options) *Resolver {
	dirs := make([]string, 0, 1+len(opts.LibDirs))
	if opts.ProgramsDir != "" {
		dirs = append(dirs, opts.ProgramsDir)
	}
	for _, d := range opts.LibDirs {
		if opts.VendorIgnore && filepath.Base(filepath.Clean(d)) == "vendor" {
			logging.Debug("ignoring vendor library directory", "dir", d)
			continue
		}
		dirs = append(dirs, d)
	}
	return &Resolver{opts: opts, dirs: dirs}
}

// SearchDirs returns the effective ordered search path.
func (r *Resolver) SearchDirs() []string {
	dirs := make([]string, len(r.dirs))
	copy(dirs, r.dirs)
	return dirs
}

type request struct {
	name        string
	requestedBy string
}

// Resolve builds the graph for root. In lenient mode every failure is
// recorded on the graph and resolution runs to completion; in strict
// mode the first failure returns an error and the partial graph is
// discarded. A name already present in the graph is never re-searched
// or re-parsed, so reference cycles terminate after one visit per unit.
func (r *Resolver) Resolve(ctx context.Context, root string) (*graph.Graph, error) {
	g := graph.New()

	path, dir, ok := locate(root, r.dirs)
	if !ok {
		if r.opts.Strict {
			return nil, &RootNotFoundError{Name: root, Dirs: r.SearchDirs()}
		}
		logging.Warn("root unit not found", "unit", root)
		g.AddMissing(root, "", "not found in any search directory")
		return g, nil
	}

	node := r.parseUnit(root, path, dir)
	g.Claim(node)
	if node.Status == graph.StatusParseError {
		if r.opts.Strict {
			return nil, &RootParseError{Name: root, Path: path, Err: node.ParseErr()}
		}
		// Lenient: the root contributes an empty reference set and the
		// merger will refuse the graph later.
		return g, nil
	}

	if r.opts.ScanRootOnly {
		logging.Debug("scan-root-only set, skipping dependency closure", "unit", root)
		return g, nil
	}

	// Queue admission doubles as the claim: a name is enqueued at most
	// once, before its file is ever read.
	queued := map[string]bool{root: true}
	var queue []request
	for _, ref := range blueprint.References(node.Fragment) {
		g.AddEdge(root, ref)
		queued[ref] = true
		queue = append(queue, request{name: ref, requestedBy: root})
	}

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		req := queue[0]
		queue = queue[1:]

		path, dir, ok := locate(req.name, r.dirs)
		if !ok {
			if r.opts.Strict {
				return nil, &MissingDependencyError{Name: req.name, RequestedBy: req.requestedBy}
			}
			logging.Warn("dependency not found", "unit", req.name, "requestedBy", req.requestedBy)
			g.AddMissing(req.name, req.requestedBy, "not found in any search directory")
			continue
		}

		node := r.parseUnit(req.name, path, dir)
		g.Claim(node)
		if node.Status == graph.StatusParseError {
			if r.opts.Strict {
				return nil, &DependencyParseError{Name: req.name, Path: path, Err: node.ParseErr()}
			}
			// Counts as resolved for graph completeness; its reference
			// set is treated as empty.
			continue
		}

		for _, ref := range blueprint.References(node.Fragment) {
			g.AddEdge(req.name, ref)
			if queued[ref] {
				continue
			}
			queued[ref] = true
			queue = append(queue, request{name: ref, requestedBy: req.name})
		}
	}

	logging.Info("resolution complete",
		"root", root, "units", g.Len(), "missing", len(g.Missing()))
	return g, nil
}

// parseUnit reads and parses one located file, producing either a
// resolved node or a parse-error node. Never returns nil.
func (r *Resolver) parseUnit(name, path, dir string) *graph.Node {
	node := &graph.Node{
		Name:    name,
		Path:    path,
		Dir:     dir,
		Dialect: r.opts.Dialect,
	}

	src, err := os.ReadFile(path)
	if err != nil {
		node.Status = graph.StatusParseError
		node.Err = "read failed: " + err.Error()
		return node
	}

	res, err := parser.Parse(name, string(src), r.opts.Dialect)
	if err != nil {
		logging.Debug("parse failed", "unit", name, "error", err)
		node.Status = graph.StatusParseError
		node.Err = err.Error()
		return node
	}

	if res.Fragment.Name != name {
		logging.Warn("declared unit name differs from file name",
			"unit", name, "declared", res.Fragment.Name, "path", path)
	}

	node.Status = graph.StatusResolved
	node.Tree = res.Tree
	node.Fragment = res.Fragment
	logging.Debug("resolved unit", "unit", name, "dir", dir, "refs", len(res.Fragment.Uses))
	return node
}
