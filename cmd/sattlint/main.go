package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/mkorsbak/sattlint/pkg/analysis"
	"github.com/mkorsbak/sattlint/pkg/config"
	"github.com/mkorsbak/sattlint/pkg/cycles"
	"github.com/mkorsbak/sattlint/pkg/docgen"
	"github.com/mkorsbak/sattlint/pkg/graph"
	"github.com/mkorsbak/sattlint/pkg/lang"
	"github.com/mkorsbak/sattlint/pkg/logging"
	"github.com/mkorsbak/sattlint/pkg/output"
	"github.com/mkorsbak/sattlint/pkg/project"
	"github.com/mkorsbak/sattlint/pkg/resolver"
	"github.com/mkorsbak/sattlint/pkg/web"
)

const version = "0.1.0"

// Exit codes follow the original tool: 2 when the root program cannot
// be resolved, 3 when document export fails.
const (
	exitUsage      = 1
	exitRootFailed = 2
	exitDocFailed  = 3
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := pflag.NewFlagSet("sattlint", pflag.ContinueOnError)
	fs.String("root", "Main", "Root program name")
	fs.StringP("programs-dir", "p", "programs", "Directory containing program files")
	fs.StringP("libs-dirs", "l", "libs", "Comma-separated list of library dirs, in precedence order")
	fs.StringP("mode", "m", "official", "Code dialect (official or draft)")
	fs.Bool("scan-root-only", false, "Only parse the root file (no deps)")
	fs.Bool("strict", false, "Fail hard on missing/parse errors")
	fs.Bool("vendor-ignore", false, "Ignore library dirs named vendor")
	fs.Bool("show-missing", false, "Print missing units / issues")
	fs.Bool("dry-run", false, "Run dependency resolution only")
	fs.StringP("doc", "d", "", "Path to output project document (triggers doc generation)")
	fs.String("dump-parse-tree", "", "Write the root's raw parse tree to file")
	fs.String("dump-ast", "", "Write the root's fragment to file")
	fs.Bool("serve", false, "Serve the finished run as JSON over HTTP")
	fs.Int("port", 8080, "Port for --serve")
	fs.BoolP("verbose", "v", false, "Enable verbose info output")
	fs.Bool("debug", false, "Enable debug output")
	showVersion := fs.Bool("version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}
	if *showVersion {
		fmt.Printf("SattLint %s\n", version)
		return 0
	}
	// A positional argument names the root program, like the original
	// tool; --root remains for config-file use.
	if fs.NArg() > 0 {
		_ = fs.Set("root", fs.Arg(0))
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	switch {
	case cfg.Debug:
		logging.SetLevel(slog.LevelDebug)
	case cfg.Verbose:
		logging.SetLevel(slog.LevelInfo)
	default:
		logging.SetLevel(slog.LevelWarn)
	}

	dialect, err := lang.ParseDialect(cfg.Mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitUsage
	}

	r := resolver.New(resolver.Options{
		ProgramsDir:  cfg.ProgramsDir,
		LibDirs:      cfg.LibDirs(),
		Dialect:      dialect,
		ScanRootOnly: cfg.ScanRootOnly,
		Strict:       cfg.Strict,
		VendorIgnore: cfg.VendorIgnore,
	})

	g, err := r.Resolve(context.Background(), cfg.Root)
	if err != nil {
		// Strict-mode abort: the partial graph was discarded.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var rootNotFound *resolver.RootNotFoundError
		var rootParse *resolver.RootParseError
		if errors.As(err, &rootNotFound) || errors.As(err, &rootParse) {
			return exitRootFailed
		}
		return exitUsage
	}

	output.PrintResolutionReport(cfg.Root, g)
	if cfg.ShowMissing || len(g.Missing()) > 0 {
		output.PrintMissing(g.Missing())
	}

	if cfg.DryRun {
		node, ok := g.Node(cfg.Root)
		if !ok || node.Status != graph.StatusResolved {
			return exitRootFailed
		}
		return 0
	}

	bp, err := project.Merge(cfg.Root, g)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Root program not resolved.")
		return exitRootFailed
	}

	if cfg.DumpParseTree != "" || cfg.DumpAST != "" {
		dumpRoot(cfg, g)
	}

	rep := analysis.AnalyzeVariables(bp)
	refCycles := cycles.Find(g)

	output.PrintBlueprintSummary(bp, refCycles)
	output.PrintAnalysisReport(rep)

	if cfg.Doc != "" {
		if err := docgen.Generate(bp, rep, cfg.Doc); err != nil {
			fmt.Fprintf(os.Stderr, "Doc generation failed: %v\n", err)
			return exitDocFailed
		}
		fmt.Printf("Wrote project document: %s\n", cfg.Doc)
	}

	if cfg.Serve {
		server := web.NewServer(bp, rep, g)
		if err := server.Start(cfg.Port); err != nil {
			logging.Fatal("server failed", "error", err)
		}
	}

	return 0
}

// dumpRoot writes the root unit's debug exports when requested. Dump
// failures are warnings; they never change the run's outcome.
func dumpRoot(cfg *config.Config, g *graph.Graph) {
	node, ok := g.Node(cfg.Root)
	if !ok {
		return
	}
	if cfg.DumpParseTree != "" {
		if err := output.WriteParseTree(cfg.DumpParseTree, node.Tree); err != nil {
			logging.Warn("parse tree dump failed", "error", err)
		} else {
			logging.Info("wrote parse tree", "path", cfg.DumpParseTree)
		}
	}
	if cfg.DumpAST != "" {
		if err := output.WriteFragment(cfg.DumpAST, node.Fragment); err != nil {
			logging.Warn("fragment dump failed", "error", err)
		} else {
			logging.Info("wrote fragment", "path", cfg.DumpAST)
		}
	}
}
