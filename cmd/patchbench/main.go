// patchbench measures compressed binary patch sizes across release revisions.
//
// Usage:
//
//	patchbench [flags] <outdir>
//
// For every (old, new, file) item of the work matrix it runs the diff
// generator from --tooldir on the two builds found under --indir, compresses
// the patch with 7z, and logs the archive size. Outputs are written to
// out/<outdir>; items whose archive already exists are skipped, so an
// interrupted run can simply be repeated.
//
// Summary output modes (auto-detected):
//
//	terminal  styled table (default when TTY)
//	plain     aligned text (default when piped)
//	json      metrics report for automation
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"golang.org/x/term"

	"github.com/dkoosis/patchbench/internal/bench"
	"github.com/dkoosis/patchbench/internal/config"
	"github.com/dkoosis/patchbench/internal/listing"
	"github.com/dkoosis/patchbench/internal/logging"
	"github.com/dkoosis/patchbench/internal/store"
	"github.com/dkoosis/patchbench/internal/tool"
	"github.com/dkoosis/patchbench/internal/version"
	"github.com/dkoosis/patchbench/pkg/render"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the application logic and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cli, showVersion, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if showVersion {
		fmt.Fprint(stdout, version.String())
		return 0
	}

	cfg, err := config.ResolveConfig(cli)
	if err != nil {
		fmt.Fprintf(stderr, "patchbench: %v\n", err)
		if errors.Is(err, config.ErrUsage) {
			fmt.Fprintln(stderr, "Usage: patchbench [flags] <outdir>")
			return 2
		}
		return 1
	}

	logger := logging.New(stderr, cfg.Debug)
	logger.Info("input directory", slog.String("indir", cfg.InputDir))
	logger.Info("tool directory", slog.String("tooldir", cfg.ToolDir))
	logger.Info("output directory", slog.String("outdir", cfg.OutputDir))
	if cfg.ConfigFile != "" {
		logger.Debug("config file", slog.String("path", cfg.ConfigFile))
	}

	// A dry run only reads the output directory, so it must not create it.
	openStore := store.NewOS
	if cfg.DryRun {
		openStore = store.OpenOS
	}
	st, err := openStore(cfg.OutputDir)
	if err != nil {
		fmt.Fprintf(stderr, "patchbench: %v\n", err)
		return 1
	}
	driver := &bench.Driver{
		Platform: cfg.Platform,
		InputDir: cfg.InputDir,
		Inputs:   osfs.New(cfg.InputDir),
		Store:    st,
		// Tool chatter goes to stderr so stdout carries only the summary.
		Runner: &tool.ExecRunner{Stdout: stderr, Stderr: stderr},
		Tools:  bench.Tools{Patcher: cfg.Patcher, Archiver: cfg.Archiver},
		Logger: logger,
		Verify: cfg.Verify,
	}

	if cfg.DryRun {
		return printPlan(driver, cfg, stdout, stderr)
	}

	results, err := driver.Run(context.Background(), cfg.Matrix)
	if err != nil {
		fmt.Fprintf(stderr, "patchbench: %v\n", err)
		return exitCode(err)
	}

	fmt.Fprint(stdout, selectRenderer(cfg, stdout).Render(summarize(cfg, st, results)))
	return 0
}

// parseFlags parses args, allowing flags on both sides of the outdir argument.
func parseFlags(args []string, stderr io.Writer) (config.CliFlags, bool, error) {
	var cli config.CliFlags
	fs := flag.NewFlagSet("patchbench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: patchbench [flags] <outdir>")
		fs.PrintDefaults()
	}

	for _, name := range []string{"indir", "i"} {
		fs.StringVar(&cli.InputDir, name, config.DefaultInputDir, "Directory containing test data")
	}
	for _, name := range []string{"tooldir", "t"} {
		fs.StringVar(&cli.ToolDir, name, config.DefaultToolDir, "Directory containing binaries")
	}
	fs.StringVar(&cli.Platform, "platform", config.DefaultPlatform, "Build platform: "+platformNames())
	fs.StringVar(&cli.ConfigPath, "config", "", "Path to a .patchbench.yaml file")
	fs.StringVar(&cli.Format, "format", config.DefaultFormat, "Summary format: auto, terminal, plain, json")
	fs.BoolVar(&cli.Debug, "debug", false, "Log external command lines")
	fs.BoolVar(&cli.Verify, "verify", false, "Apply each new patch and compare with the new build")
	fs.BoolVar(&cli.DryRun, "dry-run", false, "Show where each item would resume without running tools")
	showVersion := fs.Bool("version", false, "Print version and exit")

	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return cli, false, err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "indir", "i":
			cli.InputDirSet = true
		case "tooldir", "t":
			cli.ToolDirSet = true
		case "platform":
			cli.PlatformSet = true
		case "format":
			cli.FormatSet = true
		case "debug":
			cli.DebugSet = true
		case "verify":
			cli.VerifySet = true
		}
	})

	if *showVersion {
		return cli, true, nil
	}
	if len(positional) != 1 {
		fmt.Fprintf(stderr, "patchbench: expected exactly one outdir argument, got %d\n", len(positional))
		fs.Usage()
		return cli, false, config.ErrUsage
	}
	cli.OutDir = positional[0]
	return cli, false, nil
}

func platformNames() string {
	platforms := listing.Platforms()
	names := make([]string, 0, len(platforms))
	for _, p := range platforms {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

// exitCode propagates a failing tool's exit status.
func exitCode(err error) int {
	var exitErr *tool.ExitCodeError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

func printPlan(d *bench.Driver, cfg *config.ResolvedConfig, stdout, stderr io.Writer) int {
	steps, err := d.Plan(cfg.Matrix)
	if err != nil {
		fmt.Fprintf(stderr, "patchbench: %v\n", err)
		return 1
	}
	for _, s := range steps {
		fmt.Fprintf(stdout, "%-17s %s\n", s.Next, s.Item)
	}
	return 0
}

func summarize(cfg *config.ResolvedConfig, st *store.FS, results []bench.Result) render.Summary {
	s := render.Summary{
		Platform:  string(cfg.Platform),
		OutputDir: st.Root(),
		Rows:      make([]render.Row, 0, len(results)),
	}
	for _, r := range results {
		s.Rows = append(s.Rows, render.Row{
			Old:      r.Item.Old,
			New:      r.Item.New,
			Artifact: r.Item.Artifact,
			Size:     r.Size,
			Outcome:  r.Outcome,
		})
	}
	return s
}

//nolint:ireturn // the renderer is chosen at runtime.
func selectRenderer(cfg *config.ResolvedConfig, stdout io.Writer) render.Renderer {
	format := cfg.Format
	if format == config.FormatAuto {
		format = config.FormatPlain
		if isTTYWriter(stdout) {
			format = config.FormatTerminal
		}
	}
	switch format {
	case config.FormatJSON:
		return render.NewJSON()
	case config.FormatTerminal:
		return render.NewTerminal(render.ThemeFor(cfg.NoColor), termWidth(stdout))
	default:
		return render.NewPlain()
	}
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termWidth returns the terminal width of w, defaulting to 80.
func termWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			return tw
		}
	}
	return 80
}
