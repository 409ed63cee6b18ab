package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dkoosis/patchbench/internal/listing"
	"github.com/dkoosis/patchbench/internal/matrix"
)

// Output formats for the end-of-run summary.
const (
	FormatAuto     = "auto"
	FormatTerminal = "terminal"
	FormatPlain    = "plain"
	FormatJSON     = "json"
)

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	InputDir  string
	ToolDir   string
	OutputDir string
	Platform  listing.Platform
	// Patcher is the path of the diff generator, inside ToolDir unless configured as absolute.
	Patcher  string
	Archiver string
	Format   string
	Matrix   []matrix.WorkItem

	Debug   bool
	Verify  bool
	DryRun  bool
	NoColor bool

	// ConfigFile is the YAML file that was read, if any.
	ConfigFile string
}

// ResolveConfig resolves configuration from all sources with explicit priority order.
func ResolveConfig(cli CliFlags) (*ResolvedConfig, error) {
	if cli.OutDir == "" {
		return nil, fmt.Errorf("%w: missing outdir argument", ErrUsage)
	}

	appCfg, source, err := LoadConfig(cli.ConfigPath)
	if err != nil {
		return nil, err
	}

	inputDir := pick(cli.InputDirSet, cli.InputDir, "PATCHBENCH_INDIR", appCfg.InputDir)
	toolDir := pick(cli.ToolDirSet, cli.ToolDir, "PATCHBENCH_TOOLDIR", appCfg.ToolDir)
	platformName := pick(cli.PlatformSet, cli.Platform, "PATCHBENCH_PLATFORM", appCfg.Platform)

	platform, err := listing.Parse(platformName)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	resolved := &ResolvedConfig{
		InputDir:   inputDir,
		ToolDir:    toolDir,
		OutputDir:  filepath.Join(appCfg.OutRoot, cli.OutDir),
		Platform:   platform,
		Patcher:    appCfg.Patcher,
		Archiver:   appCfg.Archiver,
		Format:     appCfg.Format,
		Matrix:     appCfg.Matrix,
		Debug:      appCfg.Debug,
		Verify:     appCfg.Verify,
		DryRun:     cli.DryRun,
		ConfigFile: source,
	}
	if !filepath.IsAbs(resolved.Patcher) {
		resolved.Patcher = filepath.Join(toolDir, resolved.Patcher)
	}
	if len(resolved.Matrix) == 0 {
		resolved.Matrix = matrix.Default()
	}

	// Resolve Debug with priority: CLI > ENV > file > default
	if cli.DebugSet {
		resolved.Debug = cli.Debug
	} else if envDebug := getEnvBool("PATCHBENCH_DEBUG"); envDebug != nil {
		resolved.Debug = *envDebug
	}

	if cli.VerifySet {
		resolved.Verify = cli.Verify
	}
	if cli.FormatSet {
		resolved.Format = cli.Format
	}

	// NO_COLOR disables color when present with any value (no-color.org).
	if os.Getenv("NO_COLOR") != "" {
		resolved.NoColor = true
	} else if envNoColor := getEnvBool("PATCHBENCH_NO_COLOR"); envNoColor != nil {
		resolved.NoColor = *envNoColor
	}

	if err := validateResolvedConfig(resolved); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

// pick returns the CLI value when set, else the environment value when
// non-empty, else the file/default value.
func pick(cliSet bool, cliVal, envKey, fileVal string) string {
	if cliSet {
		return cliVal
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fileVal
}

func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}

// validateResolvedConfig validates the resolved configuration and returns errors for invalid states.
func validateResolvedConfig(cfg *ResolvedConfig) error {
	validFormat := map[string]bool{
		FormatAuto:     true,
		FormatTerminal: true,
		FormatPlain:    true,
		FormatJSON:     true,
	}
	if !validFormat[cfg.Format] {
		return fmt.Errorf("%w: invalid format %q (must be: auto, terminal, plain, json)", ErrUsage, cfg.Format)
	}
	if cfg.InputDir == "" {
		return fmt.Errorf("indir cannot be empty")
	}
	if cfg.Archiver == "" {
		return fmt.Errorf("archiver cannot be empty")
	}
	return matrix.Validate(cfg.Matrix)
}
