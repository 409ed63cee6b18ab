package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dkoosis/patchbench/internal/matrix"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".patchbench.yaml"

// Constants for default values.
const (
	DefaultInputDir = "testdata"
	DefaultToolDir  = "src/out/Release"
	DefaultPlatform = "win64"
	DefaultPatcher  = "zucchini"
	DefaultArchiver = "7z"
	DefaultOutRoot  = "out"
	DefaultFormat   = "auto"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	OutDir     string
	InputDir   string
	ToolDir    string
	Platform   string
	ConfigPath string
	Format     string
	Debug      bool
	Verify     bool
	DryRun     bool

	// Flags to track if they were explicitly set by the user
	InputDirSet bool
	ToolDirSet  bool
	PlatformSet bool
	FormatSet   bool
	DebugSet    bool
	VerifySet   bool
}

// AppConfig represents the contents of .patchbench.yaml.
type AppConfig struct {
	InputDir string            `yaml:"indir,omitempty"`
	ToolDir  string            `yaml:"tooldir,omitempty"`
	Platform string            `yaml:"platform,omitempty"`
	Patcher  string            `yaml:"patcher,omitempty"`
	Archiver string            `yaml:"archiver,omitempty"`
	OutRoot  string            `yaml:"out_root,omitempty"`
	Format   string            `yaml:"format,omitempty"`
	Verify   bool              `yaml:"verify"`
	Debug    bool              `yaml:"debug"`
	Matrix   []matrix.WorkItem `yaml:"matrix,omitempty"`
}

// Defaults returns the configuration used when no file is present.
func Defaults() *AppConfig {
	return &AppConfig{
		InputDir: DefaultInputDir,
		ToolDir:  DefaultToolDir,
		Platform: DefaultPlatform,
		Patcher:  DefaultPatcher,
		Archiver: DefaultArchiver,
		OutRoot:  DefaultOutRoot,
		Format:   DefaultFormat,
	}
}

// LoadConfig loads configuration from path, or from the first file found by
// getConfigPath when path is empty. It returns the path actually read ("" if
// none). An explicit path that cannot be read is an error; a missing
// implicit file is not.
func LoadConfig(path string) (*AppConfig, string, error) {
	appCfg := Defaults()

	if path == "" {
		path = getConfigPath()
		if path == "" {
			return appCfg, "", nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg AppConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, "", fmt.Errorf("parse config %s: %w", path, err)
	}

	// Merge YAML settings onto the defaults
	if fileCfg.InputDir != "" {
		appCfg.InputDir = fileCfg.InputDir
	}
	if fileCfg.ToolDir != "" {
		appCfg.ToolDir = fileCfg.ToolDir
	}
	if fileCfg.Platform != "" {
		appCfg.Platform = fileCfg.Platform
	}
	if fileCfg.Patcher != "" {
		appCfg.Patcher = fileCfg.Patcher
	}
	if fileCfg.Archiver != "" {
		appCfg.Archiver = fileCfg.Archiver
	}
	if fileCfg.OutRoot != "" {
		appCfg.OutRoot = fileCfg.OutRoot
	}
	if fileCfg.Format != "" {
		appCfg.Format = fileCfg.Format
	}
	appCfg.Verify = fileCfg.Verify
	appCfg.Debug = fileCfg.Debug
	appCfg.Matrix = fileCfg.Matrix

	return appCfg, path, nil
}

// getConfigPath tries to find the configuration file.
// It checks the local directory first, then the user config directory.
func getConfigPath() string {
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}

	configHome, err := os.UserConfigDir()
	// UserConfigDir can return "" or "/" in stripped-down environments.
	if err == nil && configHome != "" && configHome != "/" {
		xdgPath := filepath.Join(configHome, "patchbench", FileName)
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}
	return ""
}

// ErrUsage marks errors caused by invalid invocation.
var ErrUsage = errors.New("usage")
