// Package config handles configuration loading and merging for patchbench.
//
// # Configuration Precedence
//
// Configuration values are resolved in the following order (highest to lowest priority):
//
//  1. CLI flags (--indir, --tooldir, --platform, --debug, --verify, --format)
//  2. Environment variables (PATCHBENCH_INDIR, PATCHBENCH_TOOLDIR, PATCHBENCH_PLATFORM, PATCHBENCH_DEBUG, NO_COLOR)
//  3. YAML config file (--config, .patchbench.yaml in the working directory, or ~/.config/patchbench/.patchbench.yaml)
//  4. Hardcoded defaults
//
// # Work Matrix
//
// The YAML file may carry a matrix:
//
//	matrix:
//	  - {old: 445272, new: 454726, file: chrome.dll}
//	  - {old: 445272, new: 454726, file: chrome_child.dll}
//
// An absent or empty matrix selects matrix.Default(). The resolved matrix is
// validated before it is returned.
package config
