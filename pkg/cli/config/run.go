package config

import (
	"path/filepath"

	"github.com/urfave/cli/v3"
)

// LockFileName is created under the mirror root unless --lock-file is given
const LockFileName = ".vendorfetch.lock"

// Run holds configuration of a single run
type Run struct {
	Report      bool
	FailOnError bool
	LockFile    string
}

// Flags returns CLI flags for run configuration
func (c *Run) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "report",
			Usage:       "Print a per-file result table after the run",
			Destination: &c.Report,
			Sources:     cli.EnvVars("VENDORFETCH_REPORT"),
		},
		&cli.BoolFlag{
			Name:        "fail-on-error",
			Usage:       "Exit with non-zero status when any file failed",
			Destination: &c.FailOnError,
			Sources:     cli.EnvVars("VENDORFETCH_FAIL_ON_ERROR"),
		},
		&cli.StringFlag{
			Name:        "lock-file",
			Usage:       "Advisory lock preventing concurrent runs on the same root",
			Destination: &c.LockFile,
			Sources:     cli.EnvVars("VENDORFETCH_LOCK_FILE"),
		},
	}
}

// LockPath returns the lock file path for a mirror root
func (c *Run) LockPath(root string) string {
	if c.LockFile != "" {
		return c.LockFile
	}
	return filepath.Join(root, LockFileName)
}
