package config_test

import (
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vendorfetch/pkg/cli/config"
)

func TestRun_LockPath(t *testing.T) {
	t.Run("default under root", func(t *testing.T) {
		cfg := &config.Run{}
		gt.Equal(t, cfg.LockPath("vendor"), filepath.Join("vendor", config.LockFileName))
	})

	t.Run("explicit lock file", func(t *testing.T) {
		cfg := &config.Run{LockFile: "/tmp/custom.lock"}
		gt.Equal(t, cfg.LockPath("vendor"), "/tmp/custom.lock")
	})
}
