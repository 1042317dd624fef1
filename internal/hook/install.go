package hook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/rs/zerolog"
)

// Hook slots gitsentry occupies. Each installed script forwards all
// arguments to the matching internal hook entry point.
var hookNames = []string{"commit-msg", "pre-commit", "prepare-commit-msg"}

const hookScriptTemplate = `#!/usr/bin/env bash
gitsentry hook %s "$@"
`

// Installer writes dispatcher scripts into a hooks directory.
type Installer struct {
	hooksDir string
	logger   zerolog.Logger
}

// NewInstaller creates an installer targeting hooksDir.
func NewInstaller(hooksDir string, logger zerolog.Logger) *Installer {
	return &Installer{
		hooksDir: hooksDir,
		logger:   logger.With().Str("module", "Installer").Logger(),
	}
}

// Install writes every hook script. An already populated hook slot is
// refused unless force is set.
func (i *Installer) Install(force bool) error {
	if err := os.MkdirAll(i.hooksDir, 0755); err != nil {
		return common.WrapError(err, "failed to create hooks directory "+i.hooksDir)
	}

	if !force {
		for _, name := range hookNames {
			path := filepath.Join(i.hooksDir, name)
			if _, err := os.Stat(path); err == nil {
				return common.WrapError(common.ErrInstallConflict, path)
			}
		}
	}

	for _, name := range hookNames {
		path := filepath.Join(i.hooksDir, name)
		script := fmt.Sprintf(hookScriptTemplate, name)
		if err := os.WriteFile(path, []byte(script), 0755); err != nil {
			return common.WrapError(err, "failed to write hook "+path)
		}
		i.logger.Info().Str("hook", path).Msg("Installed hook")
	}
	return nil
}
