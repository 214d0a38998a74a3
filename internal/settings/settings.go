// Package settings loads the coordinator settings.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/buildlayout/internal/domain/layout"
	"github.com/felixgeelhaar/buildlayout/internal/ports"
)

// Settings controls one layout pass and the CLI around it.
type Settings struct {
	Output       OutputSettings     `koanf:"output"`
	Toolchain    ToolchainSettings  `koanf:"toolchain"`
	Evaluation   EvaluationSettings `koanf:"evaluation"`
	Repositories []string           `koanf:"repositories"`
	Namespace    NamespaceSettings  `koanf:"namespace"`
	Log          LogSettings        `koanf:"log"`
}

// OutputSettings configures the shared output root.
type OutputSettings struct {
	// Root is resolved against the root project's default output dir.
	Root string `koanf:"root"`
}

// ToolchainSettings configures compile step pinning.
type ToolchainSettings struct {
	Version string `koanf:"version"`
}

// EvaluationSettings configures evaluation order.
type EvaluationSettings struct {
	// Anchor is evaluated before every other subproject. Empty disables it.
	Anchor string `koanf:"anchor"`
}

// NamespaceSettings configures default library namespaces.
type NamespaceSettings struct {
	Enabled bool   `koanf:"enabled"`
	Prefix  string `koanf:"prefix"`
}

// LogSettings configures the CLI logger.
type LogSettings struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Validate checks the settings for values a pass cannot run with.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Output.Root) == "" {
		return errors.New("output.root must not be empty")
	}
	if strings.TrimSpace(s.Toolchain.Version) == "" {
		return errors.New("toolchain.version must not be empty")
	}
	if s.Namespace.Enabled && strings.TrimSpace(s.Namespace.Prefix) == "" {
		return errors.New("namespace.prefix is required when namespace.enabled is true")
	}
	if _, err := ports.ParseLevel(s.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level: %w", err)
	}
	switch s.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log.format %q (must be text or json)", s.Log.Format)
	}
	return nil
}

// Plan converts the settings into a layout plan.
func (s *Settings) Plan() layout.Plan {
	plan := layout.Plan{
		OutputRoot:       s.Output.Root,
		ToolchainVersion: s.Toolchain.Version,
		EvaluationAnchor: s.Evaluation.Anchor,
		Repositories:     append([]string(nil), s.Repositories...),
	}
	if s.Namespace.Enabled {
		plan.NamespacePrefix = s.Namespace.Prefix
	}
	return plan
}
