package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BUILDLAYOUT_"

const maxSettingsFileSize = 1024 * 1024 // 1MB

const defaults = `
output:
  root: ../../build
toolchain:
  version: "17"
evaluation:
  anchor: app
repositories:
  - google
  - mavenCentral
namespace:
  enabled: true
  prefix: dev.flutter.plugins
log:
  level: info
  format: text
`

// Load builds Settings from, in increasing precedence:
//  1. built-in defaults
//  2. the YAML file at path, if path is not empty
//  3. environment variables
//
// Environment variables drop the BUILDLAYOUT_ prefix, are lowercased and
// split on the first underscore:
//
//	BUILDLAYOUT_OUTPUT_ROOT       -> output.root
//	BUILDLAYOUT_TOOLCHAIN_VERSION -> toolchain.version
//	BUILDLAYOUT_REPOSITORIES      -> repositories (comma separated)
func Load(fsys ports.FileSystem, path string) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider([]byte(defaults)), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default settings: %w", err)
	}

	if path != "" {
		content, err := readFile(fsys, path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load settings file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}
	return &s, nil
}

func readFile(fsys ports.FileSystem, path string) ([]byte, error) {
	if fsys == nil {
		return nil, fmt.Errorf("no filesystem to read settings file %s", path)
	}
	content, err := fsys.ReadFile(ports.ExpandPath(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("settings file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}
	if len(content) > maxSettingsFileSize {
		return nil, fmt.Errorf("settings file too large: %d bytes (max %d)", len(content), maxSettingsFileSize)
	}
	return content, nil
}

// envKey maps BUILDLAYOUT_SECTION_FIELD_NAME to section.field_name.
func envKey(key, value string) (string, interface{}) {
	lower := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		if lower == "repositories" {
			return lower, splitList(value)
		}
		return lower, value
	}
	return parts[0] + "." + parts[1], value
}

func splitList(value string) []string {
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
