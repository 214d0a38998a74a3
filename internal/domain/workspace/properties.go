package workspace

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// PropertiesFileName is read from each project directory when present.
const PropertiesFileName = "project.properties"

// Properties are per-project defaults kept next to the sources.
type Properties struct {
	Namespace string
	JVMTarget string
}

// ParseProperties reads a key=value properties file.
func ParseProperties(data []byte) (Properties, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, data)
	if err != nil {
		return Properties{}, fmt.Errorf("failed to parse %s: %w", PropertiesFileName, err)
	}
	sec := cfg.Section(ini.DefaultSection)
	return Properties{
		Namespace: sec.Key("namespace").String(),
		JVMTarget: sec.Key("jvm.target").String(),
	}, nil
}
