package workspace

import "github.com/felixgeelhaar/buildlayout/internal/domain/project"

// Plugin ids that map to project capabilities.
const (
	PluginAndroidLibrary = "com.android.library"
	PluginJava           = "java"
	PluginJavaLibrary    = "java-library"
)

var kotlinPlugins = map[string]bool{
	"kotlin":                       true,
	"kotlin-android":               true,
	"org.jetbrains.kotlin.android": true,
	"org.jetbrains.kotlin.jvm":     true,
}

// Names of the steps a plugin contributes when the manifest lists none.
const (
	DefaultJavaStep   = "compileJava"
	DefaultKotlinStep = "compileKotlin"
)

type capabilities struct {
	library bool
	java    bool
	kotlin  bool
}

func capabilitiesOf(plugins []string) capabilities {
	var c capabilities
	for _, id := range plugins {
		switch {
		case id == PluginAndroidLibrary:
			c.library = true
		case id == PluginJava || id == PluginJavaLibrary:
			c.java = true
		case kotlinPlugins[id]:
			c.kotlin = true
		}
	}
	return c
}

func hasLibraryPlugin(plugins []string) bool {
	return capabilitiesOf(plugins).library
}

// defaultSteps returns the steps implied by the applied plugins.
func (c capabilities) defaultSteps() []*project.CompileStep {
	var steps []*project.CompileStep
	if c.java {
		steps = append(steps, &project.CompileStep{Name: DefaultJavaStep, Kind: project.KindJava})
	}
	if c.kotlin {
		steps = append(steps, &project.CompileStep{Name: DefaultKotlinStep, Kind: project.KindKotlin})
	}
	return steps
}
