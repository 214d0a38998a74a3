package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// hclManifest is the block layout of buildlayout.hcl:
//
//	root "android" {
//	  dir = "android"
//	}
//
//	project "camera-plugin" {
//	  plugins   = ["com.android.library", "java"]
//	  namespace = "dev.flutter.plugins.${replace("camera-plugin", "-", "_")}"
//	  compile_step "compileReleaseJavaWithJavac" {
//	    kind   = "java"
//	    target = "11"
//	  }
//	}
type hclManifest struct {
	Root     hclProject   `hcl:"root,block"`
	Projects []hclProject `hcl:"project,block"`
}

type hclProject struct {
	Name      string    `hcl:"name,label"`
	Dir       string    `hcl:"dir,optional"`
	OutputDir string    `hcl:"output_dir,optional"`
	Plugins   []string  `hcl:"plugins,optional"`
	Namespace string    `hcl:"namespace,optional"`
	Toolchain string    `hcl:"java_toolchain,optional"`
	Steps     []hclStep `hcl:"compile_step,block"`
}

type hclStep struct {
	Name   string `hcl:"name,label"`
	Kind   string `hcl:"kind"`
	Source string `hcl:"source,optional"`
	Target string `hcl:"target,optional"`
}

// ParseHCL decodes an HCL manifest. filename is used in diagnostics and
// its directory is available to expressions as manifest_dir.
func ParseHCL(filename string, data []byte) (*Manifest, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("hcl: %w", diags)
	}

	var parsed hclManifest
	if diags := gohcl.DecodeBody(file.Body, evalContext(filename), &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("hcl: %w", diags)
	}

	m := &Manifest{Root: parsed.Root.spec()}
	for _, p := range parsed.Projects {
		m.Projects = append(m.Projects, p.spec())
	}
	return m, nil
}

func evalContext(filename string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"manifest_dir": cty.StringVal(filepath.Dir(filename)),
		},
		Functions: map[string]function.Function{
			"format":  stdlib.FormatFunc,
			"join":    stdlib.JoinFunc,
			"lower":   stdlib.LowerFunc,
			"replace": stdlib.ReplaceFunc,
			"upper":   stdlib.UpperFunc,
		},
	}
}

func (p hclProject) spec() ProjectSpec {
	spec := ProjectSpec{
		Name:      p.Name,
		Dir:       p.Dir,
		OutputDir: p.OutputDir,
		Plugins:   p.Plugins,
		Namespace: p.Namespace,
		Toolchain: p.Toolchain,
	}
	for _, s := range p.Steps {
		spec.CompileSteps = append(spec.CompileSteps, StepSpec(s))
	}
	return spec
}
