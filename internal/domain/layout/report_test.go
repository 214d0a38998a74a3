package layout

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleLayout() *Layout {
	return &Layout{
		RunID:           "6f1c1a9e-1f7e-4a43-9d55-1c1f0d6f8a10",
		Root:            "android",
		OutputRoot:      "/work/build",
		Toolchain:       "17",
		EvaluationOrder: []string{"android", "app", "pluginA"},
		Projects: []ProjectLayout{
			{Name: "app", OutputDir: "/work/build/app"},
			{
				Name:           "pluginA",
				OutputDir:      "/work/build/pluginA",
				Namespace:      "dev.flutter.plugins.pluginA",
				EvaluatedAfter: []string{"app"},
				CompileSteps:   []StepLayout{{Name: "compileJava", Kind: "java", Source: "17", Target: "17"}},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"yaml": FormatYAML, "YML": FormatYAML, "json": FormatJSON, "toml": FormatTOML} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestLayout_EncodeYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleLayout().Encode(&buf, FormatYAML))

	out := buf.String()
	assert.Contains(t, out, "output_root: /work/build\n")
	assert.Contains(t, out, "evaluated_after:\n")
	assert.NotContains(t, out, "repositories", "empty lists are omitted")

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "android", decoded["root"])
}

func TestLayout_EncodeJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleLayout().Encode(&buf, FormatJSON))

	var decoded struct {
		Projects []struct {
			Name         string `json:"name"`
			CompileSteps []struct {
				Target string `json:"target"`
			} `json:"compile_steps"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.Projects, 2)
	assert.Equal(t, "17", decoded.Projects[1].CompileSteps[0].Target)
}

func TestLayout_EncodeTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleLayout().Encode(&buf, FormatTOML))
	assert.Contains(t, buf.String(), "[[projects]]")

	var decoded map[string]interface{}
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "/work/build", decoded["output_root"])
}

func TestLayout_EncodeUnknownFormat(t *testing.T) {
	assert.Error(t, sampleLayout().Encode(&bytes.Buffer{}, Format("xml")))
}
