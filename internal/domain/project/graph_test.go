package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph(t *testing.T) {
	t.Parallel()

	root := New("android", "/w/android")
	a := New("pluginA", "/w/android/pluginA")
	b := New("pluginB", "/w/android/pluginB")

	g, err := NewGraph(root, a, b)
	require.NoError(t, err)

	assert.Same(t, root, g.Root())
	assert.Equal(t, []Node{a, b}, g.Subprojects())
	assert.Equal(t, []string{"android", "pluginA", "pluginB"}, g.Names())
	assert.Equal(t, 3, g.Len())
	assert.Zero(t, g.Order().Len())

	n, ok := g.Lookup(":pluginA")
	require.True(t, ok)
	assert.Same(t, a, n)

	_, ok = g.Lookup("pluginC")
	assert.False(t, ok)
}

func TestNewGraph_DuplicateNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		subs []Node
	}{
		{"two subprojects", []Node{New("a", ""), New("a", "")}},
		{"subproject shadows root", []Node{New("root", "")}},
		{"path notation collides", []Node{New(":a", ""), New("a", "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewGraph(New("root", ""), tt.subs...)
			assert.ErrorIs(t, err, ErrDuplicateProjectName)
		})
	}
}

func TestGraph_SubprojectsIsACopy(t *testing.T) {
	t.Parallel()

	g, err := NewGraph(New("root", ""), New("a", ""))
	require.NoError(t, err)

	subs := g.Subprojects()
	subs[0] = New("b", "")
	assert.Equal(t, "a", g.Subprojects()[0].Name())
}
