package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/partview/internal/engine/scene"
)

func TestExclusiveSelection(t *testing.T) {
	s := &Exclusive{}
	_, ok := s.Active()
	assert.False(t, ok)

	s.Apply(2)
	assert.Equal(t, []scene.MeshID{2}, s.Selected())

	s.Apply(4)
	assert.Equal(t, []scene.MeshID{4}, s.Selected())
	assert.False(t, s.IsSelected(2))

	// Re-picking the selected mesh deselects it.
	s.Apply(4)
	assert.Empty(t, s.Selected())
	_, ok = s.Active()
	assert.False(t, ok)
}

func TestToggleSelection(t *testing.T) {
	s := &Toggle{}
	s.Apply(3)
	s.Apply(1)
	s.Apply(5)
	assert.Equal(t, []scene.MeshID{1, 3, 5}, s.Selected())

	active, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, scene.MeshID(5), active)

	// Deselecting the active mesh falls back to the previous one.
	s.Apply(5)
	active, _ = s.Active()
	assert.Equal(t, scene.MeshID(1), active)
	assert.False(t, s.IsSelected(5))

	s.Clear()
	assert.Empty(t, s.Selected())
}

func TestNewSelectionModel(t *testing.T) {
	m, err := NewSelectionModel("toggle")
	require.NoError(t, err)
	assert.Equal(t, "toggle", m.Name())

	m, err = NewSelectionModel("")
	require.NoError(t, err)
	assert.Equal(t, "exclusive", m.Name())

	_, err = NewSelectionModel("lasso")
	assert.Error(t, err)
}
