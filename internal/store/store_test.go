package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	st, err := New(Config{Type: "none"})
	require.NoError(t, err)
	assert.Nil(t, st)

	st, err = New(Config{Type: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, st)

	st, err = New(Config{Type: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "h.db")})
	require.NoError(t, err)
	require.NotNil(t, st)
	assert.NoError(t, st.Close())

	_, err = New(Config{Type: "qdrant"})
	assert.Error(t, err)
}
