package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsEmptyMap(t *testing.T) {
	s := NewPayeeStore(filepath.Join(t.TempDir(), "payees.yaml"))
	payees, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, payees)
	assert.NotNil(t, payees)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payees.yaml")
	s := NewPayeeStore(path)

	in := map[string]string{
		"CORNER BAKERY ZRH": "Corner Bakery",
		"MIGROS M ZUERICH":  "Migros",
	}
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadRejectsBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payees.yaml")
	require.NoError(t, os.WriteFile(path, []byte("payees: [not a map"), 0600))

	_, err := NewPayeeStore(path).Load()
	assert.Error(t, err)
}
