package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	store, err := NewLocalStorage(filepath.Join(t.TempDir(), "reports"))
	require.NoError(t, err)

	at := time.Date(2025, 6, 30, 10, 0, 0, 0, time.UTC)
	rel, err := store.Save([]byte("first"), "ageing_report_1_2025-06-30.xlsx", "ageing", at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("ageing", "2025", "06", "ageing_report_1_2025-06-30.xlsx"), rel)
	assert.FileExists(t, store.GetFullPath(rel))

	// same report on the same day replaces the previous file
	rel2, err := store.Save([]byte("second"), "ageing_report_1_2025-06-30.xlsx", "ageing", at)
	require.NoError(t, err)
	assert.Equal(t, rel, rel2)

	data, err := os.ReadFile(store.GetFullPath(rel))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.NoFileExists(t, store.GetFullPath(rel)+".tmp")
}

func TestLocalStorage_SaveRejectsPaths(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save([]byte("x"), "../escape.pdf", "ageing", time.Now())
	assert.Error(t, err)

	_, err = store.Save([]byte("x"), "", "ageing", time.Now())
	assert.Error(t, err)
}
