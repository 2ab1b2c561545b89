package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRecall(t *testing.T) {
	h, err := Open(t.TempDir())
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Add("emulator-5554", "getprop ro.product.model"))
	require.NoError(t, h.Add("emulator-5554", "pm list packages -3"))
	require.NoError(t, h.Add("R58M123ABCD", "dumpsys battery"))

	entries, err := h.Recent(RecallLimit)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// oldest first, like a shell history listing
	assert.Equal(t, "getprop ro.product.model", entries[0].Command)
	assert.Equal(t, "dumpsys battery", entries[2].Command)
	assert.Equal(t, "R58M123ABCD", entries[2].Serial)
	assert.NotEmpty(t, entries[0].ExecutedAt)

	cmd, err := h.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "pm list packages -3", cmd)
}

func TestGetOutOfRange(t *testing.T) {
	h, err := Open(t.TempDir())
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Add("emulator-5554", "id"))

	_, err = h.Get(0)
	assert.Error(t, err)
	_, err = h.Get(2)
	assert.Error(t, err)
}

func TestRecentWindowKeepsNewest(t *testing.T) {
	h, err := Open(t.TempDir())
	require.NoError(t, err)
	defer h.Close()

	for i := 1; i <= 60; i++ {
		require.NoError(t, h.Add("emulator-5554", fmt.Sprintf("echo %d", i)))
	}

	entries, err := h.Recent(RecallLimit)
	require.NoError(t, err)
	require.Len(t, entries, RecallLimit)

	// the window starts at entry 11 and ends at entry 60
	assert.Equal(t, "echo 11", entries[0].Command)
	assert.Equal(t, "echo 60", entries[len(entries)-1].Command)
}

func TestHistoryPersistsAcrossOpens(t *testing.T) {
	dir := t.TempDir()

	h, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, h.Add("emulator-5554", "uptime"))
	require.NoError(t, h.Close())

	h, err = Open(dir)
	require.NoError(t, err)
	defer h.Close()

	entries, err := h.Recent(RecallLimit)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "uptime", entries[0].Command)
}
