package systems

import (
	"fmt"
	"testing"
	"time"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", home)
	t.Cleanup(func() {
		gdataManager = nil
		gdataInitialized = false
	})

	if err := InitPersistence(fmt.Sprintf("combat_test_%d", time.Now().UnixNano())); err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
}

func TestPersistenceDisabledIsNoop(t *testing.T) {
	gdataManager = nil
	gdataInitialized = false

	assert.NoError(t, SaveAttackOverrides(cfg.DefaultAttackTable()))
	_, ok := LoadAttackOverrides()
	assert.False(t, ok)

	settings, err := LoadSettings()
	assert.NoError(t, err)
	assert.Nil(t, settings)
}

func TestAttackOverridesRoundTrip(t *testing.T) {
	openTestStore(t)

	_, ok := LoadAttackOverrides()
	assert.False(t, ok, "nothing saved yet")

	table := cfg.DefaultAttackTable()
	kick := table.Attacks["kick01"]
	kick.AdditionalWindow = 0.5
	table.Attacks["kick01"] = kick
	require.NoError(t, SaveAttackOverrides(table))

	loaded, ok := LoadAttackOverrides()
	require.True(t, ok)
	assert.Equal(t, 0.5, loaded.Attacks["kick01"].AdditionalWindow)
	assert.Equal(t, table.Combo, loaded.Combo)

	require.NoError(t, ClearAttackOverrides())
	_, ok = LoadAttackOverrides()
	assert.False(t, ok)
}

func TestSettingsRoundTrip(t *testing.T) {
	openTestStore(t)
	prev := cfg.Debug
	t.Cleanup(func() { cfg.Debug = prev })

	cfg.Debug.ShowHitboxes = true
	cfg.Debug.LogCombat = false
	require.NoError(t, SaveSettings())

	cfg.Debug.ShowHitboxes = false
	saved, err := LoadSettings()
	require.NoError(t, err)
	require.NotNil(t, saved)
	ApplySavedSettings(saved)
	assert.True(t, cfg.Debug.ShowHitboxes)
}
