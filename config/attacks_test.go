package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/automoto/doomerang-combat/shared/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedAttackTable(t *testing.T) {
	table := DefaultAttackTable()
	require.NoError(t, table.Validate())

	assert.Equal(t, []int{1, 2, 3}, table.ComboLimits)
	assert.Equal(t, Punch01, table.ComboState(0))
	assert.Equal(t, Kick01, table.ComboState(2))
	assert.Equal(t, Kick01, table.ComboState(7), "clamped to the last stage")
	assert.Equal(t, Punch01, table.ComboState(-1))
	assert.Equal(t, []StateID{Kick01, Punch01, Punch02}, table.AttackStates())
}

func TestAttackTable_Command(t *testing.T) {
	table, err := ParseAttackTable([]byte(`
combo: [punch01]
attacks:
  punch01:
    thresholds: {startup: 0.8, active: 0.3, recovery: 0.5}
    additional_window: -1
    flags: 3
    sub_id: 4
    layer: 2
`))
	require.NoError(t, err)

	cmd, ok := table.Command(Punch01)
	require.True(t, ok)
	assert.Equal(t, "punch01", cmd.Name)
	assert.Equal(t, timeline.Thresholds{StartupEnd: 0.8, ActiveEnd: 0.8, RecoveryEnd: 0.8}, cmd.Thresholds)
	assert.Equal(t, 0.0, cmd.AdditionalWindow)
	assert.Equal(t, FlagHitbox|FlagHeavy, cmd.Flags)
	assert.Equal(t, 4, cmd.SubID)
	assert.Equal(t, 2, cmd.Layer)

	_, ok = table.Command(Idle)
	assert.False(t, ok)
}

func TestParseAttackTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "bad yaml", data: "combo: [", want: "config: unmarshal attack table"},
		{name: "empty combo", data: "attacks: {}", want: "empty combo"},
		{name: "unknown combo state", data: "combo: [uppercut]", want: `unknown state "uppercut"`},
		{name: "missing timing", data: "combo: [punch01]", want: `no timing for "punch01"`},
		{
			name: "unknown attack",
			data: "combo: [punch01]\nattacks: {punch01: {}, spin: {}}",
			want: `attack "spin": unknown state`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAttackTable([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAttackTable_MarshalKeepsTimings(t *testing.T) {
	table := DefaultAttackTable()
	data, err := table.Marshal()
	require.NoError(t, err)

	back, err := ParseAttackTable(data)
	require.NoError(t, err)
	assert.Equal(t, table, back)
}

func TestLoadAttackTable_MissingFile(t *testing.T) {
	_, err := LoadAttackTable(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attacks.yaml")
	require.NoError(t, os.WriteFile(path, defaultAttackTable, 0o644))

	w, err := WatchAttackTable(path)
	require.NoError(t, err)
	defer w.Close()

	edited := "combo_limits: [4]\ncombo: [kick01]\nattacks:\n  kick01:\n    additional_window: 0.5\n"
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	select {
	case table := <-w.Tables:
		assert.Equal(t, []int{4}, table.ComboLimits)
		assert.Equal(t, 0.5, table.Attacks["kick01"].AdditionalWindow)
	case err := <-w.Errors:
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcher_ReportsBrokenTable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attacks.yaml")
	require.NoError(t, os.WriteFile(path, defaultAttackTable, 0o644))

	w, err := WatchAttackTable(path)
	require.NoError(t, err)
	defer w.Close()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.yaml"), []byte("x: ["), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("combo: ["), 0o644))

	select {
	case err := <-w.Errors:
		assert.Contains(t, err.Error(), "attacks.yaml")
	case table := <-w.Tables:
		t.Fatalf("broken table was published: %+v", table)
	case <-time.After(5 * time.Second):
		t.Fatal("no error after broken write")
	}
}
