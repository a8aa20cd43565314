package systems

import (
	"encoding/json"
	"fmt"
	"log"

	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/quasilyte/gdata"
)

// AppName is the gdata namespace used by the lab and the simulator.
const AppName = "doomerang-combat"

const (
	itemSettings    = "settings"
	itemAttackTable = "attack_table"
)

// SavedSettings represents the lab settings stored on disk
type SavedSettings struct {
	ShowHitboxes bool `json:"showHitboxes"`
	LogCombat    bool `json:"logCombat"`
}

var gdataManager *gdata.Manager
var gdataInitialized bool

// InitPersistence opens the gdata store for appName.
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
		return err
	}
	gdataManager = m
	gdataInitialized = true
	return nil
}

func persistenceReady() bool {
	return gdataInitialized && gdataManager != nil
}

// LoadSettings loads settings from disk. It returns nil when nothing was
// saved yet.
func LoadSettings() (*SavedSettings, error) {
	if !persistenceReady() {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(itemSettings)
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		log.Printf("Warning: Could not parse saved settings: %v", err)
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves the current debug toggles.
func SaveSettings() error {
	if !persistenceReady() {
		return nil
	}

	data, err := json.Marshal(SavedSettings{
		ShowHitboxes: cfg.Debug.ShowHitboxes,
		LogCombat:    cfg.Debug.LogCombat,
	})
	if err != nil {
		log.Printf("Warning: Could not serialize settings: %v", err)
		return err
	}
	if err := gdataManager.SaveItem(itemSettings, data); err != nil {
		log.Printf("Warning: Could not save settings: %v", err)
		return err
	}
	return nil
}

// ApplySavedSettings copies loaded settings into the debug config.
func ApplySavedSettings(saved *SavedSettings) {
	if saved == nil {
		return
	}
	cfg.Debug.ShowHitboxes = saved.ShowHitboxes
	cfg.Debug.LogCombat = saved.LogCombat
}

// LoadAttackOverrides returns the attack table saved from the lab, or false
// when none is stored or it no longer parses.
func LoadAttackOverrides() (cfg.AttackTable, bool) {
	if !persistenceReady() {
		return cfg.AttackTable{}, false
	}

	data, err := gdataManager.LoadItem(itemAttackTable)
	if err != nil {
		log.Printf("Warning: Could not load attack overrides: %v", err)
		return cfg.AttackTable{}, false
	}
	if len(data) == 0 {
		return cfg.AttackTable{}, false
	}

	table, err := cfg.ParseAttackTable(data)
	if err != nil {
		log.Printf("Warning: Ignoring saved attack table: %v", err)
		return cfg.AttackTable{}, false
	}
	return table, true
}

// SaveAttackOverrides stores table as the lab's attack overrides.
func SaveAttackOverrides(table cfg.AttackTable) error {
	if !persistenceReady() {
		return nil
	}

	data, err := table.Marshal()
	if err != nil {
		return err
	}
	if err := gdataManager.SaveItem(itemAttackTable, data); err != nil {
		return fmt.Errorf("save attack overrides: %w", err)
	}
	return nil
}

// ClearAttackOverrides removes any saved attack table.
func ClearAttackOverrides() error {
	if !persistenceReady() {
		return nil
	}
	if err := gdataManager.SaveItem(itemAttackTable, nil); err != nil {
		log.Printf("Warning: Could not clear attack overrides: %v", err)
		return err
	}
	return nil
}
