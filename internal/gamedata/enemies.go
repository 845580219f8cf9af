package gamedata

import "github.com/gdamore/tcell/v2"

// EnemyDef defines an enemy archetype loaded from JSON.
type EnemyDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "tar_crawler")
	Name        string `json:"name"`        // Display name
	Tier        string `json:"tier"`        // Fracture enemy type this archetype fills ("basic", "elite", "boss")
	Glyph       string `json:"glyph"`       // Single character for rendering
	Color       string `json:"color"`       // Hex color code
	HP          int    `json:"hp"`          // Starting and maximum health
	Damage      int    `json:"damage"`      // Damage dealt per blow in combat
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency within a fracture
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return rune(e.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorRed
	}
	return color
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
