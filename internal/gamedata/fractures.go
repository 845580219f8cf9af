package gamedata

import "slices"

// FractureDef describes a dungeon and its difficulty.
type FractureDef struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Difficulty        int      `json:"difficulty"`        // Scales the enemy population
	UnlockRequirement int      `json:"unlockRequirement"` // Fracture index needed to enter
	EnemyTypes        []string `json:"enemyTypes"`        // Enemy tiers that may spawn
	Background        string   `json:"background"`
}

// Unlocked reports whether a player with the given fracture index may enter.
func (f FractureDef) Unlocked(fractureIndex int) bool {
	return fractureIndex >= f.UnlockRequirement
}

// AllowsTier reports whether enemies of the given tier spawn here.
func (f FractureDef) AllowsTier(tier string) bool {
	return slices.Contains(f.EnemyTypes, tier)
}

// UnknownFracture is used when a run starts without a fracture descriptor.
var UnknownFracture = FractureDef{
	ID:         "unknown",
	Name:       "Unknown Fracture",
	Difficulty: 1,
	EnemyTypes: []string{"basic"},
}

// FracturesFile represents the structure of fractures.json.
type FracturesFile struct {
	Fractures []FractureDef `json:"fractures"`
}

// LoadFractures loads fracture definitions from the embedded fractures.json file.
func LoadFractures() ([]FractureDef, error) {
	file, err := Load[FracturesFile]("fractures.json")
	if err != nil {
		return nil, err
	}
	return file.Fractures, nil
}
