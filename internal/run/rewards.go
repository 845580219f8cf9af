package run

// Enemy population scaling per fracture difficulty.
const (
	BaseEnemyCount          = 5
	EnemiesPerDifficulty    = 2
	ExitCrystals            = 10
	ExitGears               = 5
	ExitExperience          = 50
	EscapeCrystals          = 5
	EscapeGears             = 2
	VictoryExperience       = 20
	VictoryCrystals         = 3
	VictoryGears            = 1
	DefeatResourceRetention = 0.7
)

// EnemyCount returns the number of enemies spawned at a difficulty.
func EnemyCount(difficulty int) int {
	return BaseEnemyCount + difficulty*EnemiesPerDifficulty
}

// ApplyExitReward grants the reward for reaching a labyrinth exit and
// advances the fracture index. At most one level is gained per call even
// when the surplus would cover more.
func ApplyExitReward(p *Progression) (leveledUp bool) {
	p.Resources.Crystals += ExitCrystals
	p.Resources.Gears += ExitGears
	p.Experience += ExitExperience
	p.FractureIndex++

	if p.Experience < p.ExperienceToNext {
		return false
	}
	p.Level++
	p.Experience -= p.ExperienceToNext
	p.ExperienceToNext = p.Level * 100
	p.SkillPoints++
	return true
}

// ApplyEscapeReward grants the smaller reward for abandoning a run.
// Difficulty progression is untouched.
func ApplyEscapeReward(p *Progression) {
	p.Resources.Crystals += EscapeCrystals
	p.Resources.Gears += EscapeGears
}

// ApplyCombatVictory grants the reward for defeating an enemy. Combat
// level-ups grow the threshold by 20% rather than resetting it to level*100.
func ApplyCombatVictory(p *Progression) (leveledUp bool) {
	p.Experience += VictoryExperience
	p.Resources.Crystals += VictoryCrystals
	p.Resources.Gears += VictoryGears

	if p.Experience < p.ExperienceToNext {
		return false
	}
	p.Level++
	p.Experience -= p.ExperienceToNext
	p.ExperienceToNext = p.ExperienceToNext * 12 / 10
	p.SkillPoints++
	return true
}

// ApplyCombatDefeat keeps 70% of crystals and gears, rounded down.
func ApplyCombatDefeat(p *Progression) {
	p.Resources.Crystals = p.Resources.Crystals * 7 / 10
	p.Resources.Gears = p.Resources.Gears * 7 / 10
}
