// Package run holds the state carried across labyrinth runs: the player's
// progression and the fracture being explored, plus the reward policy
// applied when a run or encounter ends.
package run

import "github.com/samdwyer/fracturecrawl/internal/gamedata"

// Stats are the explorer's attributes, spent with skill points in the hub.
type Stats struct {
	Strength     int
	Dexterity    int
	Intelligence int
	Vitality     int
}

// Resources are the currencies earned in fractures.
type Resources struct {
	Crystals int
	Gears    int
	Scrap    int
}

// Progression is the player's persistent state between runs.
type Progression struct {
	Level            int
	Experience       int
	ExperienceToNext int
	SkillPoints      int
	Stats            Stats
	Resources        Resources
	FractureIndex    int // Number of fractures cleared; gates unlocks
}

// NewProgression returns a level 1 explorer with no resources.
func NewProgression() *Progression {
	return &Progression{
		Level:            1,
		Experience:       0,
		ExperienceToNext: 100,
		Stats: Stats{
			Strength:     10,
			Dexterity:    10,
			Intelligence: 10,
			Vitality:     10,
		},
	}
}

// Context is threaded through a run: who is exploring and where.
// The labyrinth only reads Fracture.Difficulty and applies rewards to Player.
type Context struct {
	Player   *Progression
	Fracture gamedata.FractureDef
}

// NewContext builds a run context, defaulting missing fields the way the
// hub would.
func NewContext(player *Progression, fracture gamedata.FractureDef) *Context {
	if player == nil {
		player = NewProgression()
	}
	if fracture.ID == "" {
		fracture = gamedata.UnknownFracture
	}
	return &Context{Player: player, Fracture: fracture}
}
