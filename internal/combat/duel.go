// Package combat provides the damage-exchange duel fought when the explorer
// runs into an enemy in the labyrinth.
package combat

import "fmt"

// Explorer defaults for every duel. Health does not carry between fights.
const (
	ExplorerHP     = 100
	ExplorerDamage = 15
)

// Combatant is the interface for any entity that can take part in a duel.
type Combatant interface {
	GetName() string
	IsAlive() bool
	GetHP() int
	GetMaxHP() int
	TakeDamage(amount int) int // Returns actual damage taken
}

// Outcome is how a duel stands.
type Outcome int

const (
	// OutcomeOngoing - neither side has fallen
	OutcomeOngoing Outcome = iota
	// OutcomeVictory - the enemy was defeated
	OutcomeVictory
	// OutcomeDefeat - the explorer was defeated
	OutcomeDefeat
	// OutcomeFled - the explorer left the fight
	OutcomeFled
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeOngoing:
		return "ongoing"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Fighter is the explorer's side of a duel.
type Fighter struct {
	Name      string
	HP, MaxHP int
	Damage    int
}

// NewExplorer returns the explorer at full health.
func NewExplorer() *Fighter {
	return &Fighter{
		Name:   "Explorer",
		HP:     ExplorerHP,
		MaxHP:  ExplorerHP,
		Damage: ExplorerDamage,
	}
}

// GetName returns the fighter's name.
func (f *Fighter) GetName() string { return f.Name }

// IsAlive returns true if the fighter has HP remaining.
func (f *Fighter) IsAlive() bool { return f.HP > 0 }

// GetHP returns current HP.
func (f *Fighter) GetHP() int { return f.HP }

// GetMaxHP returns maximum HP.
func (f *Fighter) GetMaxHP() int { return f.MaxHP }

// TakeDamage reduces HP and returns actual damage taken.
func (f *Fighter) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, f.HP)
	f.HP -= actual
	return actual
}

var _ Combatant = (*Fighter)(nil)

// Round records one exchange of blows.
type Round struct {
	PlayerDamage int
	EnemyDamage  int
	Message      string
}

// Duel is a single fight between the explorer and one enemy.
type Duel struct {
	Player      *Fighter
	Enemy       Combatant
	EnemyDamage int
	Rounds      int
	Outcome     Outcome
	LastMessage string
}

// NewDuel starts a duel. enemyDamage is what the enemy deals per blow.
func NewDuel(player *Fighter, enemy Combatant, enemyDamage int) *Duel {
	return &Duel{
		Player:      player,
		Enemy:       enemy,
		EnemyDamage: enemyDamage,
		Outcome:     OutcomeOngoing,
		LastMessage: "Combat begins!",
	}
}

// Exchange trades one blow each, explorer first. An enemy killed by the
// explorer's blow does not strike back. Does nothing once the duel is over.
func (d *Duel) Exchange() Round {
	if d.Outcome != OutcomeOngoing {
		return Round{Message: d.LastMessage}
	}

	d.Rounds++
	var r Round

	r.PlayerDamage = d.Enemy.TakeDamage(d.Player.Damage)
	if !d.Enemy.IsAlive() {
		d.Outcome = OutcomeVictory
		r.Message = fmt.Sprintf("%s deals %d damage. %s is defeated!", d.Player.GetName(), r.PlayerDamage, d.Enemy.GetName())
		d.LastMessage = r.Message
		return r
	}

	r.EnemyDamage = d.Player.TakeDamage(d.EnemyDamage)
	if !d.Player.IsAlive() {
		d.Outcome = OutcomeDefeat
		r.Message = fmt.Sprintf("%s deals %d damage. You were defeated!", d.Enemy.GetName(), r.EnemyDamage)
		d.LastMessage = r.Message
		return r
	}

	r.Message = fmt.Sprintf("You deal %d damage, %s deals %d.", r.PlayerDamage, d.Enemy.GetName(), r.EnemyDamage)
	d.LastMessage = r.Message
	return r
}

// Flee ends an ongoing duel without a winner.
func (d *Duel) Flee() {
	if d.Outcome == OutcomeOngoing {
		d.Outcome = OutcomeFled
		d.LastMessage = "Escaping combat..."
	}
}

// Over reports whether the duel has ended.
func (d *Duel) Over() bool {
	return d.Outcome != OutcomeOngoing
}
