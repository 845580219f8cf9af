package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/fracturecrawl/internal/combat"
	"github.com/samdwyer/fracturecrawl/internal/entity"
	"github.com/samdwyer/fracturecrawl/internal/gamedata"
	"github.com/samdwyer/fracturecrawl/internal/labyrinth"
	"github.com/samdwyer/fracturecrawl/internal/run"
	"github.com/samdwyer/fracturecrawl/internal/world"
)

// Glyphs for things that have no archetype data behind them.
const (
	PlayerGlyph = '@'
	ExitGlyph   = '>'
	FogGlyph    = '░'
)

// hudRows is the number of lines above the maze.
const hudRows = 2

// hubListRow is the first line of the hub's fracture list.
const hubListRow = 5

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleExplored = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFog      = tcell.StyleDefault.Foreground(tcell.ColorNavy)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleExit     = tcell.StyleDefault.Foreground(tcell.ColorLime).Bold(true)
	styleLocked   = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// MazeOrigin returns the screen cell where maze cell (0,0) is drawn.
// The maze is centred horizontally below the HUD.
func (r *Renderer) MazeOrigin(mazeWidth int) (x, y int) {
	sw, _ := r.screen.Size()
	return max(0, (sw-mazeWidth)/2), hudRows
}

// RenderLabyrinth draws the maze under fog, visible enemies, the exit,
// the player and the HUD.
func (r *Renderer) RenderLabyrinth(l *labyrinth.Labyrinth, p *run.Progression, msg string) {
	r.screen.Clear()

	r.drawHUD(l, p)

	ox, oy := r.MazeOrigin(l.Width())
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			ch, style := cellGlyph(l.CellAt(world.Position{X: x, Y: y}))
			r.screen.SetContent(ox+x, oy+y, ch, style)
		}
	}

	for _, e := range l.Enemies() {
		if !l.EnemyVisible(e) {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.Color()).Bold(true)
		r.screen.SetGlyph(ox+e.X, oy+e.Y, e.Symbol(), style)
	}

	exit := l.Exit()
	r.screen.SetContent(ox+exit.X, oy+exit.Y, ExitGlyph, styleExit)

	player := l.Player()
	r.screen.SetContent(ox+player.X, oy+player.Y, PlayerGlyph, stylePlayer)

	_, sh := r.screen.Size()
	r.RenderMessage(msg, sh-2)
	r.screen.DrawText(0, sh-1, "arrows/wasd move  r reveal  e escape  q quit", styleDim)

	r.screen.Show()
}

func (r *Renderer) drawHUD(l *labyrinth.Labyrinth, p *run.Progression) {
	fracture := l.Context().Fracture
	line := fmt.Sprintf("%s  Lv %d  XP %d/%d  Crystals %d  Gears %d  Explored %d",
		fracture.Name, p.Level, p.Experience, p.ExperienceToNext,
		p.Resources.Crystals, p.Resources.Gears, l.ExploredCount())
	r.screen.DrawText(0, 0, line, styleText)

	if l.RevealMode() {
		r.screen.DrawText(0, 1, fmt.Sprintf("Reveal mode: %d enemies", len(l.Enemies())), styleTitle)
	}
}

// RenderHub draws the fracture selection screen with the explorer's
// progression and attributes.
func (r *Renderer) RenderHub(fractures []gamedata.FractureDef, p *run.Progression, msg string) {
	r.screen.Clear()

	r.screen.DrawText(0, 0, "FRACTURE HUB", styleTitle)
	r.screen.DrawText(0, 1, fmt.Sprintf("Level %d  XP %d/%d  Skill points %d  Cleared %d",
		p.Level, p.Experience, p.ExperienceToNext, p.SkillPoints, p.FractureIndex), styleText)
	r.screen.DrawText(0, 2, fmt.Sprintf("Crystals %d  Gears %d  Scrap %d",
		p.Resources.Crystals, p.Resources.Gears, p.Resources.Scrap), styleText)
	r.screen.DrawText(0, 3, fmt.Sprintf("STR %d  DEX %d  INT %d  VIT %d",
		p.Stats.Strength, p.Stats.Dexterity, p.Stats.Intelligence, p.Stats.Vitality), styleDim)

	for i, f := range fractures {
		y := hubListRow + i
		x := r.screen.DrawText(0, y, fmt.Sprintf("%d) %s", i+1, f.Name), styleText)
		if f.Unlocked(p.FractureIndex) {
			x = r.screen.DrawText(x+2, y, fmt.Sprintf("difficulty %d", f.Difficulty), styleDim)
			if f.Background != "" {
				r.screen.DrawText(x+2, y, f.Background, styleDim)
			}
		} else {
			r.screen.DrawText(x+2, y, fmt.Sprintf("locked: clear %d fractures", f.UnlockRequirement), styleLocked)
		}
	}

	_, sh := r.screen.Size()
	r.RenderMessage(msg, sh-2)
	r.screen.DrawText(0, sh-1, fmt.Sprintf("1-%d enter fracture  q quit", len(fractures)), styleDim)

	r.screen.Show()
}

// RenderCombat draws an ongoing duel against foe.
func (r *Renderer) RenderCombat(d *combat.Duel, foe *entity.Enemy) {
	r.screen.Clear()

	r.screen.DrawText(0, 0, "COMBAT", styleTitle)

	r.screen.SetContent(0, 2, PlayerGlyph, stylePlayer)
	r.screen.DrawText(2, 2, fmt.Sprintf("%s  HP %d/%d", d.Player.GetName(), d.Player.GetHP(), d.Player.GetMaxHP()), styleText)

	r.screen.SetGlyph(0, 3, foe.Symbol(), tcell.StyleDefault.Foreground(foe.Color()).Bold(true))
	r.screen.DrawText(2, 3, fmt.Sprintf("%s  HP %d/%d", d.Enemy.GetName(), d.Enemy.GetHP(), d.Enemy.GetMaxHP()), styleText)

	r.RenderMessage(d.LastMessage, 5)

	_, sh := r.screen.Size()
	r.screen.DrawText(0, sh-1, "space attack  esc flee", styleDim)

	r.screen.Show()
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	r.screen.DrawText(0, y, msg, styleText)
}

func cellGlyph(kind labyrinth.CellKind) (rune, tcell.Style) {
	switch kind {
	case labyrinth.CellExplored:
		return world.TilePath.Rune(), styleExplored
	case labyrinth.CellFog:
		return FogGlyph, styleFog
	default:
		return world.TileWall.Rune(), styleWall
	}
}
