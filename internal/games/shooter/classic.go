package shooter

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// ClassicID is the registry id of the fixed-formation variant.
const ClassicID = "shooter_classic"

// Classic variant tuning, in virtual pixels per tick.
const (
	classicSprite     = 64.0
	classicMaxX       = FieldW - classicSprite
	classicPlayerY    = 500.0
	classicStep       = 5.0
	classicBulletStep = 10.0
	classicHitRadius  = 30.0
	classicDrop       = 40.0
	classicFloor      = 450.0
	classicEnemies    = 6
)

// invader moves sideways and drops one row at every wall.
type invader struct {
	X, Y float64
	Step float64
}

// Classic is a six-invader shooter: enemies never leave the field, a hit
// sends them back to the top and one reaching the floor ends the run.
type Classic struct {
	rc   core.RuntimeConfig
	rng  *rand.Rand
	tick uint64

	// top-left corner of the player sprite
	playerX float64

	invaders []invader
	bullets  []Bullet

	score    int
	gameOver bool
	paused   bool
	tooSmall bool

	hold map[core.Action]int
}

// NewClassic creates the fixed-formation shooter.
func NewClassic() *Classic {
	return &Classic{}
}

func init() {
	registry.Register(ClassicID, func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Classic) ID() string { return ClassicID }

// Title returns the display name.
func (g *Classic) Title() string { return "Plane Shooter Classic" }

// invaderCount maps the difficulty preset onto the formation size.
func invaderCount() int {
	p, _ := config.ParsePreset(difficultyPreset)
	switch p {
	case config.DifficultyEasy:
		return 4
	case config.DifficultyHard:
		return 8
	default:
		return classicEnemies
	}
}

// Reset starts a new run.
func (g *Classic) Reset(rc core.RuntimeConfig) {
	g.rc = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0
	g.playerX = FieldW / 2
	g.bullets = nil
	g.invaders = make([]invader, invaderCount())
	for i := range g.invaders {
		g.invaders[i] = invader{
			X:    float64(200 + g.rng.Intn(401)),
			Y:    float64(50 + g.rng.Intn(201)),
			Step: float64(2 + g.rng.Intn(5)),
		}
	}
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.hold = make(map[core.Action]int)
}

// respawn puts a shot invader back near the top. Its direction is kept.
func (g *Classic) respawn(inv *invader) {
	inv.X = float64(200 + g.rng.Intn(401))
	inv.Y = float64(50 + g.rng.Intn(151))
}

// Step advances the simulation by one tick.
func (g *Classic) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.gameOver {
		if in.Has(core.ActionRestart) {
			rc := g.rc
			rc.Seed = g.rng.Int63()
			g.Reset(rc)
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	g.updateHold(in)
	switch {
	case g.hold[core.ActionLeft] > 0:
		g.playerX -= classicStep
	case g.hold[core.ActionRight] > 0:
		g.playerX += classicStep
	}
	g.playerX = max(0, min(classicMaxX, g.playerX))

	// one bullet per press
	if in.Has(core.ActionJump) {
		g.bullets = append(g.bullets, Bullet{X: g.playerX + 16, Y: classicPlayerY + 10})
	}

	g.moveInvaders()
	g.updateBullets()

	return core.StepResult{State: g.State()}
}

func (g *Classic) updateHold(in core.InputFrame) {
	window := g.rc.TicksFor(holdMS)
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight} {
		if in.Has(a) {
			g.hold[a] = window
		} else if g.hold[a] > 0 {
			g.hold[a]--
		}
	}
}

func (g *Classic) moveInvaders() {
	for i := range g.invaders {
		inv := &g.invaders[i]
		inv.X += inv.Step
		if inv.X > classicMaxX || inv.X < 0 {
			inv.Step = -inv.Step
			inv.Y += classicDrop
			if inv.Y > classicFloor {
				g.gameOver = true
			}
		}
	}
}

func (g *Classic) updateBullets() {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.Y -= classicBulletStep
		if b.Y < 0 {
			continue
		}
		if inv := g.invaderHit(b); inv != nil {
			g.respawn(inv)
			g.score++
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

// invaderHit returns the first invader within the hit radius of b.
func (g *Classic) invaderHit(b Bullet) *invader {
	for i := range g.invaders {
		inv := &g.invaders[i]
		if math.Hypot(b.X-inv.X, b.Y-inv.Y) < classicHitRadius {
			return inv
		}
	}
	return nil
}

// State returns the current game state.
func (g *Classic) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Render draws the field scaled below a one-line HUD.
func (g *Classic) Render(dst *core.Screen) {
	dst.Clear()

	const minW, minH = 40, 16
	g.tooSmall = dst.Width() < minW || dst.Height() < minH
	if g.tooSmall {
		core.DrawOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	v := viewport{top: 1, w: dst.Width(), h: dst.Height() - 2}

	floorY := v.top + int((classicFloor+classicSprite)*float64(v.h)/FieldH)
	for x := 0; x < dst.Width(); x++ {
		dst.SetColor(x, floorY, '-', core.ColorGray)
	}

	for _, inv := range g.invaders {
		v.fill(dst, core.RectF{X: inv.X, Y: inv.Y, W: classicSprite, H: classicSprite / 2}, '▼', core.ColorBrightGreen)
	}
	for _, b := range g.bullets {
		x, y := v.point(b.X, b.Y)
		dst.SetColor(x, y, '|', core.ColorBrightYellow)
	}
	v.fill(dst, core.RectF{X: g.playerX, Y: classicPlayerY, W: classicSprite, H: classicSprite / 2}, '▲', core.ColorBrightBlue)

	dst.DrawText(0, 0, fmt.Sprintf(" Score: %d", g.score))
	dst.DrawTextCenteredColor(dst.Height()-1, "Left/Right move  Space shoot  P pause  Q quit", core.ColorGray)

	switch {
	case g.gameOver:
		core.DrawOverlay(dst, core.ColorBrightRed, "Game Over", fmt.Sprintf("Score: %d", g.score), "Press R to restart")
	case g.paused:
		core.DrawOverlay(dst, core.ColorYellow, "Paused", "Press P to continue")
	}
}
