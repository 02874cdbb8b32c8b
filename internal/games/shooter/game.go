// Package shooter implements a vertical plane shoot-em-up.
package shooter

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/arcade-classics/internal/config"
	"github.com/vovakirdan/arcade-classics/internal/core"
	"github.com/vovakirdan/arcade-classics/internal/registry"
)

// holdMS keeps a key "held" after a press. Terminal key repeat refreshes
// it, which gives continuous movement and fire while a key is down.
const holdMS = 120

const playAgainLabel = "[ PLAY AGAIN ]"

// Game implements registry.Game for the shooter.
type Game struct {
	cfg  config.ShooterConfig
	rc   core.RuntimeConfig
	rng  *rand.Rand
	tick uint64

	// player X is the centre, Y the nose
	playerX, playerY float64

	bullets    []Bullet
	enemies    []Enemy
	explosions []Explosion
	stars      []star

	score      int
	level      int
	lives      int
	enemySpeed float64
	spawnMS    int
	spawnTimer int
	cooldown   int

	// remaining ticks each key counts as held
	hold map[core.Action]int

	gameOver bool
	paused   bool
	tooSmall bool

	playAgainBtn core.Rect
}

var (
	configPath       string
	difficultyPreset string
)

// SetConfigPath sets a custom shooter.yaml path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the --difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// New creates a shooter game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("shooter", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "shooter" }

// Title returns the display name.
func (g *Game) Title() string { return "Plane Shooter" }

func loadConfig() config.ShooterConfig {
	cfg, err := config.LoadShooter(configPath)
	if err != nil {
		cfg = config.DefaultShooterConfig()
	}
	if p, err := config.ParsePreset(difficultyPreset); err == nil {
		config.ApplyShooterPreset(&cfg, p)
	}
	cfg.Lives = max(cfg.Lives, 1)
	return cfg
}

// Reset starts a new run.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.cfg = loadConfig()
	g.rc = rc
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.tick = 0

	g.playerX = FieldW / 2
	g.playerY = FieldH - 80
	g.bullets = nil
	g.enemies = nil
	g.explosions = nil
	g.stars = newStars(g.rng)

	g.score = 0
	g.level = 1
	g.lives = g.cfg.Lives
	g.enemySpeed = g.cfg.Enemy.BaseSpeed
	g.spawnMS = g.cfg.Enemy.SpawnMS
	g.spawnTimer = 0
	g.cooldown = 0
	g.hold = make(map[core.Action]int)
	g.gameOver = false
	g.paused = false
}

// Step advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.gameOver {
		if in.Has(core.ActionRestart) || g.clickedPlayAgain(in) {
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
	g.movePlayer()
	if g.cooldown > 0 {
		g.cooldown--
	}
	if g.held(core.ActionJump) {
		g.fire()
	}

	g.spawn()
	g.updateBullets()
	g.updateEnemies()
	g.updateExplosions()
	g.updateStars()

	return core.StepResult{State: g.State()}
}

func (g *Game) clickedPlayAgain(in core.InputFrame) bool {
	for _, p := range in.Pointers() {
		if p.Button == core.PointerLeft && g.playAgainBtn.Contains(p.X, p.Y) {
			return true
		}
	}
	return false
}

func (g *Game) updateHold(in core.InputFrame) {
	window := g.rc.TicksFor(holdMS)
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown, core.ActionJump} {
		if in.Has(a) {
			g.hold[a] = window
		} else if g.hold[a] > 0 {
			g.hold[a]--
		}
	}
}

func (g *Game) held(a core.Action) bool {
	return g.hold[a] > 0
}

// movePlayer keeps the plane on screen and in the lower half.
func (g *Game) movePlayer() {
	p := g.cfg.Player
	if g.held(core.ActionLeft) && g.playerX > p.Width/2 {
		g.playerX -= p.Speed
	}
	if g.held(core.ActionRight) && g.playerX < FieldW-p.Width/2 {
		g.playerX += p.Speed
	}
	if g.held(core.ActionUp) && g.playerY > FieldH/2 {
		g.playerY -= p.Speed
	}
	if g.held(core.ActionDown) && g.playerY < FieldH-p.Height {
		g.playerY += p.Speed
	}
}

func (g *Game) fire() {
	if g.cooldown > 0 {
		return
	}
	g.bullets = append(g.bullets, Bullet{X: g.playerX, Y: g.playerY})
	g.cooldown = g.rc.TicksFor(g.cfg.Bullet.CooldownMS)
}

func (g *Game) spawn() {
	g.spawnTimer++
	if g.spawnTimer <= g.rc.TicksFor(g.spawnMS) {
		return
	}
	g.spawnTimer = 0

	e := g.cfg.Enemy
	g.enemies = append(g.enemies, Enemy{
		X:           e.Width/2 + g.rng.Float64()*(FieldW-e.Width),
		Y:           -e.Height,
		W:           e.Width,
		H:           e.Height,
		Speed:       g.enemySpeed + g.rng.Float64() - 0.5,
		Kind:        EnemyKind(g.rng.Intn(3)),
		Wobble:      g.rng.Float64() * 6.283185307179586,
		WobbleSpeed: 0.02 + g.rng.Float64()*0.03,
	})
	g.spawnMS = max(e.MinSpawnMS, e.SpawnMS-g.level*e.SpawnStepMS)
}

func (g *Game) updateBullets() {
	kept := g.bullets[:0]
	for _, b := range g.bullets {
		b.Y -= g.cfg.Bullet.Speed
		if b.Y < 0 {
			continue
		}
		if i := g.enemyHit(b); i >= 0 {
			g.kill(i)
			continue
		}
		kept = append(kept, b)
	}
	g.bullets = kept
}

func (g *Game) enemyHit(b Bullet) int {
	for i, e := range g.enemies {
		if e.hitBy(b) {
			return i
		}
	}
	return -1
}

func (g *Game) kill(i int) {
	e := g.enemies[i]
	g.explosions = append(g.explosions, newExplosion(g.rng, e.X, e.Y, enemyColors[e.Kind]))
	g.enemies = append(g.enemies[:i], g.enemies[i+1:]...)

	g.score += g.cfg.Enemy.KillScore * g.level
	if per := g.cfg.Enemy.LevelScore; per > 0 {
		if lvl := g.score/per + 1; lvl > g.level {
			g.level = lvl
			g.enemySpeed = min(g.cfg.Enemy.MaxSpeed, g.cfg.Enemy.BaseSpeed+float64(g.level)*g.cfg.Enemy.SpeedPerLevel)
		}
	}
}

func (g *Game) playerRect() core.RectF {
	p := g.cfg.Player
	return core.RectF{X: g.playerX - p.Width/2, Y: g.playerY, W: p.Width, H: p.Height}
}

// updateEnemies moves enemies and charges a life for each one that
// escapes off the bottom or rams the player.
func (g *Game) updateEnemies() {
	player := g.playerRect()
	kept := g.enemies[:0]
	for _, e := range g.enemies {
		e.update()
		switch {
		case e.Y > FieldH+e.H:
			g.loseLife()
		case player.Intersects(e.Rect()):
			g.explosions = append(g.explosions, newExplosion(g.rng, e.X, e.Y, enemyColors[e.Kind]))
			g.loseLife()
		default:
			kept = append(kept, e)
		}
	}
	g.enemies = kept
}

func (g *Game) loseLife() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.gameOver = true
	}
}

func (g *Game) updateExplosions() {
	kept := g.explosions[:0]
	for _, ex := range g.explosions {
		if ex.update() {
			kept = append(kept, ex)
		}
	}
	g.explosions = kept
}

func (g *Game) updateStars() {
	for i := range g.stars {
		s := &g.stars[i]
		s.y += starSpeed
		if s.y > FieldH {
			s.y = 0
			s.x = g.rng.Float64() * FieldW
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Snapshot captures the game for determinism tests.
type Snapshot struct {
	Tick     uint64
	Score    int
	Level    int
	Lives    int
	PlayerX  float64
	PlayerY  float64
	Enemies  int
	Bullets  int
	GameOver bool
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Score:    g.score,
		Level:    g.level,
		Lives:    g.lives,
		PlayerX:  g.playerX,
		PlayerY:  g.playerY,
		Enemies:  len(g.enemies),
		Bullets:  len(g.bullets),
		GameOver: g.gameOver,
	}
}

// Render scales the playfield onto the screen below a one-line HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	const minW, minH = 40, 16
	g.tooSmall = dst.Width() < minW || dst.Height() < minH
	if g.tooSmall {
		core.DrawOverlay(dst, core.ColorYellow, "Window too small", "Resize to continue")
		return
	}

	v := viewport{top: 1, w: dst.Width(), h: dst.Height() - 2}

	for _, s := range g.stars {
		c := core.ColorGray
		if s.bright {
			c = core.ColorWhite
		}
		x, y := v.point(s.x, s.y)
		dst.SetColor(x, y, '.', c)
	}

	for _, b := range g.bullets {
		x, y := v.point(b.X, b.Y)
		dst.SetColor(x, y, '|', core.ColorBrightYellow)
	}

	for _, e := range g.enemies {
		v.fill(dst, e.Rect(), enemyGlyphs[e.Kind], enemyColors[e.Kind])
	}

	for _, ex := range g.explosions {
		for _, p := range ex.particles {
			if p.life <= 0 {
				continue
			}
			r := '*'
			if p.life < p.maxLife/2 {
				r = '·'
			}
			x, y := v.point(p.x, p.y)
			dst.SetColor(x, y, r, p.color)
		}
	}

	v.fill(dst, g.playerRect(), '▲', core.ColorBrightBlue)
	cx, cy := v.point(g.playerX, g.playerY)
	dst.SetColor(cx, cy, '^', core.ColorBrightCyan)

	dst.DrawText(0, 0, fmt.Sprintf(" Score: %d   Level: %d   Lives: %d", g.score, g.level, g.lives))
	dst.DrawTextCenteredColor(dst.Height()-1, "Arrows move  Space shoot  P pause  Q quit", core.ColorGray)

	switch {
	case g.gameOver:
		lines := []string{"Game Over", fmt.Sprintf("Final Score: %d", g.score), fmt.Sprintf("Final Level: %d", g.level), playAgainLabel}
		core.DrawOverlay(dst, core.ColorBrightRed, lines...)
		boxH := len(lines)*2 + 1
		y := (dst.Height()-boxH)/2 + 1 + 2*(len(lines)-1)
		g.playAgainBtn = core.NewRect((dst.Width()-len(playAgainLabel))/2, y, len(playAgainLabel), 1)
	case g.paused:
		core.DrawOverlay(dst, core.ColorYellow, "Paused", "Press P to continue")
	}
}

// viewport maps playfield pixels to screen cells.
type viewport struct {
	top  int
	w, h int
}

func (v viewport) point(x, y float64) (int, int) {
	return int(x * float64(v.w) / FieldW), v.top + int(y*float64(v.h)/FieldH)
}

// fill paints a playfield rectangle, always at least one cell.
func (v viewport) fill(dst *core.Screen, r core.RectF, ch rune, c core.Color) {
	x0, y0 := v.point(r.X, r.Y)
	x1, y1 := v.point(r.X+r.W, r.Y+r.H)
	x1 = max(x1, x0+1)
	y1 = max(y1, y0+1)
	for y := max(y0, v.top); y < min(y1, v.top+v.h); y++ {
		for x := x0; x < x1; x++ {
			dst.SetColor(x, y, ch, c)
		}
	}
}
