package shooter

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

// Playfield size in virtual pixels. Rendering scales it to the terminal.
const (
	FieldW = 800.0
	FieldH = 600.0
)

const (
	particlesPerBlast = 15
	blastTicks        = 40
	gravity           = 0.1
	starCount         = 100
	starSpeed         = 0.5
)

// EnemyKind selects the enemy's shape and color.
type EnemyKind int

const (
	EnemyTriangle EnemyKind = iota
	EnemySquare
	EnemyDiamond
)

var enemyColors = [...]core.Color{
	EnemyTriangle: core.ColorBrightRed,
	EnemySquare:   core.ColorBrightGreen,
	EnemyDiamond:  core.ColorBrightMagenta,
}

var enemyGlyphs = [...]rune{
	EnemyTriangle: '▼',
	EnemySquare:   '■',
	EnemyDiamond:  '◆',
}

// Bullet is a player shot; X is its centre line, Y its top.
type Bullet struct {
	X, Y float64
}

// Enemy is centred on X, Y.
type Enemy struct {
	X, Y        float64
	W, H        float64
	Speed       float64
	Kind        EnemyKind
	Wobble      float64
	WobbleSpeed float64
}

// Rect returns the enemy's bounding box.
func (e Enemy) Rect() core.RectF {
	return core.RectF{X: e.X - e.W/2, Y: e.Y - e.H/2, W: e.W, H: e.H}
}

// hitBy uses the strict point-in-box test on the bullet tip.
func (e Enemy) hitBy(b Bullet) bool {
	return b.X > e.X-e.W/2 && b.X < e.X+e.W/2 &&
		b.Y > e.Y-e.H/2 && b.Y < e.Y+e.H/2
}

func (e *Enemy) update() {
	e.Wobble += e.WobbleSpeed
	e.X += math.Sin(e.Wobble) * 2
	e.Y += e.Speed
}

type particle struct {
	x, y    float64
	dx, dy  float64
	life    int
	maxLife int
	color   core.Color
}

// Explosion is a short-lived particle burst.
type Explosion struct {
	particles []particle
	timer     int
}

func newExplosion(rng *rand.Rand, x, y float64, color core.Color) Explosion {
	ex := Explosion{particles: make([]particle, particlesPerBlast)}
	for i := range ex.particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := 2 + rng.Float64()*6
		life := 20 + rng.Intn(21)
		ex.particles[i] = particle{
			x:       x,
			y:       y,
			dx:      math.Cos(angle) * speed,
			dy:      math.Sin(angle) * speed,
			life:    life,
			maxLife: life,
			color:   color,
		}
	}
	return ex
}

// update advances the burst and reports whether it is still visible.
func (ex *Explosion) update() bool {
	ex.timer++
	for i := range ex.particles {
		p := &ex.particles[i]
		p.x += p.dx
		p.y += p.dy
		p.dy += gravity
		p.life--
	}
	return ex.timer <= blastTicks
}

type star struct {
	x, y   float64
	bright bool
}

func newStars(rng *rand.Rand) []star {
	stars := make([]star, starCount)
	for i := range stars {
		stars[i] = star{
			x:      rng.Float64() * FieldW,
			y:      rng.Float64() * FieldH,
			bright: rng.Intn(3) == 0,
		}
	}
	return stars
}
