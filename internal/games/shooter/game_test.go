package shooter

import (
	"strings"
	"testing"

	"github.com/vovakirdan/arcade-classics/internal/core"
)

func newTestGame(t *testing.T, seed int64) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	SetConfigPath("")
	SetDifficultyPreset("")

	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func idle(g interface{ Step(core.InputFrame) core.StepResult }, n int) {
	for i := 0; i < n; i++ {
		g.Step(core.NewInputFrame())
	}
}

func TestGameIDs(t *testing.T) {
	g := New()
	if g.ID() != "shooter" || g.Title() != "Plane Shooter" {
		t.Errorf("ID/Title = %q/%q", g.ID(), g.Title())
	}
}

func TestResetState(t *testing.T) {
	g := newTestGame(t, 1)
	s := g.Snapshot()
	if s.Lives != 3 || s.Level != 1 || s.Score != 0 {
		t.Errorf("Snapshot() = %+v, expected 3 lives at level 1", s)
	}
	if s.PlayerX != 400 || s.PlayerY != 520 {
		t.Errorf("player at (%v, %v), expected (400, 520)", s.PlayerX, s.PlayerY)
	}
	if len(g.stars) != starCount {
		t.Errorf("stars = %d, expected %d", len(g.stars), starCount)
	}
}

func TestKeyHoldMovesPlayer(t *testing.T) {
	g := newTestGame(t, 1)

	g.Step(press(core.ActionLeft))
	if g.playerX != 392 {
		t.Fatalf("playerX = %v, expected 392 after one tick", g.playerX)
	}
	idle(g, 20)
	// a press counts as held for 7 ticks at 60 Hz
	if g.playerX != 344 {
		t.Errorf("playerX = %v, expected 344 once the hold expires", g.playerX)
	}
}

func TestPlayerBounds(t *testing.T) {
	g := newTestGame(t, 1)
	g.enemies = nil

	for i := 0; i < 60; i++ {
		g.Step(press(core.ActionUp, core.ActionLeft))
		g.enemies = nil
	}
	if g.playerY < FieldH/2-g.cfg.Player.Speed {
		t.Errorf("playerY = %v, expected to stop near the middle", g.playerY)
	}
	if g.playerX < g.cfg.Player.Width/2-g.cfg.Player.Speed {
		t.Errorf("playerX = %v, expected to stop at the left edge", g.playerX)
	}
}

func TestFireCooldown(t *testing.T) {
	g := newTestGame(t, 1)
	for i := 0; i < 30; i++ {
		g.Step(press(core.ActionJump))
	}
	// 200ms cooldown is 12 ticks: shots on ticks 1, 13 and 25
	if len(g.bullets) != 3 {
		t.Errorf("bullets = %d, expected 3", len(g.bullets))
	}
}

func TestBulletKillsEnemy(t *testing.T) {
	g := newTestGame(t, 1)
	g.enemies = []Enemy{{X: 400, Y: 300, W: 50, H: 40}}
	g.bullets = []Bullet{{X: 400, Y: 320}}

	g.Step(core.NewInputFrame())

	if len(g.enemies) != 0 || len(g.bullets) != 0 {
		t.Fatalf("enemies = %d, bullets = %d, expected both consumed", len(g.enemies), len(g.bullets))
	}
	if g.score != 100 {
		t.Errorf("score = %d, expected 100", g.score)
	}
	if len(g.explosions) != 1 || len(g.explosions[0].particles) != particlesPerBlast {
		t.Error("kill should start an explosion")
	}
}

func TestLevelUp(t *testing.T) {
	g := newTestGame(t, 1)
	g.score = 900
	g.enemies = []Enemy{{X: 400, Y: 300, W: 50, H: 40}}
	g.bullets = []Bullet{{X: 400, Y: 320}}
	g.Step(core.NewInputFrame())

	if g.level != 2 {
		t.Fatalf("level = %d, expected 2 at 1000 points", g.level)
	}
	if g.enemySpeed != 4 {
		t.Errorf("enemySpeed = %v, expected 4", g.enemySpeed)
	}

	g.enemies = []Enemy{{X: 200, Y: 300, W: 50, H: 40}}
	g.bullets = []Bullet{{X: 200, Y: 320}}
	g.Step(core.NewInputFrame())
	if g.score != 1200 {
		t.Errorf("score = %d, expected kills to pay 100 per level", g.score)
	}
}

func TestEscapedEnemyCostsLife(t *testing.T) {
	g := newTestGame(t, 1)
	g.enemies = []Enemy{{X: 100, Y: FieldH + 39, W: 50, H: 40, Speed: 3}}
	g.Step(core.NewInputFrame())

	if g.lives != 2 {
		t.Errorf("lives = %d, expected 2", g.lives)
	}
	if len(g.enemies) != 0 {
		t.Error("escaped enemy should be removed")
	}
}

func TestRamCostsLifeAndGameOver(t *testing.T) {
	g := newTestGame(t, 1)
	g.lives = 1
	g.enemies = []Enemy{{X: g.playerX, Y: g.playerY + 10, W: 50, H: 40}}
	g.Step(core.NewInputFrame())

	if !g.State().GameOver {
		t.Fatal("losing the last life should end the game")
	}
	if len(g.explosions) != 1 {
		t.Error("a ram should explode the enemy")
	}

	g.Step(press(core.ActionLeft))
	if !g.State().GameOver {
		t.Error("movement must not leave the game over screen")
	}
	g.Step(press(core.ActionRestart))
	if s := g.Snapshot(); s.GameOver || s.Lives != 3 {
		t.Errorf("Snapshot() after restart = %+v", s)
	}
}

func TestPlayAgainButton(t *testing.T) {
	g := newTestGame(t, 1)
	g.gameOver = true

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	btn := g.playAgainBtn
	if !strings.Contains(screen.Row(btn.Y), playAgainLabel) {
		t.Fatalf("row %d = %q, expected the play again button", btn.Y, screen.Row(btn.Y))
	}

	in := core.NewInputFrame()
	in.AddPointer(core.Pointer{X: btn.X + 1, Y: btn.Y, Button: core.PointerLeft})
	g.Step(in)
	if g.State().GameOver {
		t.Error("clicking play again should restart")
	}
}

func TestSpawnPacing(t *testing.T) {
	g := newTestGame(t, 5)
	idle(g, 60)
	if len(g.enemies) != 0 {
		t.Fatalf("enemies = %d before the first second, expected 0", len(g.enemies))
	}
	idle(g, 1)
	if len(g.enemies) != 1 {
		t.Fatalf("enemies = %d, expected 1", len(g.enemies))
	}
	e := g.enemies[0]
	if e.X < e.W/2 || e.X > FieldW-e.W/2 {
		t.Errorf("enemy X = %v outside the field", e.X)
	}
	if g.spawnMS != 950 {
		t.Errorf("spawnMS = %d, expected 950", g.spawnMS)
	}
}

func TestExplosionExpires(t *testing.T) {
	g := newTestGame(t, 1)
	g.explosions = []Explosion{newExplosion(g.rng, 100, 100, core.ColorRed)}
	for _, p := range g.explosions[0].particles {
		if p.life < 20 || p.life > 40 {
			t.Errorf("particle life = %d, expected 20..40", p.life)
		}
	}

	idle(g, blastTicks)
	if len(g.explosions) != 1 {
		t.Fatal("explosion vanished early")
	}
	idle(g, 1)
	if len(g.explosions) != 0 {
		t.Error("explosion should expire after its timer")
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, 4242)
		for i := 0; i < 1200; i++ {
			in := core.NewInputFrame()
			switch i % 50 {
			case 0:
				in.Set(core.ActionJump)
			case 10:
				in.Set(core.ActionLeft)
			case 30:
				in.Set(core.ActionRight)
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, 1)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "Lives: 3") {
		t.Errorf("HUD = %q", screen.Row(0))
	}
	if !strings.ContainsRune(screen.String(), '▲') {
		t.Error("player not drawn")
	}

	small := core.NewScreen(30, 10)
	g.Render(small)
	if !strings.Contains(small.String(), "Window too small") {
		t.Error("expected the resize hint")
	}
}
