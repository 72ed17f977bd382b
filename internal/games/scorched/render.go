package scorched

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-scorched/internal/core"
	sim "github.com/vovakirdan/tui-scorched/internal/scorched"
)

// Visual characters for rendering
const (
	TerrainChar    = '█'
	SurfaceChar    = '▓'
	TankChar       = '█'
	WreckChar      = '░'
	ProjectileChar = '●'
	RollerChar     = '○'
	DiggerChar     = '◆'
	TrailChar      = '·'
)

// Rows reserved at the top for the HUD.
const hudRows = 2

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.run == nil {
		return
	}
	snap := g.run.Snapshot()

	g.drawTerrain(dst, snap)
	g.drawTanks(dst, snap)
	g.drawProjectiles(dst, snap)
	g.drawHUD(dst, snap)

	if g.run.Over() {
		drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Best round: %d  |  Press R to restart", g.State().Score))
		return
	}
	if g.run.BetweenRounds() {
		g.drawShop(dst, snap)
	}
	if g.paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// screenX maps a world x onto a screen column.
func screenX(dst *core.Screen, snap sim.Snapshot, wx float64) int {
	return int(core.MapRange(wx, 0, float64(snap.PlayW), 0, float64(dst.Width())))
}

// screenY maps a world y onto a screen row below the HUD.
func screenY(dst *core.Screen, snap sim.Snapshot, wy float64) int {
	return hudRows + int(core.MapRange(wy, 0, float64(snap.PlayH), 0, float64(dst.Height()-hudRows)))
}

// drawTerrain fills everything below the surface line, column by column.
func (g *Game) drawTerrain(dst *core.Screen, snap sim.Snapshot) {
	w, h := dst.Width(), dst.Height()
	for cx := 0; cx < w; cx++ {
		wx := core.MapRange(float64(cx), 0, float64(w), 0, float64(snap.PlayW))
		sy := screenY(dst, snap, snap.TerrainSurfaceY(int(wx)))
		if sy < hudRows {
			sy = hudRows
		}
		for y := sy; y < h; y++ {
			if y == sy {
				dst.SetColored(cx, y, SurfaceChar, core.ColorBrightMagenta)
			} else {
				dst.SetColored(cx, y, TerrainChar, core.ColorMagenta)
			}
		}
	}
}

// drawTanks draws both tank bodies and their barrels.
func (g *Game) drawTanks(dst *core.Screen, snap sim.Snapshot) {
	for _, t := range snap.Tanks {
		color := core.ColorBrightCyan
		if t.Team == sim.TeamEnemy {
			color = core.ColorBrightRed
		}

		body := TankChar
		if t.Health <= 0 {
			body = WreckChar
			color = core.ColorGray
		}

		halfW := snap.Params.TankWidth / 2
		x0 := screenX(dst, snap, t.X-halfW)
		x1 := screenX(dst, snap, t.X+halfW)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		y0 := screenY(dst, snap, t.Y-snap.Params.TankHeight)
		y1 := screenY(dst, snap, t.Y)
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				dst.SetColored(x, y, body, color)
			}
		}

		if t.Health > 0 {
			g.drawBarrel(dst, snap, t, color)
		}
	}
}

// drawBarrel puts a direction glyph at the barrel tip.
func (g *Game) drawBarrel(dst *core.Screen, snap sim.Snapshot, t sim.TankSnapshot, color core.Color) {
	rad := t.Angle * math.Pi / 180
	baseX := t.X
	baseY := t.Y - snap.Params.TankHeight
	tipX := baseX + math.Cos(rad)*snap.Params.BarrelLength
	tipY := baseY - math.Sin(rad)*snap.Params.BarrelLength

	glyph := '─'
	switch {
	case t.Angle >= 67.5 && t.Angle <= 112.5:
		glyph = '│'
	case t.Angle > 22.5 && t.Angle < 67.5:
		glyph = '╱'
	case t.Angle > 112.5 && t.Angle < 157.5:
		glyph = '╲'
	}

	x := screenX(dst, snap, tipX)
	y := screenY(dst, snap, tipY)
	dst.SetColored(x, y, glyph, color)
}

// drawProjectiles draws trails first so live shells stay on top.
func (g *Game) drawProjectiles(dst *core.Screen, snap sim.Snapshot) {
	for _, p := range snap.Projectiles {
		weapon, _ := g.arsenal.Lookup(p.WeaponID)

		trailColor := core.ColorByName(weapon.TrailColor)
		for _, pt := range p.Trail {
			x := screenX(dst, snap, pt.X)
			y := screenY(dst, snap, pt.Y)
			if y >= hudRows {
				dst.SetColored(x, y, TrailChar, trailColor)
			}
		}

		head := ProjectileChar
		switch p.Mode {
		case sim.ModeRolling:
			head = RollerChar
		case sim.ModeDigging:
			head = DiggerChar
		}
		x := screenX(dst, snap, p.X)
		y := screenY(dst, snap, p.Y)
		if y >= hudRows {
			dst.SetColored(x, y, head, core.ColorByName(weapon.ProjectileColor))
		}
	}
}

// drawHUD writes the two status rows at the top of the screen.
func (g *Game) drawHUD(dst *core.Screen, snap sim.Snapshot) {
	player, _ := snap.Tank(sim.TeamPlayer)
	enemy, _ := snap.Tank(sim.TeamEnemy)

	top := fmt.Sprintf(" Round %d  You %s  Foe %s  Wind %s",
		snap.Round,
		healthBar(player.Health, player.MaxHealth),
		healthBar(enemy.Health, enemy.MaxHealth),
		windString(snap.Wind))
	dst.DrawTextColored(0, 0, top, core.ColorBrightWhite)

	weaponName := player.Weapon
	if w, ok := g.arsenal.Lookup(player.Weapon); ok {
		weaponName = w.Name
	}
	ammo := "∞"
	if count := snap.Inventory[player.Weapon]; count != sim.AmmoInfinite {
		ammo = fmt.Sprintf("%d", count)
	}
	bottom := fmt.Sprintf(" Angle %3.0f°  Power %3.0f  %s (%s)  Tokens %d",
		player.Angle, player.Power, weaponName, ammo, snap.Tokens)
	if player.EMPTurns > 0 {
		bottom += fmt.Sprintf("  EMP:%d", player.EMPTurns)
	}
	dst.DrawTextColored(0, 1, bottom, core.ColorBrightCyan)

	if g.noticeLeft > 0 && g.notice != "" {
		msg := " " + g.notice + " "
		dst.DrawTextColored(dst.Width()-len(msg)-1, 1, msg, core.ColorBrightYellow)
	}
}

// healthBar renders a fixed-width bar like [████····].
func healthBar(health, max float64) string {
	const width = 8
	if max <= 0 {
		max = 1
	}
	filled := int(math.Ceil(health / max * width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}

// windString shows direction arrows scaled with strength.
func windString(wind float64) string {
	arrows := int(math.Abs(wind)/2) + 1
	if arrows > 4 {
		arrows = 4
	}
	switch {
	case wind > 0.05:
		return strings.Repeat("→", arrows) + fmt.Sprintf(" %.1f", wind)
	case wind < -0.05:
		return strings.Repeat("←", arrows) + fmt.Sprintf(" %.1f", -wind)
	default:
		return "calm"
	}
}

// drawShop renders the between-rounds armory overlay.
func (g *Game) drawShop(dst *core.Screen, snap sim.Snapshot) {
	w, h := dst.Width(), dst.Height()

	boxW := 46
	if boxW > w-2 {
		boxW = w - 2
	}
	boxH := len(g.shopItems) + 6
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2
	if boxY < hudRows {
		boxY = hudRows
	}

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	title := fmt.Sprintf(" ARMORY - %d tokens ", snap.Tokens)
	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY, title, core.ColorBrightYellow)

	for i, item := range g.shopItems {
		marker := "  "
		color := core.ColorWhite
		if i == g.shopIndex {
			marker = "▶ "
			color = core.ColorBrightCyan
		}
		owned := snap.Inventory[item.ID]
		line := fmt.Sprintf("%s%-14s %5d  owned %d", marker, item.Name, item.Cost, owned)
		dst.DrawTextColored(boxX+2, boxY+1+i, line, color)
	}

	hint1 := "tab/[ select · space buy"
	hint2 := fmt.Sprintf("enter starts round %d", snap.Round)
	dst.DrawTextColored(boxX+(boxW-len(hint1))/2, boxY+boxH-3, hint1, core.ColorGray)
	dst.DrawTextColored(boxX+(boxW-len(hint2))/2, boxY+boxH-2, hint2, core.ColorBrightGreen)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightWhite)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
