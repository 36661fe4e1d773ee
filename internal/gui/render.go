package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func (a *App) drawHUD() {
	st := a.Field.LastStats()
	x, y := int32(10), int32(10)
	row := func(label, value string) {
		rl.DrawText(label, x, y, 10, ColTextDim)
		rl.DrawText(value, x+70, y, 10, ColText)
		y += 14
	}

	row("FRAME", fmt.Sprintf("%d", a.Field.Frame()))
	row("FPS", fmt.Sprintf("%d", rl.GetFPS()))
	row("SPEED", fmt.Sprintf("%.2f", st.Speed))
	row("THROTTLE", fmt.Sprintf("%.1f", a.Crank.Base()))
	row("RECYCLED", fmt.Sprintf("%d", st.Recycled))
	row("THEME", a.Theme.Name)

	if !a.Running {
		rl.DrawText("PAUSED", x, y+6, 20, ColText)
	}
	help := "SPACE pause  UP/DOWN throttle  WHEEL crank  C centre  T theme  H hud  Q quit"
	rl.DrawText(help, x, int32(rl.GetScreenHeight())-16, 10, ColTextDim)
}
