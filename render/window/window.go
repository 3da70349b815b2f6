// Package window shows the LED strip in a desktop window and maps the
// space bar onto the simulated button.
package window

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"taillight-go/hal/sim"
)

const (
	numLEDs  = 8
	cellSize = 32
	ledSize  = 24
	margin   = (cellSize - ledSize) / 2
)

var (
	colorBackground = color.RGBA{0x18, 0x18, 0x18, 0xFF}
	colorLit        = color.RGBA{0xE8, 0x20, 0x20, 0xFF}
	colorDark       = color.RGBA{0x38, 0x10, 0x10, 0xFF}
)

// Run opens the window and blocks until the window is closed or ctx is
// done. Ebiten requires the calling goroutine, so this must run on main.
func Run(ctx context.Context, bank *sim.Bank, button *sim.Pin) error {
	g := &game{ctx: ctx, bank: bank, button: button}
	ebiten.SetWindowTitle("taillight")
	ebiten.SetWindowSize(numLEDs*cellSize*2, cellSize*2)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	ctx    context.Context
	bank   *sim.Bank
	button *sim.Pin
	led    *ebiten.Image
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return err
	}
	// The button is active low.
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.button.SetLevel(false)
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		g.button.SetLevel(true)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	if g.led == nil {
		g.led = ebiten.NewImage(ledSize, ledSize)
	}

	bits := g.bank.Get()
	for i := 0; i < numLEDs; i++ {
		if bits&(1<<uint(i)) != 0 {
			g.led.Fill(colorLit)
		} else {
			g.led.Fill(colorDark)
		}
		var op ebiten.DrawImageOptions
		op.GeoM.Translate(float64(i*cellSize+margin), margin)
		screen.DrawImage(g.led, &op)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return numLEDs * cellSize, cellSize
}
