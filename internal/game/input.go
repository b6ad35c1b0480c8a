package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputHandler turns ebiten keyboard and mouse state into an Input.
type InputHandler struct {
	lastCursorX int
	haveCursor  bool
	keys        []ebiten.Key
}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// Poll reads the current frame's input.
func (ih *InputHandler) Poll() Input {
	ih.keys = inpututil.AppendJustPressedKeys(ih.keys[:0])

	in := Input{
		Forward:    ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp),
		Backward:   ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown),
		TurnLeft:   ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft),
		TurnRight:  ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight),
		AnyKey:     len(ih.keys) > 0 || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Confirm:    inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter),
		ToggleMap:  inpututil.IsKeyJustPressed(ebiten.KeyM),
		Screenshot: inpututil.IsKeyJustPressed(ebiten.KeyF12),
		Quit:       inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}

	x, _ := ebiten.CursorPosition()
	if ih.haveCursor {
		in.MouseDX = float64(x - ih.lastCursorX)
	}
	ih.lastCursorX = x
	ih.haveCursor = true

	return in
}

// ResetCursor forgets the last cursor position so the next Poll reports
// no mouse movement. Call it when the cursor mode changes.
func (ih *InputHandler) ResetCursor() {
	ih.haveCursor = false
}
