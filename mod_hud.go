package fchessg

import (
	"fmt"
	"strings"
	"time"
)

const hudWindow = time.Second

// HudTimings averages frame times over one-second windows.
type HudTimings struct {
	frames  int
	elapsed time.Duration

	FPS       float64
	FrameTime time.Duration
}

// Tick adds a frame and reports whether a new average was published.
func (t *HudTimings) Tick(dt time.Duration) bool {
	t.frames++
	t.elapsed += dt
	if t.elapsed < hudWindow {
		return false
	}
	t.FPS = float64(t.frames) / t.elapsed.Seconds()
	t.FrameTime = t.elapsed / time.Duration(t.frames)
	t.frames = 0
	t.elapsed = 0
	return true
}

type Hud struct {
	Timings HudTimings
	// Debug shows the overlay; toggled with F3.
	Debug bool
	// Status is the one-line game status shown in the title.
	Status string
	// Overlay holds the debug lines written by the state modules.
	Overlay []string

	BaseTitle string
	Title     string
}

func (h *Hud) SetOverlay(lines ...string) {
	h.Overlay = append(h.Overlay[:0], lines...)
}

func (h *Hud) composeTitle() string {
	var b strings.Builder
	b.WriteString(h.BaseTitle)
	if h.Status != "" {
		b.WriteString(" | ")
		b.WriteString(h.Status)
	}
	if h.Debug && h.Timings.FPS > 0 {
		fmt.Fprintf(&b, " | %.0f fps %.2f ms", h.Timings.FPS, float64(h.Timings.FrameTime.Microseconds())/1000)
	}
	return b.String()
}

type HudModule struct {
	Title string
}

func (mod HudModule) Install(app *App, cmd *Commands) {
	title := mod.Title
	if title == "" {
		title = DefaultConfig().Window.Title
	}
	cmd.AddResources(&Hud{BaseTitle: title, Title: title})
	app.UseSystem(
		System(hudSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
}

func hudSystem(hud *Hud, input *Input, t *Time, cmd *Commands) {
	if input.IsJustPressed(KeyF3) {
		hud.Debug = !hud.Debug
	}
	published := hud.Timings.Tick(t.Dt)
	hud.Title = hud.composeTitle()

	if hud.Debug && published {
		cmd.Logger().Infof("%.1f fps, %v/frame", hud.Timings.FPS, hud.Timings.FrameTime)
		for _, line := range hud.Overlay {
			cmd.Logger().Infof("  %s", line)
		}
	}
}
