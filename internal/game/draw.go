package game

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/gesture-particles/internal/config"
	"github.com/iburimskiy/gesture-particles/internal/render"
	"github.com/iburimskiy/gesture-particles/internal/sim"
)

// Index buffers are uint16; flush before the vertex count overflows.
const maxQuadsPerBatch = 16000

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	background = color.RGBA{R: 5, G: 5, B: 12, A: 255}
)

func init() {
	whiteImage.Fill(color.White)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	st := g.state
	cam := render.NewCamera(g.width, g.height, st.Scale, st.Rotation)

	g.drawParticles(screen, cam)
	g.drawBubbles(screen, cam)
	g.drawAttractor(screen, cam)
	g.drawHUD(screen)
}

func (g *Game) drawParticles(screen *ebiten.Image, cam render.Camera) {
	st := g.state
	n := st.Field.Len()
	size := config.PointSize * (1 + g.sound.Level())
	op := &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter}

	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	quads := 0
	flush := func() {
		if quads > 0 {
			screen.DrawTriangles(g.vertices, g.indices, whiteSubImage, op)
		}
		g.vertices = g.vertices[:0]
		g.indices = g.indices[:0]
		quads = 0
	}

	base := g.color
	g.flat = st.Field.Flatten(g.flat)
	for i := 0; i < n; i++ {
		p := mgl32.Vec3{g.flat[3*i], g.flat[3*i+1], g.flat[3*i+2]}
		x, y, w, ok := cam.Project(p)
		if !ok {
			continue
		}
		half := max(cam.PointSize(size, w)/2, 0.5)

		c := base
		if g.rainbow {
			c = render.HueColor(st.Kinetics.Hue + 60*float64(i)/float64(n))
		}
		r, gg, b := float32(c.R), float32(c.G), float32(c.B)

		v := uint16(len(g.vertices))
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
			g.vertices = append(g.vertices, ebiten.Vertex{
				DstX:   x + corner[0]*half,
				DstY:   y + corner[1]*half,
				SrcX:   1,
				SrcY:   1,
				ColorR: r,
				ColorG: gg,
				ColorB: b,
				ColorA: 0.8,
			})
		}
		g.indices = append(g.indices, v, v+1, v+2, v+1, v+3, v+2)
		quads++
		if quads == maxQuadsPerBatch {
			flush()
		}
	}
	flush()
}

func (g *Game) drawBubbles(screen *ebiten.Image, cam render.Camera) {
	for _, b := range g.state.Bubbles.List {
		x, y, w, ok := cam.Project(b.Center)
		if !ok {
			continue
		}
		r := cam.PointSize(float64(b.Radius), w)
		vector.StrokeCircle(screen, x, y, r, 1.5, color.RGBA{R: 180, G: 220, B: 255, A: 160}, true)
	}
}

func (g *Game) drawAttractor(screen *ebiten.Image, cam render.Camera) {
	a := g.state.Attractor
	if !a.Present {
		return
	}
	x, y, _, ok := cam.Project(a.Point)
	if !ok {
		return
	}
	c := color.RGBA{R: 80, G: 255, B: 120, A: 200}
	if a.Mode == sim.ModeRepel {
		c = color.RGBA{R: 255, G: 80, B: 80, A: 200}
	}
	vector.StrokeCircle(screen, x, y, 6, 2, c, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	st := g.state
	clients := int64(0)
	if g.tracker != nil {
		clients = g.tracker.Clients()
	}
	hand := "no hand"
	if st.Attractor.Present {
		hand = st.Attractor.Mode.String()
	}
	status := fmt.Sprintf("%s | %s | scale %.2f | score %d | trackers %d | %s | %.0f fps",
		st.Field.Preset(), hand, st.Scale, st.Bubbles.Score, clients, g.sound.Status(), ebiten.ActualFPS())
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
	ebitenutil.DebugPrintAt(screen, "1/2/3 preset  C color  H rainbow  R rotate  O soundtrack  Space pause  Esc/Q quit", 12, g.height-24)
}
