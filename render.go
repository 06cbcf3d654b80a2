package brainmap

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Rect is an axis-aligned rectangle in logical or screen units.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// RenderNode is one node projected into screen pixels, ready to draw.
type RenderNode struct {
	ID     string
	Name   string
	X, Y   float64
	Radius float64
	Angle  float64
	Depth  int
	IsRoot bool
	IsLeaf bool
	// Editing marks the node whose name is being typed; renderers should
	// show the in-progress text instead of Name.
	Editing bool
}

// RenderEdge is one parent→child connector as a quadratic curve in screen
// pixels: endpoints plus one control point pulled toward the canvas center.
type RenderEdge struct {
	X1, Y1 float64
	CX, CY float64
	X2, Y2 float64
}

// Frame is everything a renderer needs for one draw: geometry only, no tree
// access and no viewport math. Edges come before nodes so nodes draw on top.
type Frame struct {
	Width, Height float64
	Edges         []RenderEdge
	Nodes         []RenderNode
}

// Renderer turns a Frame into pixels. The built-in VectorRenderer covers the
// common case; apps wanting custom node chrome implement their own.
type Renderer interface {
	DrawFrame(screen *ebiten.Image, f *Frame)
}

// Theme is the color set used by VectorRenderer.
type Theme struct {
	Background color.RGBA
	Edge       color.RGBA
	NodeFill   color.RGBA
	NodeStroke color.RGBA
	RootFill   color.RGBA
	EditStroke color.RGBA
}

// DefaultTheme returns a light palette.
func DefaultTheme() Theme {
	return Theme{
		Background: color.RGBA{0xfa, 0xfa, 0xf7, 0xff},
		Edge:       color.RGBA{0x9a, 0xa4, 0xb2, 0xff},
		NodeFill:   color.RGBA{0xff, 0xff, 0xff, 0xff},
		NodeStroke: color.RGBA{0x4a, 0x5a, 0x78, 0xff},
		RootFill:   color.RGBA{0xdf, 0xe9, 0xff, 0xff},
		EditStroke: color.RGBA{0xd8, 0x7a, 0x2a, 0xff},
	}
}

// edgeSegments is how many line segments approximate one quadratic curve.
const edgeSegments = 16

// VectorRenderer draws frames with ebiten's vector primitives and debug-font
// labels.
type VectorRenderer struct {
	Theme Theme
}

// NewVectorRenderer returns a renderer with the default theme.
func NewVectorRenderer() *VectorRenderer {
	return &VectorRenderer{Theme: DefaultTheme()}
}

// DrawFrame implements Renderer.
func (r *VectorRenderer) DrawFrame(screen *ebiten.Image, f *Frame) {
	screen.Fill(r.Theme.Background)
	for i := range f.Edges {
		r.drawEdge(screen, &f.Edges[i])
	}
	for i := range f.Nodes {
		r.drawNode(screen, &f.Nodes[i])
	}
}

// drawEdge flattens the quadratic curve into line segments.
func (r *VectorRenderer) drawEdge(screen *ebiten.Image, e *RenderEdge) {
	px, py := e.X1, e.Y1
	for i := 1; i <= edgeSegments; i++ {
		t := float64(i) / edgeSegments
		u := 1 - t
		x := u*u*e.X1 + 2*u*t*e.CX + t*t*e.X2
		y := u*u*e.Y1 + 2*u*t*e.CY + t*t*e.Y2
		vector.StrokeLine(screen, float32(px), float32(py), float32(x), float32(y), 1.5, r.Theme.Edge, true)
		px, py = x, y
	}
}

func (r *VectorRenderer) drawNode(screen *ebiten.Image, n *RenderNode) {
	fill := r.Theme.NodeFill
	if n.IsRoot {
		fill = r.Theme.RootFill
	}
	stroke := r.Theme.NodeStroke
	strokeWidth := float32(1.5)
	if n.Editing {
		stroke = r.Theme.EditStroke
		strokeWidth = 3
	}
	vector.DrawFilledCircle(screen, float32(n.X), float32(n.Y), float32(n.Radius), fill, true)
	vector.StrokeCircle(screen, float32(n.X), float32(n.Y), float32(n.Radius), strokeWidth, stroke, true)

	label := n.Name
	if n.Editing {
		label += "_"
	}
	// Debug font glyphs are 6x16; center the label on the node.
	tx := int(n.X) - len(label)*3
	ty := int(n.Y) - 8
	ebitenutil.DebugPrintAt(screen, label, tx, ty)
}

// drawMenu renders the default context-menu chrome. Rectangles arrive in
// screen pixels.
func (r *VectorRenderer) drawMenu(screen *ebiten.Image, items []MenuItem, rects []Rect) {
	for i, item := range items {
		rc := rects[i]
		vector.DrawFilledRect(screen, float32(rc.X), float32(rc.Y), float32(rc.Width), float32(rc.Height), r.Theme.NodeFill, false)
		vector.StrokeRect(screen, float32(rc.X), float32(rc.Y), float32(rc.Width), float32(rc.Height), 1, r.Theme.NodeStroke, false)
		ebitenutil.DebugPrintAt(screen, item.Label, int(rc.X)+8, int(rc.Y)+int(rc.Height/2)-8)
	}
}
