package brainmap

import (
	"io"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Diagram is an interactive radial tree widget. It owns the tree, recomputes
// the layout after every mutation, and runs the gesture and edit state
// machines from Update. All exported methods are main-loop-only; Diagram is
// not safe for concurrent use, matching ebiten's single-goroutine model.
type Diagram struct {
	opts     Options
	tree     *Tree
	view     *Viewport
	layout   *Layout
	renderer Renderer
	chrome   *VectorRenderer
	prompter Prompter
	ed       editor
	g        gestures

	// OnStatus, when set, receives short user-facing messages for rejected
	// operations ("The root node cannot be deleted").
	OnStatus func(msg string)
}

// New creates a diagram with a single root node.
func New(rootName string, opts Options) *Diagram {
	opts = opts.withDefaults()
	d := &Diagram{
		opts:     opts,
		tree:     NewTree(rootName),
		view:     newViewport(opts),
		renderer: NewVectorRenderer(),
		chrome:   NewVectorRenderer(),
	}
	d.g.now = time.Now
	d.relayout()
	return d
}

// SetRenderer replaces the default renderer.
func (d *Diagram) SetRenderer(r Renderer) {
	if r != nil {
		d.renderer = r
	}
}

// SetPrompter installs the name prompt used by "Add child" and "Add sibling".
// Without one, new nodes are created with the placeholder name directly.
func (d *Diagram) SetPrompter(p Prompter) {
	d.prompter = p
}

// Tree exposes the underlying tree for read access. Mutate through the
// Diagram methods so the layout stays current.
func (d *Diagram) Tree() *Tree { return d.tree }

// Viewport exposes the pan/zoom state.
func (d *Diagram) Viewport() *Viewport { return d.view }

// Layout returns the current placement table.
func (d *Diagram) Layout() *Layout { return d.layout }

// Options returns the effective configuration.
func (d *Diagram) Options() Options { return d.opts }

func (d *Diagram) relayout() {
	d.layout = ComputeLayout(d.tree.Root(), d.opts)
}

func (d *Diagram) status(msg string) {
	if d.OnStatus != nil {
		d.OnStatus(msg)
	}
}

func statusText(err error) string {
	switch err {
	case ErrDeleteRoot:
		return "The root node cannot be deleted"
	case ErrNotFound:
		return "Node not found"
	default:
		return err.Error()
	}
}

// --- Mutations ---

// AddChild appends a child to the given node and reports success.
func (d *Diagram) AddChild(parentID, name string) bool {
	if d.opts.ReadOnly {
		return false
	}
	if _, err := d.tree.AddChild(parentID, name); err != nil {
		d.status(statusText(err))
		return false
	}
	d.relayout()
	return true
}

// AddSibling inserts a new node immediately after the given one among its
// parent's children.
func (d *Diagram) AddSibling(nodeID, name string) bool {
	if d.opts.ReadOnly {
		return false
	}
	if _, err := d.tree.AddSibling(nodeID, name); err != nil {
		d.status(statusText(err))
		return false
	}
	d.relayout()
	return true
}

// DeleteNode removes the node and its whole subtree. The root is refused.
func (d *Diagram) DeleteNode(nodeID string) bool {
	if d.opts.ReadOnly {
		return false
	}
	if err := d.tree.Delete(nodeID); err != nil {
		d.status(statusText(err))
		return false
	}
	// The edited node may have just left the tree.
	if d.ed.state == editEditing && d.tree.FindByID(d.ed.editID) == nil {
		d.resetEdit()
	}
	d.relayout()
	return true
}

// RenameNode sets the node's name; empty names fall back to the placeholder.
func (d *Diagram) RenameNode(nodeID, name string) bool {
	if d.opts.ReadOnly {
		return false
	}
	if err := d.tree.Rename(nodeID, name); err != nil {
		d.status(statusText(err))
		return false
	}
	d.relayout()
	return true
}

// --- Snapshots ---

// SetData replaces the whole tree. Any open menu or edit session ends.
func (d *Diagram) SetData(root *Node) error {
	if err := d.tree.SetData(root); err != nil {
		return err
	}
	d.closeMenu()
	d.resetEdit()
	d.relayout()
	return nil
}

// Data returns a deep copy of the tree.
func (d *Diagram) Data() *Node { return d.tree.Data() }

// JSON serializes the tree.
func (d *Diagram) JSON() ([]byte, error) { return d.tree.JSON() }

// LoadJSON replaces the tree from a JSON snapshot.
func (d *Diagram) LoadJSON(data []byte) error {
	if err := d.tree.LoadJSON(data); err != nil {
		return err
	}
	d.closeMenu()
	d.resetEdit()
	d.relayout()
	return nil
}

// --- Hit testing ---

// nodeAtLogical returns the id of the topmost node under a logical point, or
// "" when the point is empty space. Later nodes in draw order win, so a node
// drawn over another is the one hit.
func (d *Diagram) nodeAtLogical(lx, ly float64) string {
	dx, dy := d.view.LogicalToDiagram(lx, ly)
	for i := len(d.layout.Order) - 1; i >= 0; i-- {
		id := d.layout.Order[i]
		p := d.layout.Nodes[id]
		if math.Hypot(dx-p.X, dy-p.Y) <= d.opts.NodeRadius {
			return id
		}
	}
	return ""
}

// NodeScreenBounds returns the node's bounding box in surface pixels, for
// apps positioning native UI (a prompt dialog, a tooltip) over a node.
func (d *Diagram) NodeScreenBounds(id string) (Rect, bool) {
	p, ok := d.layout.Nodes[id]
	if !ok {
		return Rect{}, false
	}
	x1, y1 := d.view.DiagramToScreen(p.X-d.opts.NodeRadius, p.Y-d.opts.NodeRadius)
	x2, y2 := d.view.DiagramToScreen(p.X+d.opts.NodeRadius, p.Y+d.opts.NodeRadius)
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// --- View ---

// ResetView snaps back to zoom 1, offset (0, 0).
func (d *Diagram) ResetView() { d.view.Reset() }

// ResetViewSmooth animates back to the identity view.
func (d *Diagram) ResetViewSmooth(duration time.Duration) {
	d.view.ResetSmooth(float32(duration.Seconds()))
}

// --- Edit state ---

// Menu returns the open context menu, or nil.
func (d *Diagram) Menu() *Menu {
	return d.ed.menu
}

// EditingNode returns the id of the node being renamed inline and the text
// typed so far. ok is false when no edit is active.
func (d *Diagram) EditingNode() (id, text string, ok bool) {
	if d.ed.state != editEditing {
		return "", "", false
	}
	return d.ed.editID, string(d.ed.buffer), true
}

// --- Frame loop ---

// Update advances one frame: animations, keyboard, then pointer gestures.
func (d *Diagram) Update() error {
	d.view.update(1.0 / float32(ebiten.TPS()))
	if d.ed.state == editEditing {
		d.pollEditKeys()
	}
	d.processInput()
	return nil
}

// buildFrame projects the current layout through the viewport into screen
// pixels. Edge control points sit at the segment midpoint pulled toward the
// canvas center, which bows every connector gently inward.
func (d *Diagram) buildFrame() *Frame {
	f := &Frame{
		Width:  d.view.surfaceW,
		Height: d.view.surfaceH,
		Edges:  make([]RenderEdge, 0, len(d.layout.Edges)),
		Nodes:  make([]RenderNode, 0, len(d.layout.Order)),
	}
	for _, e := range d.layout.Edges {
		pp := d.layout.Nodes[e.ParentID]
		cp := d.layout.Nodes[e.ChildID]
		mx, my := (pp.X+cp.X)/2, (pp.Y+cp.Y)/2
		ctlX := mx + (d.layout.CenterX-mx)*0.15
		ctlY := my + (d.layout.CenterY-my)*0.15
		x1, y1 := d.view.DiagramToScreen(pp.X, pp.Y)
		cx, cy := d.view.DiagramToScreen(ctlX, ctlY)
		x2, y2 := d.view.DiagramToScreen(cp.X, cp.Y)
		f.Edges = append(f.Edges, RenderEdge{X1: x1, Y1: y1, CX: cx, CY: cy, X2: x2, Y2: y2})
	}
	editID, editText, editing := d.EditingNode()
	for _, id := range d.layout.Order {
		p := d.layout.Nodes[id]
		n := d.tree.FindByID(id)
		if n == nil {
			continue
		}
		sx, sy := d.view.DiagramToScreen(p.X, p.Y)
		rx, _ := d.view.LogicalToScreen(d.opts.NodeRadius*d.view.Zoom, 0)
		rn := RenderNode{
			ID:     id,
			Name:   n.Name,
			X:      sx,
			Y:      sy,
			Radius: rx,
			Angle:  p.Angle,
			Depth:  p.Depth,
			IsRoot: p.IsRoot,
			IsLeaf: p.IsLeaf,
		}
		if editing && id == editID {
			rn.Editing = true
			rn.Name = editText
		}
		f.Nodes = append(f.Nodes, rn)
	}
	return f
}

// Draw renders the diagram and its edit chrome onto the screen.
func (d *Diagram) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	d.view.SetSurfaceSize(float64(b.Dx()), float64(b.Dy()))
	d.renderer.DrawFrame(screen, d.buildFrame())
	d.drawOverlay(screen)
}

// drawOverlay paints the context menu on top of the scene.
func (d *Diagram) drawOverlay(screen *ebiten.Image) {
	if d.ed.menu == nil {
		return
	}
	rects := make([]Rect, len(d.ed.menu.Items))
	for i := range d.ed.menu.Items {
		lr := d.menuItemRect(i)
		x1, y1 := d.view.LogicalToScreen(lr.X, lr.Y)
		x2, y2 := d.view.LogicalToScreen(lr.X+lr.Width, lr.Y+lr.Height)
		rects[i] = Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
	}
	d.chrome.drawMenu(screen, d.ed.menu.Items, rects)
}

// WriteSnapshot serializes the tree to JSON and writes it to w.
func (d *Diagram) WriteSnapshot(w io.Writer) error {
	data, err := d.JSON()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// --- Run helper ---

// RunConfig configures the standalone window opened by Run.
type RunConfig struct {
	Title         string
	WindowWidth   int
	WindowHeight  int
	Resizable     bool
	DisableVsync  bool
	RunGameOption *ebiten.RunGameOptions
}

type game struct {
	d *Diagram
}

func (g *game) Update() error { return g.d.Update() }

func (g *game) Draw(screen *ebiten.Image) { g.d.Draw(screen) }

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the diagram until the window closes. Apps
// embedding the diagram in their own ebiten game call Update and Draw
// themselves instead.
func Run(d *Diagram, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "brainmap"
	}
	w, h := cfg.WindowWidth, cfg.WindowHeight
	if w <= 0 {
		w = int(d.opts.Width)
	}
	if h <= 0 {
		h = int(d.opts.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if cfg.DisableVsync {
		ebiten.SetVsyncEnabled(false)
	}
	if cfg.RunGameOption != nil {
		return ebiten.RunGameWithOptions(&game{d: d}, cfg.RunGameOption)
	}
	return ebiten.RunGame(&game{d: d})
}
