// Package brainmap is an interactive radial mind map widget for [Ebitengine].
//
// A [Diagram] owns a tree of named nodes, lays it out radially around the
// root, and handles the full gesture set a mind map needs: drag to pan,
// wheel or pinch to zoom, double-tap to rename inline, right-click or
// long-press for a context menu with add/rename/delete actions.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	d := brainmap.New("Central Idea", brainmap.DefaultOptions())
//	brainmap.Run(d, brainmap.RunConfig{Title: "My Map"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Diagram.Update] and [Diagram.Draw] directly:
//
//	type Game struct{ d *brainmap.Diagram }
//
//	func (g *Game) Update() error              { return g.d.Update() }
//	func (g *Game) Draw(s *ebiten.Image)       { g.d.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Layout
//
// The root sits at the canvas center. Each depth ring is RadiusStep further
// out, and every subtree gets a contiguous angular sector proportional to
// its leaf count, so dense branches get room and child order is preserved
// clockwise from 12 o'clock. The layout is a pure function of the tree:
// it is recomputed from scratch after every edit and never drifts.
//
// # Snapshots
//
// Trees serialize to a small JSON form carrying only ids, names and child
// order ([Diagram.JSON], [Diagram.LoadJSON], [Diagram.SetData]). [ExportPNG]
// renders a snapshot headlessly, without a window.
//
// # Custom rendering
//
// The built-in [VectorRenderer] draws circles, curved connectors and debug
// font labels. Implement [Renderer] to draw nodes your own way; the [Frame]
// passed in is already projected to screen pixels.
//
// [Ebitengine]: https://ebitengine.org
package brainmap
