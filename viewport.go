package brainmap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewportAnim holds active tweens for an animated return to the identity
// view.
type viewportAnim struct {
	zoom *gween.Tween
	offX *gween.Tween
	offY *gween.Tween
}

// Viewport is the pan/zoom transform between diagram coordinates (where the
// layout lives) and the logical canvas. Pan offsets are in logical units;
// zoom is a unitless multiplier clamped to the configured bounds.
//
// Three spaces are involved: surface pixels (the actual on-screen size),
// the logical canvas (the configured Width×Height the layout is computed
// in), and diagram space (logical divided by the pan/zoom transform).
// Surface↔logical is scale-to-fit and independent of zoom and pan.
type Viewport struct {
	Zoom    float64
	OffsetX float64
	OffsetY float64

	minZoom, maxZoom   float64
	logicalW, logicalH float64
	surfaceW, surfaceH float64

	anim *viewportAnim
}

func newViewport(opts Options) *Viewport {
	return &Viewport{
		Zoom:     1,
		minZoom:  opts.MinZoom,
		maxZoom:  opts.MaxZoom,
		logicalW: opts.Width,
		logicalH: opts.Height,
		surfaceW: opts.Width,
		surfaceH: opts.Height,
	}
}

// SetSurfaceSize records the on-screen pixel size of the render surface.
// Called automatically from Diagram.Draw.
func (v *Viewport) SetSurfaceSize(w, h float64) {
	if w > 0 {
		v.surfaceW = w
	}
	if h > 0 {
		v.surfaceH = h
	}
}

// ScreenToLogical maps surface pixels onto the logical canvas.
func (v *Viewport) ScreenToLogical(sx, sy float64) (float64, float64) {
	return sx * v.logicalW / v.surfaceW, sy * v.logicalH / v.surfaceH
}

// LogicalToScreen maps logical canvas coordinates to surface pixels.
func (v *Viewport) LogicalToScreen(lx, ly float64) (float64, float64) {
	return lx * v.surfaceW / v.logicalW, ly * v.surfaceH / v.logicalH
}

// LogicalToDiagram maps a logical point through the inverse pan/zoom.
func (v *Viewport) LogicalToDiagram(lx, ly float64) (float64, float64) {
	return (lx - v.OffsetX) / v.Zoom, (ly - v.OffsetY) / v.Zoom
}

// DiagramToLogical applies pan and zoom to a diagram point.
func (v *Viewport) DiagramToLogical(dx, dy float64) (float64, float64) {
	return dx*v.Zoom + v.OffsetX, dy*v.Zoom + v.OffsetY
}

// ScreenToDiagram runs the full pipeline: surface pixels to diagram space.
func (v *Viewport) ScreenToDiagram(sx, sy float64) (float64, float64) {
	lx, ly := v.ScreenToLogical(sx, sy)
	return v.LogicalToDiagram(lx, ly)
}

// DiagramToScreen runs the full pipeline the other way.
func (v *Viewport) DiagramToScreen(dx, dy float64) (float64, float64) {
	lx, ly := v.DiagramToLogical(dx, dy)
	return v.LogicalToScreen(lx, ly)
}

func (v *Viewport) clampZoom(z float64) float64 {
	if z < v.minZoom {
		return v.minZoom
	}
	if z > v.maxZoom {
		return v.maxZoom
	}
	return z
}

// ZoomAt multiplies zoom by factor while keeping the diagram point currently
// under the logical anchor (ax, ay) fixed at that anchor.
func (v *Viewport) ZoomAt(factor, ax, ay float64) {
	v.stopAnim()
	dx, dy := v.LogicalToDiagram(ax, ay)
	v.Zoom = v.clampZoom(v.Zoom * factor)
	v.OffsetX = ax - dx*v.Zoom
	v.OffsetY = ay - dy*v.Zoom
}

// ZoomStep applies one zoom tick anchored at the canvas center: the point at
// the center stays at the center.
func (v *Viewport) ZoomStep(factor float64) {
	v.ZoomAt(factor, v.logicalW/2, v.logicalH/2)
}

// applyPinch recomputes zoom and offset for a two-touch gesture. All
// coordinates are logical. The ref values are captured at gesture start; the
// diagram point that was under the starting centroid stays glued to it, and
// the whole view then follows the centroid's own drift.
func (v *Viewport) applyPinch(refZoom, refOffX, refOffY, startCX, startCY, curCX, curCY, scale float64) {
	v.stopAnim()
	z := v.clampZoom(refZoom * scale)
	dx := (startCX - refOffX) / refZoom
	dy := (startCY - refOffY) / refZoom
	v.Zoom = z
	v.OffsetX = startCX - dx*z + (curCX - startCX)
	v.OffsetY = startCY - dy*z + (curCY - startCY)
}

// Reset restores the identity view immediately: zoom 1, offset (0, 0).
func (v *Viewport) Reset() {
	v.stopAnim()
	v.Zoom = 1
	v.OffsetX = 0
	v.OffsetY = 0
}

// ResetSmooth tweens back to the identity view over duration seconds.
func (v *Viewport) ResetSmooth(duration float32) {
	v.anim = &viewportAnim{
		zoom: gween.New(float32(v.Zoom), 1, duration, ease.OutQuad),
		offX: gween.New(float32(v.OffsetX), 0, duration, ease.OutQuad),
		offY: gween.New(float32(v.OffsetY), 0, duration, ease.OutQuad),
	}
}

// Any direct gesture cancels an in-flight reset animation.
func (v *Viewport) stopAnim() {
	v.anim = nil
}

// update advances an active reset animation. Called from Diagram.Update.
func (v *Viewport) update(dt float32) {
	if v.anim == nil {
		return
	}
	z, doneZ := v.anim.zoom.Update(dt)
	x, doneX := v.anim.offX.Update(dt)
	y, doneY := v.anim.offY.Update(dt)
	v.Zoom = float64(z)
	v.OffsetX = float64(x)
	v.OffsetY = float64(y)
	if doneZ && doneX && doneY {
		v.anim = nil
	}
}
