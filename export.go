package brainmap

import (
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// ExportPNG renders the tree at the identity view (zoom 1, no pan) and
// writes a PNG to w. It never touches a display, so it works headless and
// from the command line.
func ExportPNG(w io.Writer, root *Node, opts Options) error {
	opts = opts.withDefaults()
	l := ComputeLayout(root, opts)
	theme := DefaultTheme()

	dc := gg.NewContext(int(opts.Width), int(opts.Height))
	dc.SetColor(theme.Background)
	dc.Clear()

	dc.SetColor(theme.Edge)
	dc.SetLineWidth(1.5)
	for _, e := range l.Edges {
		pp := l.Nodes[e.ParentID]
		cp := l.Nodes[e.ChildID]
		mx, my := (pp.X+cp.X)/2, (pp.Y+cp.Y)/2
		dc.MoveTo(pp.X, pp.Y)
		dc.QuadraticTo(mx+(l.CenterX-mx)*0.15, my+(l.CenterY-my)*0.15, cp.X, cp.Y)
		dc.Stroke()
	}

	dc.SetFontFace(exportFace(13))

	names := nodeNames(root)
	for _, id := range l.Order {
		p := l.Nodes[id]
		fill := theme.NodeFill
		if p.IsRoot {
			fill = theme.RootFill
		}
		dc.SetColor(fill)
		dc.DrawCircle(p.X, p.Y, opts.NodeRadius)
		dc.Fill()
		dc.SetColor(theme.NodeStroke)
		dc.SetLineWidth(1.5)
		dc.DrawCircle(p.X, p.Y, opts.NodeRadius)
		dc.Stroke()
		dc.DrawStringAnchored(names[id], p.X, p.Y, 0.5, 0.35)
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("brainmap: encode png: %w", err)
	}
	return nil
}

func exportFace(points float64) font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: points})
}

func nodeNames(root *Node) map[string]string {
	names := make(map[string]string)
	var walk func(n *Node)
	walk = func(n *Node) {
		names[n.ID] = n.Name
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return names
}

// CopySnapshot places the diagram's JSON snapshot on the system clipboard.
func (d *Diagram) CopySnapshot() error {
	data, err := d.JSON()
	if err != nil {
		return err
	}
	return clipboard.WriteAll(string(data))
}
