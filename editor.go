package brainmap

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// The edit controller is a three-state machine. At most one menu or one
// inline edit exists per diagram at any time; a pending name prompt is a
// suspend point that blocks only the action waiting on it.
type editState uint8

const (
	editIdle editState = iota
	editMenuOpen
	editEditing
)

// MenuAction identifies a context-menu entry.
type MenuAction uint8

const (
	MenuRename MenuAction = iota
	MenuAddChild
	MenuAddSibling
	MenuDelete
)

// MenuItem is one entry of an open context menu.
type MenuItem struct {
	Action MenuAction
	Label  string
}

// Menu is an open context menu, keyed to one node and anchored in logical
// canvas coordinates.
type Menu struct {
	NodeID  string
	AnchorX float64
	AnchorY float64
	Items   []MenuItem
}

// Prompter supplies node names asynchronously. Implementations must call
// done exactly once; ok=false means the user dismissed the prompt and the
// pending action is abandoned with no effect. The prompter is responsible
// for re-prompting on empty input — done must deliver a non-empty value.
type Prompter interface {
	RequestName(title, placeholder, initial string, done func(name string, ok bool))
}

// editor is the per-diagram edit session state.
type editor struct {
	state  editState
	menu   *Menu
	editID string
	buffer []rune

	// promptPending blocks menu and edit entry while a name prompt is out,
	// and invalidates a stale done callback.
	promptPending bool
}

// Menu geometry, in logical units. The default chrome draws items as a
// vertical strip at the anchor; apps drawing their own menus can ignore it.
const (
	menuItemWidth  = 130.0
	menuItemHeight = 26.0
)

// --- Menu ---

func (d *Diagram) openMenu(nodeID string, ax, ay float64) {
	if d.opts.ReadOnly || d.ed.promptPending || d.ed.state == editEditing {
		return
	}
	n := d.tree.FindByID(nodeID)
	if n == nil {
		return
	}
	items := []MenuItem{
		{MenuRename, "Rename"},
		{MenuAddChild, "Add child"},
	}
	if nodeID != d.tree.Root().ID {
		items = append(items,
			MenuItem{MenuAddSibling, "Add sibling"},
			MenuItem{MenuDelete, "Delete"},
		)
	}
	d.ed.state = editMenuOpen
	d.ed.menu = &Menu{NodeID: nodeID, AnchorX: ax, AnchorY: ay, Items: items}
}

func (d *Diagram) closeMenu() {
	if d.ed.state == editMenuOpen {
		d.ed.state = editIdle
		d.ed.menu = nil
	}
}

// menuItemRect returns the logical-space rectangle of menu item i.
func (d *Diagram) menuItemRect(i int) Rect {
	m := d.ed.menu
	return Rect{
		X:      m.AnchorX,
		Y:      m.AnchorY + float64(i)*menuItemHeight,
		Width:  menuItemWidth,
		Height: menuItemHeight,
	}
}

// menuActionAt hit-tests an open menu at a logical point.
func (d *Diagram) menuActionAt(lx, ly float64) (MenuAction, bool) {
	if d.ed.menu == nil {
		return 0, false
	}
	for i, item := range d.ed.menu.Items {
		if d.menuItemRect(i).Contains(lx, ly) {
			return item.Action, true
		}
	}
	return 0, false
}

// activateMenu performs a menu item's action. The menu closes before the
// action runs so the state machine is never mid-transition when an action
// (or its prompt) re-enters the diagram.
func (d *Diagram) activateMenu(action MenuAction) {
	menu := d.ed.menu
	d.closeMenu()
	if menu == nil {
		return
	}
	switch action {
	case MenuRename:
		d.beginEdit(menu.NodeID)
	case MenuAddChild:
		d.promptName("Add child", func(name string) {
			d.AddChild(menu.NodeID, name)
		})
	case MenuAddSibling:
		d.promptName("Add sibling", func(name string) {
			d.AddSibling(menu.NodeID, name)
		})
	case MenuDelete:
		d.DeleteNode(menu.NodeID)
	}
}

// promptName gathers a node name through the prompter and applies it on
// confirmation. Cancellation leaves the tree untouched. Without a prompter
// the placeholder name is used directly.
func (d *Diagram) promptName(title string, apply func(name string)) {
	if d.prompter == nil {
		apply(placeholderName)
		return
	}
	d.ed.promptPending = true
	d.prompter.RequestName(title, placeholderName, "", func(name string, ok bool) {
		if !d.ed.promptPending {
			return // stale or duplicate resolution
		}
		d.ed.promptPending = false
		if !ok {
			return
		}
		apply(name)
	})
}

// --- Inline edit ---

func (d *Diagram) beginEdit(id string) {
	if d.opts.ReadOnly || d.ed.promptPending || d.ed.state == editEditing {
		return
	}
	n := d.tree.FindByID(id)
	if n == nil {
		return
	}
	d.closeMenu()
	d.ed.state = editEditing
	d.ed.editID = id
	d.ed.buffer = []rune(n.Name)
}

// commitEdit applies the typed text as the node's new name. Text that trims
// to empty leaves the name unchanged.
func (d *Diagram) commitEdit() {
	if d.ed.state != editEditing {
		return
	}
	id := d.ed.editID
	text := strings.TrimSpace(string(d.ed.buffer))
	d.resetEdit()
	if text == "" {
		return
	}
	d.RenameNode(id, text)
}

// cancelEdit discards the typed text.
func (d *Diagram) cancelEdit() {
	if d.ed.state != editEditing {
		return
	}
	d.resetEdit()
}

func (d *Diagram) resetEdit() {
	d.ed.state = editIdle
	d.ed.editID = ""
	d.ed.buffer = nil
}

func (d *Diagram) editInsert(r rune) {
	if d.ed.state != editEditing || r < 0x20 {
		return
	}
	d.ed.buffer = append(d.ed.buffer, r)
}

func (d *Diagram) editBackspace() {
	if d.ed.state != editEditing || len(d.ed.buffer) == 0 {
		return
	}
	d.ed.buffer = d.ed.buffer[:len(d.ed.buffer)-1]
}

// pollEditKeys feeds keyboard input into the active inline edit.
func (d *Diagram) pollEditKeys() {
	d.g.charBuf = ebiten.AppendInputChars(d.g.charBuf[:0])
	for _, r := range d.g.charBuf {
		d.editInsert(r)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		d.editBackspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		d.commitEdit()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		d.cancelEdit()
	}
}
