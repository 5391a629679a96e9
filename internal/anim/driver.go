package anim

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/san-kum/fibtree/internal/fibtree"
)

var (
	// SkyColor fills the scene before each frame.
	SkyColor = color.RGBA{200, 225, 245, 255}
	// GroundColor is the strip drawn over the base of the trunk.
	GroundColor = color.RGBA{90, 70, 45, 255}
)

// ErrLevelRange indicates an empty or non-positive level range.
var ErrLevelRange = errors.New("anim: invalid level range")

// Canvas is a Surface that can also be wiped between frames.
type Canvas interface {
	fibtree.Surface
	Clear(c color.RGBA)
}

// Settings describe the scene a Driver draws.
type Settings struct {
	Width, Height float64
	RootX, RootY  float64
	MinLevels     int
	MaxLevels     int
	// GroundTop is where the ground strip starts. Zero disables it.
	GroundTop float64
}

// Frame reports what a call to Driver.Frame drew.
type Frame struct {
	Tree    *fibtree.Tree
	Shown   int  // levels drawn this frame
	Cursor  int  // cursor after advancing
	NewTree bool // a fresh tree replaced the old one after drawing
}

// Driver holds the animation state: the current tree and the frame cursor.
type Driver struct {
	settings Settings
	rng      fibtree.Rand
	log      *slog.Logger
	tree     *fibtree.Tree
	cursor   int
}

// New validates the settings and grows the first tree.
func New(s Settings, rng fibtree.Rand, log *slog.Logger) (*Driver, error) {
	if s.MinLevels < 1 || s.MaxLevels < s.MinLevels {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrLevelRange, s.MinLevels, s.MaxLevels)
	}
	if log == nil {
		log = slog.Default()
	}
	d := &Driver{settings: s, rng: rng, log: log}
	if err := d.grow(); err != nil {
		return nil, err
	}
	return d, nil
}

// Tree returns the tree currently being grown.
func (d *Driver) Tree() *fibtree.Tree { return d.tree }

// Cursor returns the frame cursor; the next frame shows levels below it.
func (d *Driver) Cursor() int { return d.cursor }

// Settings returns the scene the driver draws into.
func (d *Driver) Settings() Settings { return d.settings }

// Reset replaces the tree immediately and restarts the cycle.
func (d *Driver) Reset() error {
	d.cursor = 0
	return d.grow()
}

func (d *Driver) grow() error {
	levels := d.settings.MinLevels + d.rng.Intn(d.settings.MaxLevels-d.settings.MinLevels+1)
	tree, err := fibtree.New(d.settings.RootX, d.settings.RootY, levels, d.rng)
	if err != nil {
		return err
	}
	d.tree = tree
	d.log.Debug("grew tree",
		"levels", levels,
		"branches", tree.Len(),
		"trunk_width", tree.Trunk().Width())
	return nil
}

// Frame draws the next frame onto c. The cursor climbs by one each frame and
// everything below it is shown; after the full tree has been on screen for
// one frame the cursor wraps and a new tree is grown for the next cycle.
func (d *Driver) Frame(c Canvas) Frame {
	d.cursor++
	shown := d.cursor - 1
	tree := d.tree
	Paint(c, d.settings, tree, shown)

	f := Frame{Tree: tree, Shown: shown}
	if d.cursor > tree.Levels() {
		d.cursor = 0
		if err := d.grow(); err != nil {
			d.log.Error("grow tree", "error", err)
		} else {
			f.NewTree = true
		}
	}
	f.Cursor = d.cursor
	return f
}

// Cycle returns how many frames one full growth of the current tree takes,
// starting from a zero cursor.
func (d *Driver) Cycle() int {
	return d.tree.Levels() + 1
}
