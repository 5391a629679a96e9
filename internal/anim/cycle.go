package anim

import (
	"context"
	"sync"

	"github.com/san-kum/fibtree/internal/fibtree"
)

// Paint draws one still scene: sky, the tree up to level shown, then the
// ground strip over the trunk's base.
func Paint(c Canvas, s Settings, tree *fibtree.Tree, shown int) {
	c.Clear(SkyColor)
	tree.RenderUpToLevel(c, shown)
	if g := s.GroundTop; g > 0 && g < s.Height {
		c.FillRect(0, g, s.Width, s.Height-g, GroundColor)
	}
}

// RenderCycle paints every frame of the current tree's growth cycle onto
// canvases from newCanvas, one goroutine per frame. Frame i shows levels
// below i, exactly as the i-th call to Frame after a wrap would. The cursor
// is left alone.
func (d *Driver) RenderCycle(ctx context.Context, newCanvas func() Canvas) ([]Canvas, error) {
	tree := d.tree
	n := d.Cycle()
	frames := make([]Canvas, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			c := newCanvas()
			Paint(c, d.settings, tree, idx)
			frames[idx] = c
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	d.log.Debug("rendered cycle", "frames", n, "levels", tree.Levels())
	return frames, nil
}
