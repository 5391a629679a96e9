// Package fibtree grows and draws a plant-like binary tree whose branch
// population per level follows the Fibonacci sequence.
//
// The package defines the core model:
//
//   - [Branch]: one line segment with an origin, angle, width and color
//   - [Tree]: an arena of branches stored leaves-first, trunk-last, linked
//     by integer indices
//   - [Surface]: the drawing primitives a renderer must provide
//
// # Example
//
//	rng := rand.New(rand.NewSource(42))
//	tree, err := fibtree.New(180, 380, 6, rng)
//	if err != nil {
//		return err
//	}
//	tree.RenderUpToLevel(surface, 4)
//
// # Thread Safety
//
// A Tree is fully built by [New] and never changes afterwards, so it may be
// rendered from any goroutine. Construction itself is not concurrent.
package fibtree
