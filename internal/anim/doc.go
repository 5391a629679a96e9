// Package anim drives the growth animation: it reveals a tree one level per
// frame and grows a fresh random tree once the last level has been shown.
package anim
