// Package wm is the tiling core: the registry of managed windows, the
// manageability classifier, the arranger that turns layout tiles into one
// batched reposition, and the dispatcher that applies notifications to all
// three from a single event loop.
package wm
