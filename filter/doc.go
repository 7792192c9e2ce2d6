// Package filter provides pixel filters that run on a pixproc.Engine.
//
// Each filter is a pure per-pixel rule plus an Apply method satisfying
// pixproc.Filter, so it can be driven directly through Engine.Process or
// tiled through Engine.Run.
//
// Available filters:
//   - Background: replaces transparent pixels with a fixed color and pulls
//     partially transparent pixels halfway toward it
package filter
