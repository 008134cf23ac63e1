// Package text groups the fragments of one line of extracted text into
// phrases, words or single characters.
//
// # Clustering
//
// [Cluster] scans a line in reading order and starts a new group whenever
// the horizontal gap between two consecutive fragments falls outside
// [-spaceWidth, 2*spaceWidth]:
//
//	groups := text.Cluster(line, text.Words)
//	for _, g := range groups {
//	    row := layout.NewRowFromGroup(g)
//	    ...
//	}
//
// # Modes
//
//   - [Phrases] - split on gaps only; blank fragments inside a phrase are
//     kept as spacers and wholly blank phrases are dropped
//   - [Words] - blank fragments also end the current word and are consumed
//   - [Characters] - every fragment is its own group
//
// The heuristic never attempts linguistic word segmentation. It only looks
// at spacing relative to the width of a space in the line's font.
package text
