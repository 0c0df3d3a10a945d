// Package tracks models audio and subtitle tracks and implements the
// selection heuristics: which audio track is the default, which extra audio
// tracks are worth offering, which subtitle best matches the preferred
// language, and how an external sidecar subtitle folds into the track list.
//
// Everything here is pure computation over track descriptors; inspection and
// persistence live elsewhere.
package tracks
