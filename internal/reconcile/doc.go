// Package reconcile applies track assignments to persisted per-file playback
// settings without clobbering prior explicit choices.
//
// The governing rule: an existing stream index is never overwritten unless
// the caller forces it, and an index of -1 is equivalent to having no record
// at all. Each assignment runs its read-check-write sequence inside one
// store transaction.
package reconcile
