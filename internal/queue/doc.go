// Package queue persists text-to-speech items as plain files in three
// sibling directories (todo, working, done) and exposes the primitive
// operations that move items between them.
//
// There is no index or manifest: the directory listing is the source of
// truth, and every view is re-derived by enumeration. Transitions are
// single rename calls, so an item is always fully in one directory or
// fully in another; concurrent listers never observe a partial move.
//
// Treat this package as the single source of truth for queue semantics.
// Higher layers (views, control, statusfeed) build on List, Read, Move,
// and Create and must not touch the directories directly.
package queue
