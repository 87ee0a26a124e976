// Package style defines the blank-defect kinds and resolves layered
// style configuration into an effective, precedence-ordered style.
//
// Three configuration levels exist: per-file (regexp keyed), per-mode
// (exact keyed), and default. Resolution is first-match-wins with no
// merging across levels: the first per-file entry whose pattern
// matches the file identifier wins entirely, otherwise the first
// per-mode entry whose key equals the mode identifier, otherwise the
// default. Action tables follow the same precedence.
package style
