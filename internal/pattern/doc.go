// Package pattern holds the regexp templates used to locate blank
// defects. Each defect kind maps to one or two templates (one for
// tab-preferred rendering, one for space-preferred), parameterized by
// tab width. Compiled patterns are cached per kind, preference, and
// width.
package pattern
