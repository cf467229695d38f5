package pptxtojson

// Options configures a Process call. The zero value is not meant to be
// used directly — call DefaultOptions and override individual fields, the
// way the teacher's own entry points favor an explicit constructor over a
// bare struct literal.
type Options struct {
	// ResolvePlaceholderText controls whether a placeholder shape with no
	// slide-level text content emits the layout/master's default prompt
	// text (e.g. "Click to add title") as its Content, or leaves Content
	// empty. PowerPoint itself never renders that prompt text, so the
	// default is false.
	ResolvePlaceholderText bool

	// MaxZipEntrySize bounds any single extracted ZIP part, guarding
	// against a zip-bomb-style malformed input. Zero means use the
	// package default (see internal/resource).
	MaxZipEntrySize int64
}

// DefaultOptions returns the Options Process uses when none are given.
func DefaultOptions() Options {
	return Options{
		ResolvePlaceholderText: false,
		MaxZipEntrySize:        256 << 20,
	}
}
