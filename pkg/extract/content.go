package extract

// ContentItem is one abstract scan input: either a reference to a file on
// disk or a chunk of inline text, plus a type tag for downstream grammar
// selection. Exactly one of Path and Content should be populated; an item
// with neither contributes an empty buffer rather than an error.
type ContentItem struct {
	// Path references a file to read in full. Takes effect only when
	// Content is empty.
	Path string

	// Content is inline text whose bytes are adopted directly.
	Content string

	// Extension is the declared content type (e.g. "html", "vue"). It is
	// metadata for downstream consumers and does not influence scanning.
	Extension string
}
