package document

// Option configures a Document during creation.
type Option func(*Document)

// WithContent sets the initial text.
func WithContent(text string) Option {
	return func(d *Document) {
		d.lines = splitLines(text)
	}
}
