package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithReadOnly marks the buffer read-only from creation.
func WithReadOnly() Option {
	return func(b *Buffer) {
		b.readOnly = true
	}
}
