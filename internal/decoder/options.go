package decoder

// Option configures a Decoder.
type Option func(*Decoder)

// WithIgnoreUnknown makes the decoder skip top-level attributes the model
// type does not declare instead of failing with UnknownAttributeError.
func WithIgnoreUnknown() Option {
	return func(d *Decoder) {
		d.ignoreUnknown = true
	}
}

// WithDefaultType sets the tag used for items of a typed category whose
// mapping form has no "type" field.
func WithDefaultType(category, tag string) Option {
	return func(d *Decoder) {
		d.defaults[category] = tag
	}
}
