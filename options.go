package formstream

type formConfig struct {
	boundary   string
	limits     Limits
	listFormat ListFormat
}

// Option customizes a Form at construction.
type Option func(*formConfig)

// WithBoundary replaces the generated boundary with a caller-supplied
// one. The boundary is validated at Finalize: 1 to 69 bytes of letters,
// digits, or '()+_,-./:=? characters.
func WithBoundary(boundary string) Option {
	return func(c *formConfig) { c.boundary = boundary }
}

// WithLimits replaces the default form limits. Zero fields keep their
// defaults.
func WithLimits(l Limits) Option {
	return func(c *formConfig) { c.limits = l }
}

// WithListFormat sets how FromMap expands list values into field names.
func WithListFormat(f ListFormat) Option {
	return func(c *formConfig) { c.listFormat = f }
}
