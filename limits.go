package formstream

// Limits bounds the shape of a form accepted by Finalize. Zero fields
// take the defaults.
type Limits struct {
	MaxParts       int   // number of parts per form
	MaxPartSize    int64 // declared payload size of a single part
	MaxTotalLength int64 // encoded body length including delimiters and headers
}

func defaultLimits() Limits {
	return Limits{
		MaxParts:       10_000,
		MaxPartSize:    4 << 30, // 4 GiB
		MaxTotalLength: 8 << 30, // 8 GiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxParts == 0 {
		l.MaxParts = d.MaxParts
	}
	if l.MaxPartSize == 0 {
		l.MaxPartSize = d.MaxPartSize
	}
	if l.MaxTotalLength == 0 {
		l.MaxTotalLength = d.MaxTotalLength
	}
	return l
}
