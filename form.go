package formstream

import "io"

// Form accumulates fields and files and encodes them as a
// multipart/form-data body. The zero value is not usable; construct with
// New. Parts are emitted in insertion order. A Form is single use: after
// a successful Finalize it cannot be finalized again, matching the fact
// that its file sources can only be read once. Form is not safe for
// concurrent use.
type Form struct {
	boundary   string
	limits     Limits
	listFormat ListFormat
	parts      []Part
	finalized  bool
}

// New returns an empty form. Unless WithBoundary is given, the form
// generates its own boundary, a fixed prefix plus ten random digits.
func New(opts ...Option) *Form {
	var cfg formConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	boundary := cfg.boundary
	if boundary == "" {
		boundary = generateBoundary()
	}
	return &Form{
		boundary:   boundary,
		limits:     cfg.limits.withDefaults(),
		listFormat: cfg.listFormat,
	}
}

// AddField appends a text field. Values are carried verbatim; names and
// values with CR, LF or double quotes are escaped in the part header the
// way browsers escape them, and non-ASCII values are marked with an
// explicit utf-8 charset line.
func (f *Form) AddField(name, value string) {
	f.parts = append(f.parts, fieldPart{name: name, value: value})
}

// AddFile appends a file part backed by src. The source's declared size
// is trusted for length computation and the payload is read only when
// the encoded stream reaches the part.
func (f *Form) AddFile(name string, src ByteSource) {
	f.parts = append(f.parts, filePart{name: name, src: src})
}

// Parts returns a copy of the parts added so far, in insertion order.
func (f *Form) Parts() []Part {
	return append([]Part(nil), f.parts...)
}

// Boundary returns the delimiter string the form encodes with.
func (f *Form) Boundary() string {
	return f.boundary
}

// ContentType returns the value for the Content-Type request header.
func (f *Form) ContentType() string {
	return "multipart/form-data; boundary=" + f.boundary
}

// ContentLength returns the exact encoded length of the form as it
// stands, computed from declared sizes without reading any source.
func (f *Form) ContentLength() int64 {
	return totalLength(f.boundary, f.parts)
}

// Validate checks the form's boundary and parts against its limits. It
// is run by Finalize; calling it earlier reports problems before any
// source is committed to streaming.
func (f *Form) Validate() error {
	return validateForm(f.boundary, f.parts, f.limits)
}

// Finalize validates the form and returns the encoded stream. The stream
// snapshots the current parts; parts added afterwards are not included.
// A form finalizes at most once: a second call fails with ErrFinalized,
// while a failed validation leaves the form open so it can be corrected
// and finalized again.
func (f *Form) Finalize() (*Stream, error) {
	if f.finalized {
		return nil, ErrFinalized
	}
	if err := validateForm(f.boundary, f.parts, f.limits); err != nil {
		return nil, err
	}
	parts := append([]Part(nil), f.parts...)
	f.finalized = true
	return newStream(f.boundary, parts, totalLength(f.boundary, parts)), nil
}

// WriteTo finalizes the form and writes the encoded body to w. The
// returned count equals ContentLength when the write succeeds.
func (f *Form) WriteTo(w io.Writer) (int64, error) {
	stream, err := f.Finalize()
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(w, stream)
	if cerr := stream.Close(); err == nil {
		err = cerr
	}
	return n, err
}
