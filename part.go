package formstream

import (
	"io"
	"strings"
)

// Part is one entry of a form: a field carrying an in-memory string value,
// or a file whose payload is drained lazily from a ByteSource. The two
// variants are the only implementations; parts are created through
// [Form.AddField] and [Form.AddFile] and emitted in insertion order.
type Part interface {
	// Name returns the form field name.
	Name() string
	// Filename returns the attachment filename, or "" when absent.
	// Field parts never carry one.
	Filename() string
	// ContentType returns the declared payload content type. Field parts
	// return "" (their type, when emitted at all, is implied by the
	// header rules).
	ContentType() string
	// Size returns the payload length in bytes. It never reads payload
	// data: file sizes are the source's declared size, trusted as-is.
	Size() int64

	header() string
	open() (io.ReadCloser, error)
}

type fieldPart struct {
	name  string
	value string
}

func (p fieldPart) Name() string        { return p.name }
func (p fieldPart) Filename() string    { return "" }
func (p fieldPart) ContentType() string { return "" }
func (p fieldPart) Size() int64         { return int64(len(p.value)) }

func (p fieldPart) header() string {
	return headerForField(p.name, p.value)
}

func (p fieldPart) open() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(p.value)), nil
}

type filePart struct {
	name string
	src  ByteSource
}

func (p filePart) Name() string        { return p.name }
func (p filePart) Filename() string    { return p.src.Filename() }
func (p filePart) ContentType() string { return p.src.ContentType() }
func (p filePart) Size() int64         { return p.src.Size() }

func (p filePart) header() string {
	return headerForFile(p.name, p.src.Filename(), p.src.ContentType(), sourceEncoding(p.src))
}

func (p filePart) open() (io.ReadCloser, error) {
	return p.src.Open()
}
