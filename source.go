package formstream

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

const defaultContentType = "application/octet-stream"

// ByteSource supplies the payload of a file part. The declared Size must
// be known without reading and is trusted as-is by length computation and
// framing; a source that produces a different number of bytes corrupts
// the encoded body. Open begins a lazy, single-pass read of the payload.
// The encoder never rewinds a source, so replaying a part requires a
// fresh ByteSource.
type ByteSource interface {
	// Size returns the declared payload length in bytes.
	Size() int64
	// Filename returns the attachment filename, or "" when absent.
	Filename() string
	// ContentType returns the payload content type.
	ContentType() string
	// Open starts producing the payload bytes. It is called at most once
	// per encoded stream.
	Open() (io.ReadCloser, error)
}

// contentEncodedSource is implemented by sources whose payload bytes carry
// an HTTP content coding (see CompressSource).
type contentEncodedSource interface {
	ContentEncoding() string
}

func sourceEncoding(src ByteSource) string {
	if es, ok := src.(contentEncodedSource); ok {
		return es.ContentEncoding()
	}
	return ""
}

// SourceOption customizes a source constructor.
type SourceOption func(*sourceConfig)

type sourceConfig struct {
	filename    string
	contentType string
}

// WithSourceFilename overrides the filename reported by the source.
func WithSourceFilename(name string) SourceOption {
	return func(c *sourceConfig) { c.filename = name }
}

// WithSourceContentType overrides the content type reported by the
// source, suppressing detection.
func WithSourceContentType(contentType string) SourceOption {
	return func(c *sourceConfig) { c.contentType = contentType }
}

func applySourceOptions(opts []SourceOption) sourceConfig {
	var cfg sourceConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Function variables for testing injection.
var (
	detectType = func(data []byte) string { return mimetype.Detect(data).String() }

	detectFileType = func(path string) (string, error) {
		mt, err := mimetype.DetectFile(path)
		if err != nil {
			return "", err
		}
		return mt.String(), nil
	}
)

type bytesSource struct {
	filename    string
	contentType string
	encoding    string
	data        []byte
}

func (s *bytesSource) Size() int64             { return int64(len(s.data)) }
func (s *bytesSource) Filename() string        { return s.filename }
func (s *bytesSource) ContentType() string     { return s.contentType }
func (s *bytesSource) ContentEncoding() string { return s.encoding }

func (s *bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

// BytesSource builds an in-memory ByteSource. Unless overridden, the
// content type is sniffed from the data; empty data defaults to
// application/octet-stream.
func BytesSource(data []byte, opts ...SourceOption) ByteSource {
	cfg := applySourceOptions(opts)
	contentType := cfg.contentType
	if contentType == "" {
		if len(data) == 0 {
			contentType = defaultContentType
		} else {
			contentType = detectType(data)
		}
	}
	return &bytesSource{
		filename:    cfg.filename,
		contentType: contentType,
		data:        data,
	}
}

type fileSource struct {
	path        string
	filename    string
	contentType string
	size        int64
}

func (s *fileSource) Size() int64         { return s.size }
func (s *fileSource) Filename() string    { return s.filename }
func (s *fileSource) ContentType() string { return s.contentType }

func (s *fileSource) Open() (io.ReadCloser, error) {
	return os.Open(s.path)
}

// FileSource builds a ByteSource backed by a file on disk. The file is
// stat'ed now for its declared size and opened lazily when the encoded
// stream reaches the part, so the size must not change in between. Unless
// overridden, the filename is the file's base name and the content type
// is sniffed from the file's leading bytes, falling back to
// application/octet-stream when detection fails.
func FileSource(path string, opts ...SourceOption) (ByteSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %q is a directory", ErrValidation, path)
	}
	cfg := applySourceOptions(opts)
	filename := cfg.filename
	if filename == "" {
		filename = info.Name()
	}
	contentType := cfg.contentType
	if contentType == "" {
		if detected, err := detectFileType(path); err == nil {
			contentType = detected
		} else {
			contentType = defaultContentType
		}
	}
	return &fileSource{
		path:        path,
		filename:    filename,
		contentType: contentType,
		size:        info.Size(),
	}, nil
}

type readerSource struct {
	r           io.Reader
	filename    string
	contentType string
	size        int64
}

func (s *readerSource) Size() int64         { return s.size }
func (s *readerSource) Filename() string    { return s.filename }
func (s *readerSource) ContentType() string { return s.contentType }

func (s *readerSource) Open() (io.ReadCloser, error) {
	if rc, ok := s.r.(io.ReadCloser); ok {
		return rc, nil
	}
	return io.NopCloser(s.r), nil
}

// ReaderSource wraps an arbitrary reader with a declared size. The reader
// is single-pass and cannot be sniffed, so the content type defaults to
// application/octet-stream unless overridden. If r implements io.Closer
// it is closed once its part has been drained.
func ReaderSource(r io.Reader, size int64, opts ...SourceOption) ByteSource {
	cfg := applySourceOptions(opts)
	contentType := cfg.contentType
	if contentType == "" {
		contentType = defaultContentType
	}
	return &readerSource{
		r:           r,
		filename:    cfg.filename,
		contentType: contentType,
		size:        size,
	}
}
