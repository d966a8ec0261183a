package formstream

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ContentEncoding identifies an HTTP content coding applied to a part's
// payload bytes.
type ContentEncoding uint16

const (
	EncodingIdentity ContentEncoding = iota
	EncodingGzip
	EncodingZstd
	EncodingLZ4
	EncodingBrotli
)

// token returns the content-coding token emitted in the part's
// content-encoding header line. Identity has no token and no header line.
func (e ContentEncoding) token() string {
	switch e {
	case EncodingGzip:
		return "gzip"
	case EncodingZstd:
		return "zstd"
	case EncodingLZ4:
		return "lz4"
	case EncodingBrotli:
		return "br"
	default:
		return ""
	}
}

func (e ContentEncoding) String() string {
	if e == EncodingIdentity {
		return "identity"
	}
	if t := e.token(); t != "" {
		return t
	}
	return fmt.Sprintf("encoding(%d)", uint16(e))
}

// Function variables for testing injection.
var (
	newZstdWriter = func() (*zstd.Encoder, error) { return zstd.NewWriter(nil) }
	readAll       = io.ReadAll
	gzipClose     = func(w *gzip.Writer) error { return w.Close() }
	lz4Close      = func(w *lz4.Writer) error { return w.Close() }
	brotliClose   = func(w *brotli.Writer) error { return w.Close() }
	brotliWrite   = func(w *brotli.Writer, p []byte) (int, error) { return w.Write(p) }
)

// CompressSource compresses src's payload with the given content coding
// and returns a source carrying the compressed bytes. The source is read
// fully up front so that the returned source declares the exact compressed
// size; filename and content type carry over, and the returned source
// reports the coding through its content-encoding header line.
// EncodingIdentity returns src unchanged.
func CompressSource(src ByteSource, enc ContentEncoding) (ByteSource, error) {
	if enc == EncodingIdentity {
		return src, nil
	}
	if enc.token() == "" {
		return nil, fmt.Errorf("%w: unknown content encoding %d", ErrValidation, uint16(enc))
	}
	rc, err := src.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}
	raw, err := readAll(rc)
	if cerr := rc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceRead, err)
	}

	var compressed []byte
	switch enc {
	case EncodingGzip:
		compressed, err = gzipCompress(raw)
	case EncodingZstd:
		compressed, err = zstdCompress(raw)
	case EncodingLZ4:
		compressed, err = lz4Compress(raw)
	case EncodingBrotli:
		compressed, err = brotliCompress(raw)
	}
	if err != nil {
		return nil, err
	}
	return &bytesSource{
		filename:    src.Filename(),
		contentType: src.ContentType(),
		encoding:    enc.token(),
		data:        compressed,
	}, nil
}

// gzipCompress compresses in using the gzip format.
func gzipCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := gzipCompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// gzipCompressTo writes gzip-compressed data to w.
func gzipCompressTo(w io.Writer, in []byte) error {
	zw := gzip.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = gzipClose(zw)
		return err
	}
	return gzipClose(zw)
}

// zstdCompress compresses in using the Zstandard algorithm.
func zstdCompress(in []byte) ([]byte, error) {
	enc, err := newZstdWriter()
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(in, nil), nil
}

// lz4Compress compresses in using the LZ4 algorithm.
func lz4Compress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := lz4CompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lz4CompressTo writes LZ4-compressed data to w.
func lz4CompressTo(w io.Writer, in []byte) error {
	zw := lz4.NewWriter(w)
	if _, err := zw.Write(in); err != nil {
		_ = lz4Close(zw)
		return err
	}
	return lz4Close(zw)
}

// brotliCompress compresses in using the Brotli algorithm.
func brotliCompress(in []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := brotliCompressTo(&buf, in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// brotliCompressTo writes Brotli-compressed data to w.
func brotliCompressTo(w io.Writer, in []byte) error {
	bw := brotli.NewWriter(w)
	if _, err := brotliWrite(bw, in); err != nil {
		_ = brotliClose(bw)
		return err
	}
	return brotliClose(bw)
}
