package formstream

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

type errWriter struct{}

func (errWriter) Write(p []byte) (int, error) { return 0, io.ErrClosedPipe }

func decompressPayload(t *testing.T, enc ContentEncoding, data []byte) []byte {
	t.Helper()
	var (
		out []byte
		err error
	)
	switch enc {
	case EncodingGzip:
		var zr *gzip.Reader
		if zr, err = gzip.NewReader(bytes.NewReader(data)); err == nil {
			out, err = io.ReadAll(zr)
		}
	case EncodingZstd:
		var dec *zstd.Decoder
		if dec, err = zstd.NewReader(nil); err == nil {
			defer dec.Close()
			out, err = dec.DecodeAll(data, nil)
		}
	case EncodingLZ4:
		out, err = io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case EncodingBrotli:
		out, err = io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	default:
		t.Fatalf("no decoder for %v", enc)
	}
	if err != nil {
		t.Fatalf("decompress %v: %v", enc, err)
	}
	return out
}

func TestCompressSourceRoundTrips(t *testing.T) {
	payload := []byte(strings.Repeat("form data compresses well ", 64))
	encodings := []ContentEncoding{EncodingGzip, EncodingZstd, EncodingLZ4, EncodingBrotli}
	for _, enc := range encodings {
		t.Run(enc.String(), func(t *testing.T) {
			src := BytesSource(payload,
				WithSourceFilename("data.txt"),
				WithSourceContentType("text/plain"))
			cs, err := CompressSource(src, enc)
			if err != nil {
				t.Fatalf("CompressSource: %v", err)
			}
			if cs.Filename() != "data.txt" || cs.ContentType() != "text/plain" {
				t.Fatalf("metadata not carried over: %q %q", cs.Filename(), cs.ContentType())
			}
			if got := sourceEncoding(cs); got != enc.token() {
				t.Fatalf("sourceEncoding = %q, want %q", got, enc.token())
			}

			rc, err := cs.Open()
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			compressed, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				t.Fatalf("read compressed: %v", err)
			}
			if int64(len(compressed)) != cs.Size() {
				t.Fatalf("declared size %d, produced %d bytes", cs.Size(), len(compressed))
			}
			if got := decompressPayload(t, enc, compressed); !bytes.Equal(got, payload) {
				t.Fatalf("round trip mismatch: %d bytes vs %d", len(got), len(payload))
			}
		})
	}
}

func TestCompressSourceIdentity(t *testing.T) {
	src := BytesSource([]byte("abc"))
	cs, err := CompressSource(src, EncodingIdentity)
	if err != nil {
		t.Fatalf("CompressSource: %v", err)
	}
	if cs != src {
		t.Fatal("identity must return the source unchanged")
	}
}

func TestCompressSourceUnknownEncoding(t *testing.T) {
	_, err := CompressSource(BytesSource([]byte("abc")), ContentEncoding(99))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestCompressedPartStreamsWithExactLength(t *testing.T) {
	payload := []byte(strings.Repeat("0123456789", 100))
	src, err := CompressSource(BytesSource(payload, WithSourceFilename("n.bin")), EncodingZstd)
	if err != nil {
		t.Fatalf("CompressSource: %v", err)
	}

	form := New()
	form.AddField("kind", "numbers")
	form.AddFile("data", src)

	want := form.ContentLength()
	stream, err := form.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	defer stream.Close()
	body := drainStream(t, stream)
	if int64(len(body)) != want {
		t.Fatalf("streamed %d bytes, ContentLength said %d", len(body), want)
	}
	if !bytes.Contains(body, []byte("content-encoding: zstd\r\n")) {
		t.Fatalf("content-encoding line missing from %q", body)
	}
}

func TestContentEncodingString(t *testing.T) {
	if got := EncodingIdentity.String(); got != "identity" {
		t.Fatalf("identity String = %q", got)
	}
	if got := EncodingBrotli.String(); got != "br" {
		t.Fatalf("brotli String = %q", got)
	}
	if got := ContentEncoding(99).String(); got != "encoding(99)" {
		t.Fatalf("unknown String = %q", got)
	}
}

func TestCompressHelpers_ErrorPaths(t *testing.T) {
	// gzip write error surfaces through Close's flush.
	if err := gzipCompressTo(errWriter{}, []byte("x")); err == nil {
		t.Fatal("expected error")
	}
	// gzip Close error via injection
	origGzipClose := gzipClose
	gzipClose = func(_ *gzip.Writer) error { return io.ErrClosedPipe }
	if err := gzipCompressTo(io.Discard, []byte("x")); err == nil {
		gzipClose = origGzipClose
		t.Fatal("expected error")
	}
	gzipClose = origGzipClose

	// lz4 write error
	if err := lz4CompressTo(errWriter{}, []byte("x")); err == nil {
		t.Fatal("expected error")
	}
	// lz4 Close error via injection
	origLZ4Close := lz4Close
	lz4Close = func(_ *lz4.Writer) error { return io.ErrClosedPipe }
	if err := lz4CompressTo(io.Discard, []byte("x")); err == nil {
		lz4Close = origLZ4Close
		t.Fatal("expected error")
	}
	lz4Close = origLZ4Close

	// brotli write error
	origBrotliWrite := brotliWrite
	brotliWrite = func(_ *brotli.Writer, _ []byte) (int, error) { return 0, io.ErrClosedPipe }
	if err := brotliCompressTo(io.Discard, []byte("x")); err == nil {
		brotliWrite = origBrotliWrite
		t.Fatal("expected error")
	}
	brotliWrite = origBrotliWrite
	// brotli Close error via injection
	origBrotliClose := brotliClose
	brotliClose = func(_ *brotli.Writer) error { return io.ErrClosedPipe }
	if err := brotliCompressTo(io.Discard, []byte("x")); err == nil {
		brotliClose = origBrotliClose
		t.Fatal("expected error")
	}
	brotliClose = origBrotliClose
}

func TestZstdConstructorInjection(t *testing.T) {
	orig := newZstdWriter
	defer func() { newZstdWriter = orig }()
	newZstdWriter = func() (*zstd.Encoder, error) { return nil, io.ErrClosedPipe }
	if _, err := zstdCompress([]byte("x")); err == nil {
		t.Fatal("expected error")
	}
}

func TestCompressSource_SourceErrors(t *testing.T) {
	boom := errors.New("open failed")
	_, err := CompressSource(&fakeSource{
		size: 3,
		open: func() (io.ReadCloser, error) { return nil, boom },
	}, EncodingGzip)
	if !errors.Is(err, ErrSourceRead) || !errors.Is(err, boom) {
		t.Fatalf("open failure = %v, want ErrSourceRead wrapping %v", err, boom)
	}

	origReadAll := readAll
	readAll = func(io.Reader) ([]byte, error) { return nil, io.ErrClosedPipe }
	defer func() { readAll = origReadAll }()
	_, err = CompressSource(BytesSource([]byte("abc")), EncodingGzip)
	if !errors.Is(err, ErrSourceRead) {
		t.Fatalf("read failure = %v, want ErrSourceRead", err)
	}
	readAll = origReadAll

	cerr := errors.New("close failed")
	_, err = CompressSource(&fakeSource{
		size: 3,
		open: func() (io.ReadCloser, error) {
			return &closeRecorder{Reader: strings.NewReader("abc"), closeErr: cerr}, nil
		},
	}, EncodingGzip)
	if !errors.Is(err, ErrSourceRead) || !errors.Is(err, cerr) {
		t.Fatalf("close failure = %v, want ErrSourceRead wrapping %v", err, cerr)
	}
}
