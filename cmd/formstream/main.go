// Command formstream encodes fields and files as a multipart/form-data
// body and writes it to a file, stdout, or an HTTP endpoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/logicossoftware/go-formstream"
)

type repeatedFlag []string

func (f *repeatedFlag) String() string { return strings.Join(*f, ", ") }

func (f *repeatedFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var (
		fields   repeatedFlag
		files    repeatedFlag
		outPath  string
		url      string
		boundary string
		compress string
		timeout  time.Duration
	)

	flag.Var(&fields, "field", "text field as name=value (repeatable)")
	flag.Var(&files, "file", "file part as name=path (repeatable)")
	flag.StringVar(&outPath, "out", "-", "output path, - for stdout")
	flag.StringVar(&url, "url", "", "POST the body to this URL instead of writing it")
	flag.StringVar(&boundary, "boundary", "", "use a fixed boundary instead of a generated one")
	flag.StringVar(&compress, "compress", "identity", "content coding for file parts: identity, gzip, zstd, lz4, br")
	flag.DurationVar(&timeout, "timeout", 30*time.Second, "HTTP request timeout")
	flag.Parse()

	if len(fields) == 0 && len(files) == 0 {
		log.Fatal("at least one -field or -file is required")
	}

	enc, err := parseEncoding(compress)
	if err != nil {
		log.Fatal(err)
	}

	var opts []formstream.Option
	if boundary != "" {
		opts = append(opts, formstream.WithBoundary(boundary))
	}
	form := formstream.New(opts...)

	for _, spec := range fields {
		name, value, ok := strings.Cut(spec, "=")
		if !ok {
			log.Fatalf("invalid -field %q, want name=value", spec)
		}
		form.AddField(name, value)
	}
	for _, spec := range files {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			log.Fatalf("invalid -file %q, want name=path", spec)
		}
		src, err := formstream.FileSource(path)
		if err != nil {
			log.Fatalf("open %s: %v", path, err)
		}
		if src, err = formstream.CompressSource(src, enc); err != nil {
			log.Fatalf("compress %s: %v", path, err)
		}
		form.AddFile(name, src)
	}

	if url != "" {
		post(form, url, timeout)
		return
	}

	length := form.ContentLength()
	contentType := form.ContentType()
	stream, err := form.Finalize()
	if err != nil {
		log.Fatalf("finalize: %v", err)
	}
	defer stream.Close()

	out := os.Stdout
	if outPath != "-" {
		f, err := os.Create(outPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}
	n, err := io.Copy(out, stream)
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	if outPath != "-" {
		fmt.Printf("Wrote %d bytes to %s\nContent-Type: %s\nContent-Length: %d\n", n, outPath, contentType, length)
	}
}

func post(form *formstream.Form, url string, timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := formstream.NewRequest(ctx, http.MethodPost, url, form)
	if err != nil {
		log.Fatalf("build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		log.Fatalf("read response: %v", err)
	}
	fmt.Printf("%s\n", resp.Status)
	if len(body) > 0 {
		os.Stdout.Write(body)
		fmt.Println()
	}
}

func parseEncoding(name string) (formstream.ContentEncoding, error) {
	switch name {
	case "identity", "":
		return formstream.EncodingIdentity, nil
	case "gzip":
		return formstream.EncodingGzip, nil
	case "zstd":
		return formstream.EncodingZstd, nil
	case "lz4":
		return formstream.EncodingLZ4, nil
	case "br":
		return formstream.EncodingBrotli, nil
	default:
		return 0, fmt.Errorf("unknown content coding %q", name)
	}
}
