// Package formstream encodes named form fields and file attachments into
// a multipart/form-data byte stream suitable for an HTTP request body.
//
// The encoder is streaming: file payloads are never buffered in memory,
// each source is opened only when the stream reaches its part, and the
// exact body length is known up front from declared sizes alone. Header
// framing follows the conventions mainstream browsers use rather than
// strict RFC escaping, so servers built against browser traffic accept
// the output unchanged.
//
// # Wire Format Overview
//
// For each part, in insertion order, the stream emits:
//   - A delimiter line: "--" boundary CRLF
//   - A header block: content-disposition plus optional content-type,
//     content-transfer-encoding and content-encoding lines, then a
//     blank line
//   - The payload bytes, then CRLF
//
// After the last part the stream emits the closing delimiter
// "--" boundary "--" CRLF exactly once. Line endings are always CRLF.
//
// # Basic Usage
//
// To upload a field and a file:
//
//	src, _ := formstream.FileSource("report.pdf")
//	form := formstream.New()
//	form.AddField("title", "Q3 report")
//	form.AddFile("attachment", src)
//	req, err := formstream.NewRequest(ctx, http.MethodPost, url, form)
//
// A form encodes at most once; Finalize returns the body as an
// io.ReadCloser together with its content type and exact length:
//
//	stream, err := form.Finalize()
//	defer stream.Close()
//
// # Security Considerations
//
// The package bounds part counts, per-part sizes, and total encoded
// length via configurable [Limits], enforced at Finalize. Boundaries are
// generated from crypto/rand so payloads cannot be crafted against a
// predictable delimiter.
package formstream
