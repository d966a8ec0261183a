package formstream

import (
	"context"
	"net/http"
)

// NewRequest finalizes the form and builds an HTTP request whose body is
// the encoded stream, with Content-Type and Content-Length already set.
// The stream is single use, so the returned request carries no GetBody
// and cannot be replayed by redirects or retries.
func NewRequest(ctx context.Context, method, url string, form *Form) (*http.Request, error) {
	stream, err := form.Finalize()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, url, stream)
	if err != nil {
		_ = stream.Close()
		return nil, err
	}
	req.Header.Set("Content-Type", stream.ContentType())
	req.ContentLength = stream.ContentLength()
	return req, nil
}
