package formstream

import (
	"strings"
	"testing"
)

func TestBrowserEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "plain", "plain"},
		{"quote", `say "hi"`, "say %22hi%22"},
		{"crlf", "a\r\nb", "a%0D%0Ab"},
		{"lone cr", "a\rb", "a%0D%0Ab"},
		{"lone lf", "a\nb", "a%0D%0Ab"},
		{"mixed breaks", "a\r\n\rb\n", "a%0D%0A%0D%0Ab%0D%0A"},
		{"percent untouched", "100%", "100%"},
		{"non-ascii untouched", "Grüße", "Grüße"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := browserEncode(tt.in); got != tt.want {
				t.Fatalf("browserEncode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFieldHeader(t *testing.T) {
	got := headerForField("a", "1")
	want := "content-disposition: form-data; name=\"a\"\r\n\r\n"
	if got != want {
		t.Fatalf("plain field header = %q, want %q", got, want)
	}

	got = headerForField("note", "café")
	want = "content-disposition: form-data; name=\"note\"\r\n" +
		"content-type: text/plain; charset=utf-8\r\n" +
		"content-transfer-encoding: binary\r\n\r\n"
	if got != want {
		t.Fatalf("utf-8 field header = %q, want %q", got, want)
	}
}

func TestFieldHeader_EmptyValueStaysBare(t *testing.T) {
	got := headerForField("empty", "")
	if strings.Contains(got, "content-type") {
		t.Fatalf("empty value must not declare a charset, got %q", got)
	}
}

func TestFieldHeader_NameNeverTriggersCharset(t *testing.T) {
	// Only the value is inspected; a non-ASCII name passes through as
	// UTF-8 with no extra header lines.
	got := headerForField("Grüße", "ok")
	want := "content-disposition: form-data; name=\"Grüße\"\r\n\r\n"
	if got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
}

func TestFieldHeader_EscapesNameBreaksAndQuotes(t *testing.T) {
	got := headerForField("a\r\nb\"c", "v")
	want := "content-disposition: form-data; name=\"a%0D%0Ab%22c\"\r\n\r\n"
	if got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
}

func TestFieldHeader_NameEscapingAndValueCharsetCompose(t *testing.T) {
	// Break escaping in the name and the value's charset lines are
	// independent rules; both apply to the same part.
	got := headerForField("Grü\nße", "Grüße\n")
	want := "content-disposition: form-data; name=\"Grü%0D%0Aße\"\r\n" +
		"content-type: text/plain; charset=utf-8\r\n" +
		"content-transfer-encoding: binary\r\n\r\n"
	if got != want {
		t.Fatalf("header = %q, want %q", got, want)
	}
}

func TestFileHeader(t *testing.T) {
	got := headerForFile("file", "a.txt", "text/plain", "")
	want := "content-disposition: form-data; name=\"file\"; filename=\"a.txt\"\r\n" +
		"content-type: text/plain\r\n\r\n"
	if got != want {
		t.Fatalf("file header = %q, want %q", got, want)
	}

	got = headerForFile("file", "", "application/octet-stream", "")
	want = "content-disposition: form-data; name=\"file\"\r\n" +
		"content-type: application/octet-stream\r\n\r\n"
	if got != want {
		t.Fatalf("file header without filename = %q, want %q", got, want)
	}

	got = headerForFile("file", "a.bin", "application/octet-stream", "gzip")
	want = "content-disposition: form-data; name=\"file\"; filename=\"a.bin\"\r\n" +
		"content-type: application/octet-stream\r\n" +
		"content-encoding: gzip\r\n\r\n"
	if got != want {
		t.Fatalf("file header with content coding = %q, want %q", got, want)
	}
}
