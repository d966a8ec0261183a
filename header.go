package formstream

import "strings"

const crlf = "\r\n"

// browserEncode escapes a field name or filename the way browsers do:
// every line break (\r\n, lone \r, or lone \n) becomes the literal %0D%0A
// and every double quote becomes %22. Nothing else is escaped, not even
// percent signs or non-ASCII bytes.
var browserEscaper = strings.NewReplacer(
	"\r\n", "%0D%0A",
	"\r", "%0D%0A",
	"\n", "%0D%0A",
	`"`, "%22",
)

func browserEncode(s string) string {
	return browserEscaper.Replace(s)
}

func isPlainASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// headerForField renders the header block of a field part, including the
// blank line that terminates it. Non-ASCII values are declared as UTF-8
// text with a binary transfer encoding; the check never applies to the
// name.
func headerForField(name, value string) string {
	var b strings.Builder
	b.WriteString(`content-disposition: form-data; name="`)
	b.WriteString(browserEncode(name))
	b.WriteString(`"`)
	b.WriteString(crlf)
	if value != "" && !isPlainASCII(value) {
		b.WriteString("content-type: text/plain; charset=utf-8")
		b.WriteString(crlf)
		b.WriteString("content-transfer-encoding: binary")
		b.WriteString(crlf)
	}
	b.WriteString(crlf)
	return b.String()
}

// headerForFile renders the header block of a file part, including the
// blank line that terminates it. The filename clause is omitted when
// filename is empty; the content-encoding line is emitted only for
// sources carrying a content coding (see CompressSource).
func headerForFile(name, filename, contentType, contentEncoding string) string {
	var b strings.Builder
	b.WriteString(`content-disposition: form-data; name="`)
	b.WriteString(browserEncode(name))
	b.WriteString(`"`)
	if filename != "" {
		b.WriteString(`; filename="`)
		b.WriteString(browserEncode(filename))
		b.WriteString(`"`)
	}
	b.WriteString(crlf)
	b.WriteString("content-type: ")
	b.WriteString(contentType)
	b.WriteString(crlf)
	if contentEncoding != "" {
		b.WriteString("content-encoding: ")
		b.WriteString(contentEncoding)
		b.WriteString(crlf)
	}
	b.WriteString(crlf)
	return b.String()
}
