package pipeline

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/hashmire/serializ3r/internal/model"
)

// Writer emits entries as line-delimited JSON, one self-contained object
// per line, in the order they are written
type Writer struct {
	buf *bufio.Writer
	enc *json.Encoder
}

// NewWriter creates a JSONL writer over w
func NewWriter(w io.Writer) *Writer {
	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &Writer{buf: buf, enc: enc}
}

// Write serializes one entry followed by a newline
func (w *Writer) Write(entry *model.CredentialEntry) error {
	return w.enc.Encode(entry)
}

// Flush writes any buffered records to the underlying writer
func (w *Writer) Flush() error {
	return w.buf.Flush()
}
