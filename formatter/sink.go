package formatter

import (
	"bufio"
	"io"
	"log/slog"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// sink encodes text into the output charset. Write failures are logged and
// remembered; rendering continues. A sink without a writer discards
// everything and is used to measure text before committing to a layout.
type sink struct {
	w       *bufio.Writer
	encoder *encoding.Encoder
	log     *slog.Logger
	err     error
}

func newSink(w io.Writer, charset Charset, log *slog.Logger) *sink {
	s := &sink{w: bufio.NewWriter(w), log: log}
	switch charset {
	case CharsetLatin1:
		s.encoder = encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	case CharsetUTF16BE:
		s.encoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	case CharsetUTF16LE:
		s.encoder = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	case CharsetUTF8BOM:
		s.writeBytes(utf8BOM)
	}
	return s
}

var discard = &sink{}

func (s *sink) writeString(text string) {
	if s.w == nil || text == "" {
		return
	}
	if s.encoder == nil {
		if _, err := s.w.WriteString(text); err != nil {
			s.fail(err)
		}
		return
	}
	encoded, err := s.encoder.Bytes([]byte(text))
	if err != nil {
		s.fail(err)
		return
	}
	s.writeBytes(encoded)
}

func (s *sink) writeBytes(data []byte) {
	if _, err := s.w.Write(data); err != nil {
		s.fail(err)
	}
}

func (s *sink) fail(err error) {
	s.log.Error("could not write to output", slog.Any("error", err))
	if s.err == nil {
		s.err = err
	}
}

func (s *sink) flush() error {
	if s.w == nil {
		return nil
	}
	if err := s.w.Flush(); err != nil {
		s.fail(err)
	}
	return s.err
}
