package jwt

import (
	"bytes"
	"encoding/base32"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Base64Encode encodes "src" to the JWT base64 url format (RFC 4648 §5),
// without trailing '=' padding.
func Base64Encode(src []byte) string {
	return base64.RawURLEncoding.EncodeToString(src)
}

// Base64Decode decodes a JWT base64 url segment.
// Padding characters, the standard alphabet ('+', '/'), new lines
// and lengths that cannot form whole bytes fail with ErrMalformedEncoding.
func Base64Decode(src string) ([]byte, error) {
	// The std decoder silently skips '\r' and '\n', a token must not carry them.
	if strings.ContainsAny(src, "\r\n") {
		return nil, fmt.Errorf("%w: unexpected new line", ErrMalformedEncoding)
	}

	b, err := base64.RawURLEncoding.Strict().DecodeString(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}

	return b, nil
}

// EncodeBase16 wraps an already signed token into lower-case hex.
// The signature is not affected, see DecodeBase16.
func EncodeBase16(token string) string {
	return hex.EncodeToString(StringToBytes(token))
}

// DecodeBase16 reverts EncodeBase16.
func DecodeBase16(src string) (string, error) {
	b, err := hex.DecodeString(src)
	if err != nil {
		return "", fmt.Errorf("%w: base16: %v", ErrMalformedEncoding, err)
	}

	return BytesToString(b), nil
}

// EncodeBase32 wraps an already signed token into RFC 4648 base32 (std alphabet, padded).
func EncodeBase32(token string) string {
	return base32.StdEncoding.EncodeToString(StringToBytes(token))
}

// DecodeBase32 reverts EncodeBase32.
func DecodeBase32(src string) (string, error) {
	b, err := base32.StdEncoding.DecodeString(src)
	if err != nil {
		return "", fmt.Errorf("%w: base32: %v", ErrMalformedEncoding, err)
	}

	return BytesToString(b), nil
}

// document is the structured JSON object used for both the header and the payload.
// Keys keep their insertion (or source) order so that encoding the same
// sequence of puts always yields the same bytes.
type document struct {
	keys   []string
	values map[string]any
}

func newDocument() *document {
	return &document{values: make(map[string]any)}
}

func (d *document) get(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// put sets the value, an existing key keeps its original position.
func (d *document) put(key string, value any) {
	if _, exists := d.values[key]; !exists {
		d.keys = append(d.keys, key)
	}

	d.values[key] = value
}

func (d *document) has(key string) bool {
	_, ok := d.values[key]
	return ok
}

func (d *document) len() int {
	return len(d.keys)
}

func (d *document) names() []string {
	names := make([]string, len(d.keys))
	copy(names, d.keys)
	return names
}

func (d *document) clone() *document {
	c := &document{
		keys:   d.names(),
		values: make(map[string]any, len(d.values)),
	}
	for k, v := range d.values {
		c.values[k] = v
	}

	return c
}

var errDuplicateKey = errors.New("duplicate key")

// encodeDocument serializes the document as a compact JSON object.
// HTML characters are kept as they are (no < escaping).
func encodeDocument(d *document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := writeJSONValue(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(&buf, d.values[key]); err != nil {
			return nil, fmt.Errorf("%q: %w", key, err)
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always terminates the value with a new line.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// decodeDocument parses a JSON object keeping the source key order.
// Numbers are kept as json.Number. Anything but a single JSON object,
// as well as duplicated keys, fails with ErrMalformedPayload.
func decodeDocument(b []byte) (*document, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrMalformedPayload)
	}

	doc := newDocument()
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", ErrMalformedPayload, tok)
		}
		if doc.has(key) {
			return nil, fmt.Errorf("%w: %w: %q", ErrMalformedPayload, errDuplicateKey, key)
		}

		var value any
		if err = dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrMalformedPayload, key, err)
		}
		doc.put(key, value)
	}

	// closing '}'.
	if _, err = dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if _, err = dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedPayload)
	}

	return doc, nil
}
