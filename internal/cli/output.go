package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jwtsgo/jwt"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// printer handles formatted output.
type printer struct {
	format string
	writer io.Writer
}

func newPrinter(format string, w io.Writer) *printer {
	return &printer{format: format, writer: w}
}

func (p *printer) printSigned(token, alg, encoding string) error {
	if p.format == outputJSON {
		return p.printJSON(map[string]any{
			"token":    token,
			"alg":      alg,
			"encoding": encoding,
		})
	}

	_, err := fmt.Fprintln(p.writer, token)
	return err
}

func (p *printer) printToken(tok *jwt.Token, verified bool) error {
	if p.format == outputJSON {
		return p.printJSON(map[string]any{
			"verified": verified,
			"header":   json.RawMessage(tok.HeaderJSON()),
			"claims":   json.RawMessage(tok.PayloadJSON()),
		})
	}

	if !verified {
		fmt.Fprintln(p.writer, "WARNING: not verified")
	}

	header := tok.Header()
	fmt.Fprintln(p.writer, "Header:")
	for _, name := range header.Names() {
		fmt.Fprintf(p.writer, "  %s: %s\n", name, header.Get(name))
	}

	fmt.Fprintln(p.writer, "Claims:")
	for _, name := range tok.ClaimNames() {
		fmt.Fprintf(p.writer, "  %s: %s\n", name, tok.Claim(name))
	}

	if exp := tok.ExpiresAt(); !exp.IsZero() {
		fmt.Fprintf(p.writer, "Expires: %s\n", exp.UTC().Format("2006-01-02T15:04:05Z07:00"))
	}

	return nil
}

func (p *printer) printJSON(v any) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
