package board

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Config defines the scoreboard link parameters. Values are read once when
// the Sender is constructed and never reloaded.
type Config struct {
	// Port is the default address string used by the DEFAULT sentinel.
	Port string `json:"port"`
	// Baud is the serial line speed for device-path addresses.
	Baud int `json:"baud"`
	// LineLen is the display width in characters.
	LineLen int `json:"line_len"`
	// PageLen is the number of display rows.
	PageLen int `json:"page_len"`
	// Encoding names the wire text encoding (IANA name).
	Encoding string `json:"encoding"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Baud <= 0 {
		c.Baud = 115200
	}
	if c.LineLen <= 0 {
		c.LineLen = 32
	}
	if c.PageLen <= 0 {
		c.PageLen = 7
	}
	if c.Encoding == "" {
		c.Encoding = "utf-8"
	}
}

// Validate checks the configured values.
func (c Config) Validate() error {
	if c.LineLen <= 0 || c.PageLen <= 0 {
		return fmt.Errorf("line_len and page_len must be positive")
	}
	if _, err := newEncoder(c.Encoding); err != nil {
		return err
	}
	return nil
}

// newEncoder resolves the named encoding to an encoder that substitutes
// characters the encoding cannot represent instead of failing the send.
func newEncoder(name string) (*encoding.Encoder, error) {
	if name == "" || name == "utf-8" {
		return unicode.UTF8.NewEncoder(), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
	return encoding.ReplaceUnsupported(enc.NewEncoder()), nil
}
