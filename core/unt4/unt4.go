// Package unt4 packs positioned-text updates for UNT4-style scoreboard
// displays. A Message describes one logical screen operation; Pack renders
// the control-character framing expected by the display head.
package unt4

import (
	"fmt"
	"strings"
)

// Framing and control characters.
const (
	SOH = '\x01' // start of header
	STX = '\x02' // start of text
	EOT = '\x04' // end of transmission
	ERL = '\x0b' // erase to end of line
	ERP = '\x0c' // erase page
	DLE = '\x10' // data link escape, prefixes the position block
)

// Message is one screen update. XX is the column and YY the row of the
// position block; the block is emitted only when Pos is set. ERP messages
// clear the whole page and carry no text.
type Message struct {
	Header string
	ERP    bool
	ERL    bool
	Pos    bool
	XX     int
	YY     int
	Text   string
}

// NewMsg returns a positioned text message.
func NewMsg(col, row int, text string) Message {
	return Message{Pos: true, XX: col, YY: row, Text: text}
}

// NewLineMsg returns a full-line message that erases to end of line.
func NewLineMsg(row int, text string) Message {
	return Message{Pos: true, XX: 0, YY: row, Text: text, ERL: true}
}

// Pack renders the message into its wire string form.
func (m Message) Pack() string {
	var b strings.Builder
	b.WriteByte(SOH)
	if m.ERP {
		b.WriteByte(ERP)
	} else {
		b.WriteString(m.Header)
		if m.Pos {
			b.WriteByte(DLE)
			fmt.Fprintf(&b, "%02d%02d", m.XX, m.YY)
		}
		if m.Text != "" {
			b.WriteByte(STX)
			b.WriteString(m.Text)
		}
		if m.ERL {
			b.WriteByte(ERL)
		}
	}
	b.WriteByte(EOT)
	return b.String()
}

// GeneralClearing clears the whole page on the display.
var GeneralClearing = Message{ERP: true}

// GeneralEmpty is the empty update at the origin, sent to force remote
// countdown displays to zero.
var GeneralEmpty = Message{Pos: true}
