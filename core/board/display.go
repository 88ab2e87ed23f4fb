package board

import (
	"strings"

	"github.com/openvelo/scoreboard/core/unt4"
)

// Display convenience layer: line and column addressing over SendMsg.

// ClearAll blanks the whole display.
func (s *Sender) ClearAll() {
	s.SendMsg(unt4.GeneralClearing)
}

// ClearLine blanks one display row.
func (s *Sender) ClearLine(row int) {
	s.SendMsg(unt4.Message{Pos: true, YY: row, ERL: true})
}

// SetLine writes text left-justified on the given row, truncated or
// space-padded to the configured line length.
func (s *Sender) SetLine(row int, text string) {
	s.SendMsg(unt4.NewLineMsg(row, truncpad(text, s.cfg.LineLen)))
}

// FillLine repeats ch across the full width of the given row.
func (s *Sender) FillLine(row int, ch rune) {
	s.SendMsg(unt4.NewLineMsg(row, strings.Repeat(string(ch), s.cfg.LineLen)))
}

// WriteAt places text at an arbitrary row and column without padding.
func (s *Sender) WriteAt(row, col int, text string) {
	s.SendMsg(unt4.NewMsg(col, row, text))
}

// Flush sends the empty update, forcing remote countdown displays to zero.
func (s *Sender) Flush() {
	s.SendMsg(unt4.GeneralEmpty)
}

// SetOverlay sends the full-screen message only if it differs from the last
// overlay sent. The comparison is by value on the packed message; overlay
// memory is reset whenever the link reconnects.
func (s *Sender) SetOverlay(m unt4.Message) {
	tok := m.Pack()
	s.ovMu.Lock()
	if s.curov == tok {
		s.ovMu.Unlock()
		return
	}
	s.curov = tok
	s.ovMu.Unlock()
	s.queue.Put(command{kind: cmdSend, payload: tok})
}

// truncpad forces text to exactly n characters, truncating or right-padding
// with spaces.
func truncpad(text string, n int) string {
	r := []rune(text)
	if len(r) >= n {
		return string(r[:n])
	}
	return text + strings.Repeat(" ", n-len(r))
}
