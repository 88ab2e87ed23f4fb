package unt4

import "testing"

func TestPack(t *testing.T) {
	cases := []struct {
		name string
		msg  Message
		want string
	}{
		{"clearing", GeneralClearing, "\x01\x0c\x04"},
		{"empty", GeneralEmpty, "\x01\x100000\x04"},
		{"text", NewMsg(4, 2, "12:34.56"), "\x01\x100402\x0212:34.56\x04"},
		{"line", NewLineMsg(3, "RIDER 21"), "\x01\x100003\x02RIDER 21\x0b\x04"},
		{"erase line only", Message{Pos: true, YY: 5, ERL: true}, "\x01\x100005\x0b\x04"},
		{"header", Message{Header: "DC", Text: "GO"}, "\x01DC\x02GO\x04"},
	}
	for _, c := range cases {
		if got := c.msg.Pack(); got != c.want {
			t.Errorf("%s: got %q want %q", c.name, got, c.want)
		}
	}
}
