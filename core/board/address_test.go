package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddrGrammar(t *testing.T) {
	cfg := Config{Baud: 19200}
	cfg.SetDefaults()

	cases := []struct {
		spec string
		want AddrSpec
	}{
		// one token
		{"scb.example.com", AddrSpec{Protocol: TCP, Host: "scb.example.com", Port: 1946}},
		{"192.168.0.5", AddrSpec{Protocol: TCP, Host: "192.168.0.5", Port: 1946}},
		{"/dev/ttyUSB0", AddrSpec{Protocol: Serial, Device: "/dev/ttyUSB0", Baud: 19200}},
		// two tokens, protocol first
		{"tcp:scb", AddrSpec{Protocol: TCP, Host: "scb", Port: 1946}},
		{"TCP:scb", AddrSpec{Protocol: TCP, Host: "scb", Port: 1946}},
		{"udp:scb", AddrSpec{Protocol: UDP, Host: "scb", Port: 5060}},
		{"Udp:scb", AddrSpec{Protocol: UDP, Host: "scb", Port: 5060}},
		// two tokens, address:port
		{"scb:2004", AddrSpec{Protocol: TCP, Host: "scb", Port: 2004}},
		// device path ignores the port component
		{"/dev/ttyS0:2004", AddrSpec{Protocol: Serial, Device: "/dev/ttyS0", Baud: 19200}},
		// three tokens
		{"tcp:scb:2004", AddrSpec{Protocol: TCP, Host: "scb", Port: 2004}},
		{"udp:scb:2004", AddrSpec{Protocol: UDP, Host: "scb", Port: 2004}},
		{"UDP:scb:2004", AddrSpec{Protocol: UDP, Host: "scb", Port: 2004}},
	}
	for _, c := range cases {
		got, err := ParseAddr(c.spec, cfg)
		require.NoError(t, err, c.spec)
		require.NotNil(t, got, c.spec)
		assert.Equal(t, c.want, *got, c.spec)
	}
}

func TestParseAddrServiceName(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	got, err := ParseAddr("tcp:scb:http", cfg)
	require.NoError(t, err)
	assert.Equal(t, 80, got.Port)
}

func TestParseAddrDebugOverridesDefault(t *testing.T) {
	cfg := Config{Port: "tcp:configured:2000"}
	cfg.SetDefaults()
	got, err := ParseAddr("DEBUG", cfg)
	require.NoError(t, err)
	assert.Equal(t, AddrSpec{Protocol: UDP, Host: "localhost", Port: 5060}, *got)
}

func TestParseAddrSentinels(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	for _, spec := range []string{"", "none", "NULL", "DEFAULT"} {
		got, err := ParseAddr(spec, cfg)
		require.NoError(t, err, spec)
		assert.Nil(t, got, spec)
	}
}

func TestParseAddrDefaultPullsConfig(t *testing.T) {
	cfg := Config{Port: "udp:scb"}
	cfg.SetDefaults()
	got, err := ParseAddr("DEFAULT", cfg)
	require.NoError(t, err)
	assert.Equal(t, AddrSpec{Protocol: UDP, Host: "scb", Port: 5060}, *got)
}

func TestParseAddrErrors(t *testing.T) {
	cfg := Config{}
	cfg.SetDefaults()
	for _, spec := range []string{
		"serialx:scb:2004",
		"tcp:scb:2004:extra",
		"scb:notaport",
		"tcp:scb:999999",
	} {
		got, err := ParseAddr(spec, cfg)
		assert.Error(t, err, spec)
		assert.Nil(t, got, spec)
	}
}
