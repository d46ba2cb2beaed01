package types

import (
	"bytes"
	"errors"
	"testing"

	"github.com/MasamiYui/ciri/sedes"
)

func TestHandshakeRoundTrip(t *testing.T) {
	m, err := NewHandshake(map[string]sedes.Value{
		"protocol_version": sedes.Uint(4),
		"client_id":        sedes.Raw("ciri/v0.1.0/linux"),
		"capabilities":     sedes.List{sedes.Raw("eth"), sedes.Raw("les")},
		"listen_port":      sedes.Uint(30303),
		"node_id":          sedes.Raw(bytes.Repeat([]byte{0xab}, 64)),
	})
	if err != nil {
		t.Fatal(err)
	}
	enc, err := m.Encode()
	if err != nil {
		t.Fatal(err)
	}
	dec, err := DecodeHandshake(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !dec.Equal(m) {
		t.Fatal("decoded handshake not equal")
	}
	if dec.ProtocolVersion() != 4 || dec.ClientID() != "ciri/v0.1.0/linux" || dec.ListenPort() != 30303 {
		t.Fatalf("fields: %d %q %d", dec.ProtocolVersion(), dec.ClientID(), dec.ListenPort())
	}
	caps := dec.Capabilities()
	if len(caps) != 2 || caps[0] != "eth" || caps[1] != "les" {
		t.Fatalf("capabilities: %v", caps)
	}
	if len(dec.NodeID()) != 64 {
		t.Fatalf("node id length: %d", len(dec.NodeID()))
	}
}

func TestHandshakeDefaults(t *testing.T) {
	m, err := NewHandshake(map[string]sedes.Value{
		"client_id": sedes.Raw("ciri"),
		"node_id":   sedes.Raw{0x01},
	})
	if err != nil {
		t.Fatal(err)
	}
	if m.ProtocolVersion() != 1 {
		t.Fatalf("default protocol version: got %d", m.ProtocolVersion())
	}
	if m.ListenPort() != 0 || len(m.Capabilities()) != 0 {
		t.Fatalf("defaults: port=%d caps=%v", m.ListenPort(), m.Capabilities())
	}
}

func TestHandshakeMissingField(t *testing.T) {
	_, err := NewHandshake(map[string]sedes.Value{"client_id": sedes.Raw("ciri")})
	if !errors.Is(err, sedes.ErrInvalidSchema) {
		t.Fatalf("got %v, want %v", err, sedes.ErrInvalidSchema)
	}
}
