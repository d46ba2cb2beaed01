package types

import "github.com/MasamiYui/ciri/sedes"

// handshakeType is the peer handshake message record type. The message
// is the first frame exchanged on a new connection; both sides must
// produce byte-identical encodings for identical logical values, so it
// goes through the same schema layer as chain data.
var handshakeType = func() *sedes.RecordType {
	rt, err := sedes.DefineRecordType("Handshake", []sedes.Field{
		{Name: "protocol_version", Type: sedes.UintType()},
		{Name: "client_id", Type: sedes.RawType()},
		{Name: "capabilities", Type: sedes.ListOf(sedes.RawType())},
		{Name: "listen_port", Type: sedes.UintType()},
		{Name: "node_id", Type: sedes.RawType()},
	}, map[string]sedes.Value{
		"protocol_version": sedes.Uint(1),
		"capabilities":     sedes.List{},
		"listen_port":      sedes.Uint(0),
	})
	if err != nil {
		panic(err)
	}
	return rt
}()

// HandshakeType returns the handshake's record type.
func HandshakeType() *sedes.RecordType { return handshakeType }

// Handshake is the hello message a peer sends after connecting.
type Handshake struct {
	rec *sedes.Record
}

// NewHandshake constructs a handshake message, merging defaults
// (protocol version 1, no capabilities, unadvertised port).
func NewHandshake(fields map[string]sedes.Value) (*Handshake, error) {
	rec, err := handshakeType.New(fields)
	if err != nil {
		return nil, err
	}
	return &Handshake{rec: rec}, nil
}

// DecodeHandshake parses a canonical handshake encoding.
func DecodeHandshake(b []byte) (*Handshake, error) {
	rec, err := handshakeType.Decode(b)
	if err != nil {
		return nil, err
	}
	return &Handshake{rec: rec}, nil
}

// Encode returns the message's canonical encoding.
func (m *Handshake) Encode() ([]byte, error) { return m.rec.Encode() }

// Record exposes the underlying record.
func (m *Handshake) Record() *sedes.Record { return m.rec }

// Equal reports field-value equality.
func (m *Handshake) Equal(other *Handshake) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.rec.Equal(other.rec)
}

// ProtocolVersion returns the advertised protocol version.
func (m *Handshake) ProtocolVersion() uint64 {
	v, _ := m.rec.Get("protocol_version")
	u, _ := v.(sedes.Uint)
	return uint64(u)
}

// ClientID returns the peer's client identifier string.
func (m *Handshake) ClientID() string {
	v, _ := m.rec.Get("client_id")
	b, _ := v.(sedes.Raw)
	return string(b)
}

// Capabilities returns the peer's advertised capability names.
func (m *Handshake) Capabilities() []string {
	v, _ := m.rec.Get("capabilities")
	l, _ := v.(sedes.List)
	out := make([]string, 0, len(l))
	for _, el := range l {
		b, _ := el.(sedes.Raw)
		out = append(out, string(b))
	}
	return out
}

// ListenPort returns the peer's advertised listening port, or zero.
func (m *Handshake) ListenPort() uint64 {
	v, _ := m.rec.Get("listen_port")
	u, _ := v.(sedes.Uint)
	return uint64(u)
}

// NodeID returns the peer's public node identifier.
func (m *Handshake) NodeID() []byte {
	v, _ := m.rec.Get("node_id")
	b, _ := v.(sedes.Raw)
	return b
}
