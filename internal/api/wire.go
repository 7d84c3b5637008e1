package api

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// Field encoders. Zero values are omitted, as in proto3.

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendMessage(b []byte, num protowire.Number, m wireMessage) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.appendWire(nil))
}

// readFields walks the fields in b and hands each to fn, positioned after
// the tag. fn returns the bytes it consumed, 0 for a field it does not know
// (skipped) or a negative protowire error code.
func readFields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		n = fn(num, typ, b)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeBool(typ protowire.Type, b []byte, dst *bool) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}

func consumeMessage(typ protowire.Type, b []byte, dst wireMessage) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	if err := dst.readWire(v); err != nil {
		return -1
	}
	return n
}

func skipAll(protowire.Number, protowire.Type, []byte) int { return 0 }

// empty messages

func (*StatusRequest) appendWire(b []byte) []byte { return b }
func (m *StatusRequest) readWire(b []byte) error {
	*m = StatusRequest{}
	return readFields(b, skipAll)
}

func (*LogoutRequest) appendWire(b []byte) []byte { return b }
func (m *LogoutRequest) readWire(b []byte) error {
	*m = LogoutRequest{}
	return readFields(b, skipAll)
}

func (*LogoutResponse) appendWire(b []byte) []byte { return b }
func (m *LogoutResponse) readWire(b []byte) error {
	*m = LogoutResponse{}
	return readFields(b, skipAll)
}

func (*ListAppsRequest) appendWire(b []byte) []byte { return b }
func (m *ListAppsRequest) readWire(b []byte) error {
	*m = ListAppsRequest{}
	return readFields(b, skipAll)
}

// StatusResponse

func (m *StatusResponse) appendWire(b []byte) []byte {
	b = appendBool(b, 1, m.SignupOpen)
	return appendString(b, 2, m.UserName)
}

func (m *StatusResponse) readWire(b []byte) error {
	*m = StatusResponse{}
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeBool(typ, b, &m.SignupOpen)
		case 2:
			return consumeString(typ, b, &m.UserName)
		}
		return 0
	})
}

// credentials

func appendCredentials(b []byte, username, password string) []byte {
	b = appendString(b, 1, username)
	return appendString(b, 2, password)
}

func readCredentials(b []byte, username, password *string) error {
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, username)
		case 2:
			return consumeString(typ, b, password)
		}
		return 0
	})
}

func (m *SignupRequest) appendWire(b []byte) []byte {
	return appendCredentials(b, m.Username, m.Password)
}

func (m *SignupRequest) readWire(b []byte) error {
	*m = SignupRequest{}
	return readCredentials(b, &m.Username, &m.Password)
}

func (m *LoginRequest) appendWire(b []byte) []byte {
	return appendCredentials(b, m.Username, m.Password)
}

func (m *LoginRequest) readWire(b []byte) error {
	*m = LoginRequest{}
	return readCredentials(b, &m.Username, &m.Password)
}

// single-string messages

func readSingleString(b []byte, dst *string) error {
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeString(typ, b, dst)
		}
		return 0
	})
}

func (m *SignupResponse) appendWire(b []byte) []byte { return appendString(b, 1, m.AccessToken) }
func (m *SignupResponse) readWire(b []byte) error {
	*m = SignupResponse{}
	return readSingleString(b, &m.AccessToken)
}

func (m *LoginResponse) appendWire(b []byte) []byte { return appendString(b, 1, m.AccessToken) }
func (m *LoginResponse) readWire(b []byte) error {
	*m = LoginResponse{}
	return readSingleString(b, &m.AccessToken)
}

// apps

func (m *App) appendWire(b []byte) []byte {
	b = appendString(b, 1, m.ID)
	b = appendString(b, 2, m.DisplayName)
	b = appendString(b, 3, m.IconPath)
	return appendString(b, 4, m.LaunchTarget)
}

func (m *App) readWire(b []byte) error {
	*m = App{}
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case 1:
			return consumeString(typ, b, &m.ID)
		case 2:
			return consumeString(typ, b, &m.DisplayName)
		case 3:
			return consumeString(typ, b, &m.IconPath)
		case 4:
			return consumeString(typ, b, &m.LaunchTarget)
		}
		return 0
	})
}

func (m *ListAppsResponse) appendWire(b []byte) []byte {
	for i := range m.Apps {
		b = appendMessage(b, 1, &m.Apps[i])
	}
	return b
}

func (m *ListAppsResponse) readWire(b []byte) error {
	*m = ListAppsResponse{}
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num != 1 {
			return 0
		}
		var app App
		n := consumeMessage(typ, b, &app)
		if n > 0 {
			m.Apps = append(m.Apps, app)
		}
		return n
	})
}

func (m *OpenAppRequest) appendWire(b []byte) []byte { return appendString(b, 1, m.ID) }
func (m *OpenAppRequest) readWire(b []byte) error {
	*m = OpenAppRequest{}
	return readSingleString(b, &m.ID)
}

func (m *OpenAppResponse) appendWire(b []byte) []byte {
	return appendMessage(b, 1, &m.App)
}

func (m *OpenAppResponse) readWire(b []byte) error {
	*m = OpenAppResponse{}
	return readFields(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if num == 1 {
			return consumeMessage(typ, b, &m.App)
		}
		return 0
	})
}
