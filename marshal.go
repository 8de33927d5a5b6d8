package sqlmodel

import (
	"encoding"

	"github.com/vmihailenco/msgpack/v5"
)

// EncodeText writes v as a msgpack string. Generated EncodeMsgpack methods
// use it for decimal.Decimal and uuid.UUID fields, so foreign readers see
// "12.50" instead of an opaque struct.
func EncodeText(enc *msgpack.Encoder, v encoding.TextMarshaler) error {
	b, err := v.MarshalText()
	if err != nil {
		return err
	}
	return enc.EncodeString(string(b))
}

// DecodeText reads a msgpack string into v.
func DecodeText(dec *msgpack.Decoder, v encoding.TextUnmarshaler) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return v.UnmarshalText([]byte(s))
}

// RequireKeys returns a MissingKeysError naming the keys absent from seen.
func RequireKeys(seen map[string]bool, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if !seen[k] {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return &MissingKeysError{Keys: missing}
	}
	return nil
}
