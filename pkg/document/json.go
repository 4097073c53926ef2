package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DecodeJSON parses data into a Value, keeping mapping keys in the order they
// appear in the input. Numbers stay as json.Number so their literal text
// survives a round trip.
func DecodeJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Value{}, errors.New("document: trailing data after JSON value")
	}
	return value, nil
}

// DecodeJSONString is DecodeJSON over a string input.
func DecodeJSONString(data string) (Value, error) {
	return DecodeJSON([]byte(data))
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, fmt.Errorf("document: decode: %w", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeMapping(dec)
		case '[':
			return decodeSequence(dec)
		default:
			return Value{}, fmt.Errorf("document: unexpected delimiter %q", t.String())
		}
	case string, json.Number, bool, nil:
		return Scalar(t), nil
	default:
		return Value{}, fmt.Errorf("document: unexpected token %v", tok)
	}
}

func decodeMapping(dec *json.Decoder) (Value, error) {
	m := NewMapping()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, fmt.Errorf("document: decode key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("document: object key is %v, want string", keyTok)
		}
		entry, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		m.Set(key, entry)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, fmt.Errorf("document: close object: %w", err)
	}
	return FromMapping(m), nil
}

func decodeSequence(dec *json.Decoder) (Value, error) {
	var items []Value
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, fmt.Errorf("document: close array: %w", err)
	}
	return Sequence(items...), nil
}

// MarshalJSON encodes the tree with mapping keys in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, "", false); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON parses data into the value, keeping mapping key order.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := DecodeJSON(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// EncodeJSONIndent renders the value as indented JSON, mapping keys in
// insertion order.
func EncodeJSONIndent(v Value, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v, indent, true); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value, indent string, pretty bool) error {
	return encodeAtDepth(buf, v, indent, 0, pretty)
}

func encodeAtDepth(buf *bytes.Buffer, v Value, indent string, depth int, pretty bool) error {
	switch v.kind {
	case KindScalar:
		raw, err := json.Marshal(v.scalar)
		if err != nil {
			return fmt.Errorf("document: encode scalar: %w", err)
		}
		buf.Write(raw)
	case KindSequence:
		if len(v.seq) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNewlineIndent(buf, indent, depth+1, pretty)
			if err := encodeAtDepth(buf, item, indent, depth+1, pretty); err != nil {
				return err
			}
		}
		writeNewlineIndent(buf, indent, depth, pretty)
		buf.WriteByte(']')
	case KindMapping:
		if v.mapping.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, key := range v.mapping.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNewlineIndent(buf, indent, depth+1, pretty)
			rawKey, err := json.Marshal(key)
			if err != nil {
				return fmt.Errorf("document: encode key: %w", err)
			}
			buf.Write(rawKey)
			buf.WriteByte(':')
			if pretty {
				buf.WriteByte(' ')
			}
			entry, _ := v.mapping.Get(key)
			if err := encodeAtDepth(buf, entry, indent, depth+1, pretty); err != nil {
				return err
			}
		}
		writeNewlineIndent(buf, indent, depth, pretty)
		buf.WriteByte('}')
	default:
		buf.WriteString("null")
	}
	return nil
}

func writeNewlineIndent(buf *bytes.Buffer, indent string, depth int, pretty bool) {
	if !pretty {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}
