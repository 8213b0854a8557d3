package models

import (
	"bytes"
	"encoding/json"
	"errors"
)

var ErrNotJSONObject = errors.New("body: must be a JSON object")

var jsonNull = []byte("null")

// Field is one member of a submitted JSON object. It is either absent,
// explicitly null, or carries a raw value that has not been typed yet.
type Field struct {
	raw     json.RawMessage
	present bool
}

// NewField wraps a raw JSON value as a present field.
func NewField(raw json.RawMessage) Field {
	return Field{raw: raw, present: true}
}

func (f Field) Present() bool { return f.present }

func (f Field) Null() bool {
	return f.present && bytes.Equal(bytes.TrimSpace(f.raw), jsonNull)
}

// Falsy reports whether the value is null, false, 0 or the empty string.
func (f Field) Falsy() bool {
	if !f.present {
		return false
	}
	switch raw := bytes.TrimSpace(f.raw); {
	case bytes.Equal(raw, jsonNull), bytes.Equal(raw, []byte("false")), bytes.Equal(raw, []byte(`""`)):
		return true
	}
	n, ok := f.AsNumber()
	return ok && n == 0
}

// AsString decodes the field as a JSON string.
func (f Field) AsString() (string, bool) {
	if !f.present || f.Null() {
		return "", false
	}
	var s string
	if err := json.Unmarshal(f.raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// AsNumber decodes the field as a JSON number. Quoted numbers are rejected.
func (f Field) AsNumber() (float64, bool) {
	if !f.present || f.Null() {
		return 0, false
	}
	var n float64
	if err := json.Unmarshal(f.raw, &n); err != nil {
		return 0, false
	}
	return n, true
}

// TransactionInput is a create or update body split into optional fields.
// Members other than these are ignored, including id and createdAt.
type TransactionInput struct {
	Title    Field
	Amount   Field
	Type     Field
	Category Field
	Date     Field
	Note     Field
}

// ParseTransactionInput decodes a request body. An empty body counts as {}.
func ParseTransactionInput(body []byte) (TransactionInput, error) {
	var in TransactionInput
	if len(bytes.TrimSpace(body)) == 0 {
		return in, nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil || members == nil {
		return in, ErrNotJSONObject
	}

	field := func(name string) Field {
		raw, ok := members[name]
		if !ok {
			return Field{}
		}
		return NewField(raw)
	}

	in.Title = field("title")
	in.Amount = field("amount")
	in.Type = field("type")
	in.Category = field("category")
	in.Date = field("date")
	in.Note = field("note")
	return in, nil
}
