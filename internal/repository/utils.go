package repository

import (
	"bytes"
	"encoding/json"
)

func marshalString(v interface{}) (*string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// unmarshalJson decodes numbers as json.Number so decimals keep their
// exact digits.
func unmarshalJson(s string, v interface{}) error {
	decoder := json.NewDecoder(bytes.NewReader([]byte(s)))
	decoder.UseNumber()
	return decoder.Decode(v)
}
