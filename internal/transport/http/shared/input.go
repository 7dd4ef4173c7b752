package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrInvalidPayload = errors.New("invalid request payload")

// Input is a decoded JSON request body. Numbers stay json.Number so integer
// ids survive decoding intact.
type Input map[string]any

func (in Input) Has(field string) bool {
	_, ok := in[field]
	return ok
}

// DecodeInput reads a JSON object body. An empty body decodes to an empty
// Input.
func DecodeInput(r *http.Request) (Input, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	in := Input{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return in, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return in, nil
}
