package codescan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// decodeConcatenated decodes a buffer holding zero or more complete JSON
// arrays concatenated with no delimiter, as produced by the collaborator's
// pagination loop, and returns the elements of all arrays in encounter
// order. An empty buffer yields an empty slice. A buffer that is not a
// concatenation of complete arrays is a hard decode error; no elements are
// silently dropped.
//
// The decoder consumes the buffer with a single cursor rather than
// recursing on parse-failure offsets, so arbitrarily long paginated
// streams do not grow the call stack.
func decodeConcatenated[T any](data []byte) ([]T, error) {
	out := make([]T, 0)
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	for {
		var page []T
		err := dec.Decode(&page)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, NewScanError(ErrorTypeDecode,
				fmt.Sprintf("malformed document stream at offset %d: %v", dec.InputOffset(), err), err)
		}
		out = append(out, page...)
	}
}

// DecodeAnalyses decodes a paginated analysis listing stream.
func DecodeAnalyses(data []byte) ([]Analysis, error) {
	return decodeConcatenated[Analysis](data)
}

// DecodeAlerts decodes a paginated alert listing stream.
func DecodeAlerts(data []byte) ([]Alert, error) {
	return decodeConcatenated[Alert](data)
}
