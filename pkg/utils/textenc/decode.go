package textenc

import (
	"encoding/base64"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
)

// Decode converts a base64 transport payload back into raw bytes. Line breaks
// and surrounding whitespace are ignored since hosts wrap long payloads.
func Decode(payload string) ([]byte, error) {
	compact := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\t', ' ':
			return -1
		}
		return r
	}, payload)

	data, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid base64 payload",
			goerr.T(types.ErrTagDecode),
			goerr.V("payload_length", len(payload)),
		)
	}
	return data, nil
}

// Encode is the inverse of Decode without line wrapping
func Encode(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
