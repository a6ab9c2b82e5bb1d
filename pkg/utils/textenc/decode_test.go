package textenc_test

import (
	"crypto/rand"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
	"github.com/m-mizutani/vendorfetch/pkg/utils/textenc"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
		wantErr bool
	}{
		{
			name:    "Plain payload",
			payload: "aGVsbG8=",
			want:    "hello",
		},
		{
			name:    "Wrapped payload",
			payload: "aGVs\nbG8g\r\nd29y\nbGQ=\n",
			want:    "hello world",
		},
		{
			name:    "Empty payload",
			payload: "",
			want:    "",
		},
		{
			name:    "Invalid characters",
			payload: "not*base64!",
			wantErr: true,
		},
		{
			name:    "Truncated padding",
			payload: "aGVsbG8",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := textenc.Decode(tt.payload)
			if tt.wantErr {
				gt.Error(t, err)
				gt.True(t, goerr.HasTag(err, types.ErrTagDecode))
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, string(got), tt.want)
		})
	}
}

func TestDecode_InverseOfEncode(t *testing.T) {
	for _, size := range []int{0, 1, 2, 3, 57, 1024, 4099} {
		data := make([]byte, size)
		_, err := rand.Read(data)
		gt.NoError(t, err)

		got, err := textenc.Decode(textenc.Encode(data))
		gt.NoError(t, err)
		gt.Equal(t, len(got), size)
		gt.Equal(t, string(got), string(data))
	}
}
