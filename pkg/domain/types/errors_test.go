package types_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "transport",
			err:  goerr.Wrap(&types.TransportError{Status: 404}, "non-success status", goerr.T(types.ErrTagTransport)),
			want: "transport",
		},
		{
			name: "network",
			err:  goerr.New("request failed", goerr.T(types.ErrTagNetwork)),
			want: "network",
		},
		{
			name: "decode through wrap",
			err:  goerr.Wrap(goerr.New("invalid base64", goerr.T(types.ErrTagDecode)), "failed to decode"),
			want: "decode",
		},
		{
			name: "io",
			err:  goerr.New("failed to write file", goerr.T(types.ErrTagIO)),
			want: "io",
		},
		{
			name: "manifest",
			err:  goerr.New("empty manifest entry", goerr.T(types.ErrTagManifest)),
			want: "manifest",
		},
		{
			name: "canceled",
			err:  goerr.Wrap(context.Canceled, "backoff interrupted", goerr.T(types.ErrTagCanceled)),
			want: "canceled",
		},
		{
			name: "inside exhausted error",
			err: &types.FetchExhaustedError{
				Path:     "a.c",
				Attempts: 5,
				Last:     goerr.New("request failed", goerr.T(types.ErrTagNetwork)),
			},
			want: "network",
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			want: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, types.Kind(tt.err), tt.want)
		})
	}
}

func TestFetchExhaustedError_Unwrap(t *testing.T) {
	last := &types.TransportError{Status: 500, URL: "https://example.com/a.c?format=TEXT"}
	err := &types.FetchExhaustedError{Path: "a.c", Attempts: 5, Last: last}

	var transportErr *types.TransportError
	gt.True(t, errors.As(err, &transportErr))
	gt.Equal(t, transportErr.Status, 500)
	gt.String(t, err.Error()).Contains("after 5 attempts")
}
