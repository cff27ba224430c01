package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassifyNil(t *testing.T) {
	assert.Nil(t, Classify(nil))
}

func TestClassifyKeepsClassifiedErrors(t *testing.T) {
	orig := NewError(KindTimeout, "deadline exceeded")

	got := Classify(fmt.Errorf("wrapped: %w", orig))
	require.NotNil(t, got)
	assert.Same(t, orig, got)
	assert.Equal(t, KindTimeout, got.Kind)
	assert.Equal(t, "deadline exceeded", got.Message)
}

func TestClassifyAPIErrors(t *testing.T) {
	tests := []struct {
		code int
		want Kind
	}{
		{400, KindInvalidRequest},
		{401, KindAuthFailed},
		{403, KindAuthFailed},
		{404, KindModelNotFound},
		{408, KindTimeout},
		{429, KindQuotaExceeded},
		{500, KindUnavailable},
		{503, KindUnavailable},
		{504, KindTimeout},
		{418, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			err := genai.APIError{Code: tt.code, Message: "upstream said no", Status: "STATUS"}

			got := Classify(err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, "upstream said no", got.Message)
			assert.NotEmpty(t, got.Stack)
		})
	}
}

func TestClassifyAPIErrorPointer(t *testing.T) {
	err := fmt.Errorf("call: %w", &genai.APIError{Code: 429, Message: "quota exhausted"})

	got := Classify(err)
	assert.Equal(t, KindQuotaExceeded, got.Kind)
	assert.Equal(t, "quota exhausted", got.Message)
}

func TestClassifyContextAndNetworkErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"deadline", context.DeadlineExceeded, KindTimeout},
		{"wrapped deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), KindTimeout},
		{"canceled", context.Canceled, KindCanceled},
		{"net timeout", &net.OpError{Op: "dial", Net: "tcp", Err: timeoutErr{}}, KindTimeout},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, KindUnavailable},
		{"other", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.err.Error(), got.Message)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestErrorString(t *testing.T) {
	err := NewError(KindBlocked, "prompt blocked: SAFETY")
	assert.Equal(t, "ProviderBlocked: prompt blocked: SAFETY", err.Error())
	assert.Nil(t, err.Unwrap())
}
