package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime/debug"

	"google.golang.org/genai"
)

// Kind é a classificação de uma falha do provedor. É o valor devolvido ao
// cliente no campo "name" da resposta de erro.
type Kind string

const (
	KindTimeout        Kind = "ProviderTimeout"
	KindCanceled       Kind = "ProviderCanceled"
	KindInvalidRequest Kind = "ProviderInvalidRequest"
	KindAuthFailed     Kind = "ProviderAuthFailed"
	KindModelNotFound  Kind = "ProviderModelNotFound"
	KindQuotaExceeded  Kind = "ProviderQuotaExceeded"
	KindUnavailable    Kind = "ProviderUnavailable"
	KindBlocked        Kind = "ProviderBlocked"
	KindEmptyResponse  Kind = "ProviderEmptyResponse"
	KindUnknown        Kind = "ProviderError"
)

var ErrMissingAPIKey = errors.New("provider API key is required")

// Error representa uma falha vinda da chamada ao modelo
type Error struct {
	Kind    Kind
	Message string
	Err     error
	// Stack é capturado na classificação e só vai para os logs
	Stack string
}

// NewError cria um Error já classificado
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Stack: string(debug.Stack())}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Classify converte qualquer erro do provedor em um *Error.
// Erros já classificados são devolvidos como estão.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	e := &Error{
		Kind:    KindUnknown,
		Message: err.Error(),
		Err:     err,
		Stack:   string(debug.Stack()),
	}

	if apiErr, ok := asAPIError(err); ok {
		e.Kind = kindFromStatus(apiErr.Code)
		if apiErr.Message != "" {
			e.Message = apiErr.Message
		}
		return e
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		e.Kind = KindTimeout
	case errors.Is(err, context.Canceled):
		e.Kind = KindCanceled
	default:
		var netErr net.Error
		if errors.As(err, &netErr) {
			if netErr.Timeout() {
				e.Kind = KindTimeout
			} else {
				e.Kind = KindUnavailable
			}
		}
	}
	return e
}

func asAPIError(err error) (genai.APIError, bool) {
	var v genai.APIError
	if errors.As(err, &v) {
		return v, true
	}
	var p *genai.APIError
	if errors.As(err, &p) && p != nil {
		return *p, true
	}
	return genai.APIError{}, false
}

func kindFromStatus(code int) Kind {
	switch {
	case code == http.StatusBadRequest:
		return KindInvalidRequest
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindAuthFailed
	case code == http.StatusNotFound:
		return KindModelNotFound
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return KindTimeout
	case code == http.StatusTooManyRequests:
		return KindQuotaExceeded
	case code >= 500:
		return KindUnavailable
	default:
		return KindUnknown
	}
}
