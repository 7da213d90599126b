package apiclient

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// запрос не дошёл до сервера
	KindNetwork Kind = iota
	KindTimeout
	// ответ 4xx
	KindClient
	// ответ 5xx
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindTimeout:
		return "timeout"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

var (
	ErrNetwork      = errors.New("network error")
	ErrTimeout      = errors.New("request timeout")
	ErrClientStatus = errors.New("client error status")
	ErrServerStatus = errors.New("server error status")
)

type Error struct {
	Kind       Kind
	Method     string
	Path       string
	Status     int
	StatusText string
	// поле message тела ошибки, если backend его прислал
	Message string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrClientStatus:
		return e.Kind == KindClient
	case ErrServerStatus:
		return e.Kind == KindServer
	}
	return false
}
