package apperror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// Kind xato turi
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindParse
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error turi ko'rsatilgan xato. Op - qaysi amalda yuz bergani.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s error: status %d: %s", e.Op, e.Kind, e.StatusCode, e.Body)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Network tarmoq xatosi
func Network(op string, err error) error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// HTTPStatus muvaffaqiyatsiz HTTP javobi (tarmoq xatosi sifatida)
func HTTPStatus(op string, statusCode int, body string) error {
	return &Error{Kind: KindNetwork, Op: op, StatusCode: statusCode, Body: body}
}

// Parse ma'lumotni o'qish xatosi
func Parse(op string, err error) error {
	return &Error{Kind: KindParse, Op: op, Err: err}
}

// Validation noto'g'ri ma'lumot xatosi
func Validation(op string, err error) error {
	return &Error{Kind: KindValidation, Op: op, Err: err}
}

// KindOf zanjirdagi birinchi Error turini qaytaradi
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// StatusCode zanjirdagi HTTP status (bo'lmasa 0)
func StatusCode(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return 0
}

// IsTimeout kutish vaqti tugaganini tekshirish
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsConnection ulanish xatosini tekshirish
func IsConnection(err error) bool {
	if err == nil || IsTimeout(err) {
		return false
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
