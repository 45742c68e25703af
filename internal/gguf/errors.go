package gguf

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a decode or lookup failure.
type ErrorKind uint8

// Error kinds.
const (
	KindIO ErrorKind = iota + 1
	KindFormat
	KindLookup
	KindTypeMismatch
	KindConfig
)

// String returns the name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindLookup:
		return "lookup"
	case KindTypeMismatch:
		return "type mismatch"
	case KindConfig:
		return "config"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Kind sentinels. Every *Error unwraps to exactly one of these.
var (
	ErrIO               = errors.New("gguf: i/o error")
	ErrFormat           = errors.New("gguf: format error")
	ErrKeyNotFound      = errors.New("gguf: metadata key not found")
	ErrTypeMismatch     = errors.New("gguf: metadata value type mismatch")
	ErrIncompleteConfig = errors.New("gguf: model configuration incomplete")
)

// Format error reasons, wrapped by *Error values of KindFormat.
var (
	ErrInvalidMagic            = errors.New("invalid magic")
	ErrUnsupportedVersion      = errors.New("unsupported version")
	ErrInvalidValueType        = errors.New("invalid value type")
	ErrInvalidQuantizationType = errors.New("invalid quantization type")
	ErrInvalidUTF8             = errors.New("string is not valid UTF-8")
	ErrInvalidTensorDimensions = errors.New("invalid tensor dimensions")
	ErrLimitExceeded           = errors.New("length exceeds limit")
)

// Error is the single error type returned by every decode step and
// metadata accessor. Only the fields relevant to Kind are set.
type Error struct {
	Kind ErrorKind

	Magic   [4]byte // KindFormat, ErrInvalidMagic
	Version uint32  // KindFormat, ErrUnsupportedVersion
	Code    uint32  // KindFormat, ErrInvalidValueType / ErrInvalidQuantizationType
	NDims   uint32  // KindFormat, ErrInvalidTensorDimensions

	Key      string // KindLookup, KindTypeMismatch
	Expected string // KindTypeMismatch
	Found    string // KindTypeMismatch
	Field    string // KindConfig

	Err error
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindIO:
		return ErrIO
	case KindFormat:
		return ErrFormat
	case KindLookup:
		return ErrKeyNotFound
	case KindTypeMismatch:
		return ErrTypeMismatch
	case KindConfig:
		return ErrIncompleteConfig
	default:
		return nil
	}
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindIO:
		return fmt.Sprintf("gguf: i/o error: %v", e.Err)
	case KindFormat:
		switch {
		case errors.Is(e.Err, ErrInvalidMagic):
			return fmt.Sprintf("gguf: invalid magic: expected %q, found %q", "GGUF", e.Magic[:])
		case errors.Is(e.Err, ErrUnsupportedVersion):
			return fmt.Sprintf("gguf: unsupported version: %d (only v%d supported)", e.Version, Version3)
		case errors.Is(e.Err, ErrInvalidValueType):
			return fmt.Sprintf("gguf: invalid value type: %d", e.Code)
		case errors.Is(e.Err, ErrInvalidQuantizationType):
			return fmt.Sprintf("gguf: invalid quantization type: %d", e.Code)
		case errors.Is(e.Err, ErrInvalidTensorDimensions):
			return fmt.Sprintf("gguf: invalid tensor dimensions: %d (max %d)", e.NDims, MaxDimensions)
		}
		return fmt.Sprintf("gguf: %v", e.Err)
	case KindLookup:
		return fmt.Sprintf("gguf: metadata key not found: %s", e.Key)
	case KindTypeMismatch:
		return fmt.Sprintf("gguf: invalid metadata value type for key %q: expected %s, found %s", e.Key, e.Expected, e.Found)
	case KindConfig:
		if e.Err != nil {
			return fmt.Sprintf("gguf: model configuration incomplete: missing %s: %v", e.Field, e.Err)
		}
		return fmt.Sprintf("gguf: model configuration incomplete: missing %s", e.Field)
	default:
		return fmt.Sprintf("gguf: %v", e.Err)
	}
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func ioError(err error) error {
	return &Error{Kind: KindIO, Err: err}
}

func formatError(reason error) *Error {
	return &Error{Kind: KindFormat, Err: reason}
}

func keyNotFound(key string) error {
	return &Error{Kind: KindLookup, Key: key}
}

func typeMismatch(key, expected string, found Value) error {
	return &Error{Kind: KindTypeMismatch, Key: key, Expected: expected, Found: kindName(found)}
}

func incompleteConfig(field string, cause error) error {
	return &Error{Kind: KindConfig, Field: field, Err: cause}
}
