package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNoFile             = errors.New("no file uploaded")
	ErrModelNotFound      = errors.New("model file not found in uploads")
	ErrGenerationFailed   = errors.New("model generation failed")
	ErrGenerationTimeout  = errors.New("model generation timed out")
)

// MissingFieldsError reports every absent purchase field at once so the
// client can highlight all of them in a single round trip.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
