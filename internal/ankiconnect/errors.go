package ankiconnect

import (
	"errors"
	"fmt"
)

// エラー定義
var (
	ErrProtocolShape = errors.New("malformed note service response")
	ErrDuplicateNote = errors.New("cannot create note because it is a duplicate")
	ErrService       = errors.New("note service returned an error")
	ErrTransport     = errors.New("note service request failed")
	ErrInvalidResult = errors.New("unexpected result value")
	ErrInvalidNote   = errors.New("invalid note")
)

// ProtocolShapeError はレスポンスがresult/errorの2キー構造でない
type ProtocolShapeError struct {
	Action string
	Reason string
}

func (e *ProtocolShapeError) Error() string {
	return fmt.Sprintf("%s: %s (action %s)", ErrProtocolShape, e.Reason, e.Action)
}

func (e *ProtocolShapeError) Is(target error) bool {
	return target == ErrProtocolShape
}

// ServiceError は重複以外の非nullのerror値
type ServiceError struct {
	Action  string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("note service error (action %s): %s", e.Action, e.Message)
}

func (e *ServiceError) Is(target error) bool {
	return target == ErrService
}

// StatusError はHTTPステータスが200以外
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("note service HTTP error (status %d): %s", e.StatusCode, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrTransport
}
