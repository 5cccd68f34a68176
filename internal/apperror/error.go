package apperror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindBadRequest
	KindAuth
	KindNotFound
	KindConflict
	KindDuplicate
	KindServer
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindBadRequest:
		return "bad_request"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindDuplicate:
		return "duplicate"
	case KindServer:
		return "server"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// StatusDuplicate is what the backend answers when the item already exists.
const StatusDuplicate = http.StatusAlreadyReported

const (
	MsgInvalidRequest     = "invalid request"
	MsgInvalidCredentials = "invalid credentials"
	MsgServerError        = "server error"
)

type Error struct {
	Kind   Kind
	Status int
	Body   []byte
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindValidation:
		return "validation failed: " + formatFields(e.Fields)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d: %s", e.Kind, e.Status, strings.TrimSpace(string(e.Body)))
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func FromResponse(status int, body []byte) *Error {
	return &Error{Kind: classify(status), Status: status, Body: body}
}

func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func Validation(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

func classify(status int) Kind {
	switch {
	case status == StatusDuplicate:
		return KindDuplicate
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return KindBadRequest
	case status == http.StatusUnauthorized:
		return KindAuth
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func FieldsOf(err error) map[string]string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind == KindValidation {
		return appErr.Fields
	}
	return nil
}

// Message picks the human readable text for err.
// Order: body detail, body message, nested message.message, status default, fallback.
func Message(err error, fallback string) string {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return fallback
	}

	if appErr.Kind == KindValidation {
		if msg := firstField(appErr.Fields); msg != "" {
			return msg
		}
		return fallback
	}

	if msg := fromBody(appErr.Body); msg != "" {
		return msg
	}

	switch {
	case appErr.Status == http.StatusBadRequest:
		return MsgInvalidRequest
	case appErr.Status == http.StatusUnauthorized:
		return MsgInvalidCredentials
	case appErr.Status >= 500:
		return MsgServerError
	}
	return fallback
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message json.RawMessage `json:"message"`
}

func fromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if msg := detailText(parsed.Detail); msg != "" {
		return msg
	}
	return messageText(parsed.Message)
}

func detailText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	// Framework validation errors arrive as [{"loc": [...], "msg": "..."}].
	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return list[0].Msg
	}
	return ""
}

func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		return nested.Message
	}
	return ""
}

func firstField(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fields[keys[0]]
}

func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
