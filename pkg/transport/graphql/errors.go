package graphql

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
)

// ErrorKind classifies a TransportError.
type ErrorKind int

const (
	// KindNetwork means the HTTP exchange itself failed.
	KindNetwork ErrorKind = iota + 1
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP
	// KindInvalidResponse means a 2xx status with no body.
	KindInvalidResponse
	// KindDecode means a 2xx body that is not a JSON object.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "Network error"
	case KindHTTP:
		return "HTTP error"
	case KindInvalidResponse:
		return "Invalid response"
	case KindDecode:
		return "Decode error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Match targets for errors.Is.
var (
	ErrNetwork         = &TransportError{Kind: KindNetwork}
	ErrHTTP            = &TransportError{Kind: KindHTTP}
	ErrInvalidResponse = &TransportError{Kind: KindInvalidResponse}
	ErrDecode          = &TransportError{Kind: KindDecode}
)

const (
	emptyBodyText      = "Empty response body"
	unreadableBodyText = "Unreadable response body"
)

// TransportError is the failure delivered when a send does not produce a
// usable response. Only Err is set for KindNetwork; the other kinds carry
// the status line and raw body.
type TransportError struct {
	Kind        ErrorKind
	StatusCode  int
	Status      string
	ContentType string
	Body        []byte
	Err         error
}

func (e *TransportError) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%d %s): %s", e.Kind, e.StatusCode, e.Status, e.BodyText())
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a TransportError of the same kind. A target
// with a StatusCode also has to match it.
func (e *TransportError) Is(target error) bool {
	t, ok := target.(*TransportError)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

// BodyText renders the body for diagnostics. It never fails.
func (e *TransportError) BodyText() string {
	if len(e.Body) == 0 {
		return emptyBodyText
	}
	text, ok := decodeText(e.Body, e.ContentType)
	if !ok {
		return unreadableBodyText
	}
	return text
}

func newNetworkError(err error) *TransportError {
	return &TransportError{Kind: KindNetwork, Err: err}
}

func newResponseError(kind ErrorKind, resp *http.Response, body []byte, cause error) *TransportError {
	return &TransportError{
		Kind:        kind,
		StatusCode:  resp.StatusCode,
		Status:      statusText(resp),
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		Err:         cause,
	}
}

// statusText returns the reason phrase from the status line, or the
// standard text when the server sent none.
func statusText(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason != "" {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}

// decodeText converts body to a string using the charset declared in
// contentType, falling back to UTF-8.
func decodeText(body []byte, contentType string) (string, bool) {
	charset := ""
	if contentType != "" {
		if _, params, err := mime.ParseMediaType(contentType); err == nil {
			charset = params["charset"]
		}
	}

	if charset != "" && !isUTF8(charset) {
		if enc, err := htmlindex.Get(charset); err == nil {
			out, err := enc.NewDecoder().Bytes(body)
			if err != nil {
				return "", false
			}
			return string(out), true
		}
	}

	if !utf8.Valid(body) {
		return "", false
	}
	return string(body), true
}

func isUTF8(charset string) bool {
	c := strings.ToLower(charset)
	return c == "utf-8" || c == "utf8"
}
