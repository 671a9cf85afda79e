package graphql

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/saturnines/nexus-gql/pkg/errors"
)

// ErrNonHTTPResponse is reported when an HTTPDoer returns neither a response
// nor an error. It wraps errors.ErrHTTPResponse and is not a TransportError:
// it points at a broken doer, not at the server.
var ErrNonHTTPResponse = fmt.Errorf("doer returned no response and no error")

// interpret turns the outcome of one HTTP exchange into a Response or a
// classified error. It always closes resp.Body.
func interpret(op Operation, resp *http.Response, err error) (*Response, error) {
	if err != nil {
		return nil, newNetworkError(err)
	}
	if resp == nil {
		return nil, errors.WrapError(ErrNonHTTPResponse, errors.ErrHTTPResponse, "interpret response")
	}

	body, readErr := readBody(resp)
	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	if !success {
		// Whatever arrived is kept for diagnostics, even if the read broke off.
		return nil, newResponseError(KindHTTP, resp, body, nil)
	}
	if readErr != nil {
		return nil, newNetworkError(readErr)
	}
	if len(body) == 0 {
		return nil, newResponseError(KindInvalidResponse, resp, body, nil)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, newResponseError(KindDecode, resp, body, err)
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, newResponseError(KindDecode, resp, body, fmt.Errorf("top-level JSON value is %s, not an object", jsonType(v)))
	}

	return &Response{Operation: op, Body: obj}, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	if resp.Body == nil {
		return nil, nil
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func jsonType(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case []interface{}:
		return "an array"
	case string:
		return "a string"
	case float64:
		return "a number"
	case bool:
		return "a boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
