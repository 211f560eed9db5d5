package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const headerRequestID = "X-Request-Id"

func writeBadRequest(c *echo.Context, err error) error {
	return writeError(c, http.StatusBadRequest, errorType(err), err.Error(), errorCode(err))
}

func writeError(c *echo.Context, status int, errType, msg, code string) error {
	return writeJSON(c, status, ErrorResponse{
		Error: ErrorBody{
			Message: msg,
			Type:    errType,
			Code:    code,
		},
	})
}

func writeJSON(c *echo.Context, status int, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return writeBlob(c, status, echo.MIMEApplicationJSON, b)
}

func writeBlob(c *echo.Context, status int, contentType string, b []byte) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, contentType)
	res.WriteHeader(status)
	_, err := res.Write(b)
	return err
}

// readBody reads at most limit bytes of the request body. ok is false when
// the body is larger.
func readBody(c *echo.Context, limit int64) (body []byte, ok bool, err error) {
	body, err = io.ReadAll(io.LimitReader(c.Request().Body, limit+1))
	if err != nil {
		return nil, false, err
	}
	if int64(len(body)) > limit {
		return nil, false, nil
	}
	return body, true, nil
}

func boolParam(c *echo.Context, name string) bool {
	q := c.QueryParam(name)
	return q == "1" || strings.EqualFold(q, "true")
}

func newRequestID() string {
	return "req_" + uuid.NewString()
}
