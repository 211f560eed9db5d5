package api

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/camkit/internal/document"
	"github.com/samcharles93/camkit/internal/logger"
	"github.com/samcharles93/camkit/pkg/canm"
)

func newTestEcho(maxBody int64) *echo.Echo {
	server := NewServer(Config{
		MaxBodyBytes: maxBody,
		Logger:       logger.JSON(io.Discard, slog.LevelDebug),
	})
	e := echo.New()
	server.Register(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sampleFile(t *testing.T) ([]byte, *canm.Animation) {
	t.Helper()
	a := canm.NewAnimation(false)
	a.Header.FrameCount = 90
	curve := canm.Track{Frames: []canm.Frame{
		{FrameID: 0, Value: 1, InSlope: 0, OutSlope: 0},
		{FrameID: 90, Value: 3, InSlope: 0.5, OutSlope: 0.5},
	}}
	a.Tracks[canm.PositionX] = curve
	a.Tracks[canm.TargetX] = curve
	a.Tracks[canm.FieldOfView] = canm.Constant(50)
	data, err := canm.Encode(a)
	if err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	return data, a
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	t.Parallel()

	e := newTestEcho(0)
	data, want := sampleFile(t)

	decRec := do(t, e, http.MethodPost, "/v1/decode", echo.MIMEOctetStream, data)
	if decRec.Code != http.StatusOK {
		t.Fatalf("decode status: got %d body=%s", decRec.Code, decRec.Body.String())
	}
	if decRec.Header().Get(headerRequestID) == "" {
		t.Fatalf("missing request id header")
	}
	if !strings.Contains(decRec.Body.String(), `"FieldOfView"`) {
		t.Fatalf("decode body missing tracks: %s", decRec.Body.String())
	}

	encRec := do(t, e, http.MethodPost, "/v1/encode", echo.MIMEApplicationJSON, decRec.Body.Bytes())
	if encRec.Code != http.StatusOK {
		t.Fatalf("encode status: got %d body=%s", encRec.Code, encRec.Body.String())
	}
	if !bytes.Equal(encRec.Body.Bytes(), data) {
		t.Fatalf("re-encoded file differs from source")
	}

	got, err := canm.Decode(encRec.Body.Bytes())
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("animation mismatch after round trip")
	}
}

func TestEncodeLegacyRecords(t *testing.T) {
	t.Parallel()

	e := newTestEcho(0)
	_, a := sampleFile(t)
	doc, err := document.Marshal(a, document.FormatJSON)
	if err != nil {
		t.Fatalf("marshal document: %v", err)
	}

	rec := do(t, e, http.MethodPost, "/v1/encode?legacy=true", echo.MIMEApplicationJSON, doc)
	if rec.Code != http.StatusOK {
		t.Fatalf("encode status: got %d body=%s", rec.Code, rec.Body.String())
	}
	// PositionX registers 8 values; the legacy count field holds the pool length.
	if got := binary.BigEndian.Uint32(rec.Body.Bytes()[canm.HeaderSize:]); got != 8 {
		t.Fatalf("legacy count: got %d want 8", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	e := newTestEcho(64)
	data, _ := sampleFile(t)

	tests := []struct {
		name   string
		body   []byte
		status int
		code   string
	}{
		{"empty", nil, http.StatusBadRequest, ""},
		{"bad magic", append([]byte("XXXX"), make([]byte, 60)...), http.StatusBadRequest, "bad_magic"},
		{"truncated", data[:40], http.StatusBadRequest, "truncated"},
		{"too large", data, http.StatusRequestEntityTooLarge, "too_large"},
	}
	for _, tc := range tests {
		rec := do(t, e, http.MethodPost, "/v1/decode", echo.MIMEOctetStream, tc.body)
		if rec.Code != tc.status {
			t.Fatalf("%s: status got %d want %d body=%s", tc.name, rec.Code, tc.status, rec.Body.String())
		}
		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s: decode error body: %v", tc.name, err)
		}
		if resp.Error.Message == "" {
			t.Fatalf("%s: empty error message", tc.name)
		}
		if resp.Error.Code != tc.code {
			t.Fatalf("%s: code got %q want %q", tc.name, resp.Error.Code, tc.code)
		}
	}
}

func TestEncodeRejectsInvalidDocument(t *testing.T) {
	t.Parallel()

	e := newTestEcho(0)
	rec := do(t, e, http.MethodPost, "/v1/encode", echo.MIMEApplicationJSON, []byte(`{"tracks":{"Zoom":{"values":[]}}}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "invalid_request_error") {
		t.Fatalf("unexpected error body: %s", rec.Body.String())
	}
}

func TestLayoutReportsSharing(t *testing.T) {
	t.Parallel()

	e := newTestEcho(0)
	data, _ := sampleFile(t)
	rec := do(t, e, http.MethodPost, "/v1/layout", echo.MIMEOctetStream, data)
	if rec.Code != http.StatusOK {
		t.Fatalf("layout status: got %d body=%s", rec.Code, rec.Body.String())
	}

	var resp LayoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if len(resp.Tracks) != canm.TrackCount {
		t.Fatalf("tracks: got %d", len(resp.Tracks))
	}
	if resp.Tracks[canm.TargetX].SharedWith != "PositionX" {
		t.Fatalf("TargetX should share PositionX: %+v", resp.Tracks[canm.TargetX])
	}
	if resp.PayloadValues != 9 {
		t.Fatalf("payload values: got %d want 9", resp.PayloadValues)
	}
	if resp.FrameType != "CKAN" || resp.DataOffset != canm.DataOffsetKeyed {
		t.Fatalf("header fields: %+v", resp)
	}
}

func TestTracksAndHealth(t *testing.T) {
	t.Parallel()

	e := newTestEcho(0)
	rec := do(t, e, http.MethodGet, "/v1/tracks", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("tracks status: %d", rec.Code)
	}
	var resp TracksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode tracks: %v", err)
	}
	want := []string{"PositionX", "PositionY", "PositionZ", "TargetX", "TargetY", "TargetZ", "Roll", "FieldOfView"}
	if strings.Join(resp.Tracks, ",") != strings.Join(want, ",") {
		t.Fatalf("tracks: got %v", resp.Tracks)
	}

	index := do(t, e, http.MethodGet, "/", "", nil)
	if index.Code != http.StatusOK || !strings.HasPrefix(index.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("index: %d %s", index.Code, index.Header().Get("Content-Type"))
	}

	health := do(t, e, http.MethodGet, "/healthz", "", nil)
	if health.Code != http.StatusOK || !strings.Contains(health.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", health.Code, health.Body.String())
	}
}
