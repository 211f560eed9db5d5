package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/camkit/internal/document"
	"github.com/samcharles93/camkit/internal/logger"
	"github.com/samcharles93/camkit/internal/version"
	"github.com/samcharles93/camkit/internal/webui"
	"github.com/samcharles93/camkit/pkg/canm"
)

// DefaultMaxBodyBytes bounds uploaded containers and documents.
const DefaultMaxBodyBytes = 16 << 20

type Config struct {
	Family       canm.Family
	MaxBodyBytes int64
	Logger       logger.Logger
}

// Server exposes the codec to the web editor.
type Server struct {
	family  canm.Family
	maxBody int64
	log     logger.Logger
	clock   func() time.Time
}

func NewServer(cfg Config) *Server {
	if cfg.Family.Name == "" {
		cfg.Family = canm.FamilyCANM
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	return &Server{
		family:  cfg.Family,
		maxBody: cfg.MaxBodyBytes,
		log:     cfg.Logger,
		clock:   time.Now,
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.Use(s.requestID)

	e.GET("/", s.handleIndex)
	e.GET("/healthz", s.handleHealth)
	e.GET("/v1/tracks", s.handleTracks)
	e.POST("/v1/decode", s.handleDecode)
	e.POST("/v1/encode", s.handleEncode)
	e.POST("/v1/layout", s.handleLayout)
}

// requestID tags every response and log line with a fresh request id.
func (s *Server) requestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c *echo.Context) error {
		id := newRequestID()
		c.Response().Header().Set(headerRequestID, id)
		start := s.clock()
		err := next(c)
		log := s.log.With("request_id", id, "method", c.Request().Method, "path", c.Request().URL.Path)
		if err != nil {
			log.Error("request failed", "error", err, "elapsed", s.clock().Sub(start))
			return err
		}
		log.Debug("request served", "elapsed", s.clock().Sub(start))
		return nil
	}
}

func (s *Server) handleIndex(c *echo.Context) error {
	return writeBlob(c, http.StatusOK, "text/html; charset=utf-8", webui.Index())
}

func (s *Server) handleHealth(c *echo.Context) error {
	return writeJSON(c, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.String(),
		"family":  s.family.Name,
	})
}

func (s *Server) handleTracks(c *echo.Context) error {
	resp := TracksResponse{Object: "list"}
	for _, sel := range canm.TrackSelections() {
		resp.Tracks = append(resp.Tracks, sel.String())
	}
	return writeJSON(c, http.StatusOK, resp)
}

func (s *Server) codec(legacy bool) *canm.Codec {
	return canm.NewCodec(s.family, canm.EncodeOptions{LegacyTrackRecords: legacy})
}

// handleDecode takes a raw container and returns its JSON document.
func (s *Server) handleDecode(c *echo.Context) error {
	body, err := s.body(c)
	if body == nil {
		return err
	}
	anim, err := s.codec(false).Decode(body)
	if err != nil {
		return writeBadRequest(c, err)
	}
	out, err := document.Marshal(anim, document.FormatJSON)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "invalid_file", fmt.Sprintf("render document: %v", err), "unrepresentable")
	}
	return writeBlob(c, http.StatusOK, echo.MIMEApplicationJSON, out)
}

// handleEncode takes a JSON document and returns the container bytes.
func (s *Server) handleEncode(c *echo.Context) error {
	body, err := s.body(c)
	if body == nil {
		return err
	}
	anim, err := document.Unmarshal(body, document.FormatJSON)
	if err != nil {
		return writeBadRequest(c, err)
	}
	out, stats, err := s.codec(boolParam(c, "legacy")).EncodeWithStats(anim)
	if err != nil {
		return writeBadRequest(c, err)
	}
	s.log.Debug("encoded animation", "file_size", stats.FileSize, "pool_values", stats.PoolValues, "shared_runs", stats.SharedRuns)
	c.Response().Header().Set("Content-Disposition", `attachment; filename="camera.`+s.family.Name+`"`)
	return writeBlob(c, http.StatusOK, echo.MIMEOctetStream, out)
}

func (s *Server) handleLayout(c *echo.Context) error {
	body, err := s.body(c)
	if body == nil {
		return err
	}
	l, err := s.codec(false).ReadLayout(body)
	if err != nil {
		return writeBadRequest(c, err)
	}
	return writeJSON(c, http.StatusOK, layoutResponse(l))
}

// body returns the request body, or nil after writing an error response.
func (s *Server) body(c *echo.Context) ([]byte, error) {
	body, ok, err := readBody(c, s.maxBody)
	if err != nil {
		return nil, writeError(c, http.StatusBadRequest, "invalid_request_error", fmt.Sprintf("read body: %v", err), "")
	}
	if !ok {
		return nil, writeError(c, http.StatusRequestEntityTooLarge, "invalid_request_error",
			fmt.Sprintf("body exceeds %d bytes", s.maxBody), "too_large")
	}
	if len(body) == 0 {
		return nil, writeBadRequest(c, newInvalidRequest("empty request body"))
	}
	return body, nil
}

func layoutResponse(l *canm.Layout) LayoutResponse {
	resp := LayoutResponse{
		Object:        "layout",
		FrameType:     l.Header.FrameType.String(),
		IsFullFrames:  l.FullFrames,
		FrameCount:    l.Header.FrameCount,
		DataOffset:    l.Header.Offset,
		PayloadSize:   l.PayloadSize,
		PayloadValues: l.PayloadValues(),
		FileSize:      l.FileSize,
		Tracks:        make([]TrackLayout, 0, len(l.Tracks)),
	}
	for _, t := range l.Tracks {
		tl := TrackLayout{
			Name:     t.Selection.String(),
			Count:    t.Count,
			Start:    t.Start,
			Selector: t.Selector,
			Offset:   t.Offset,
			Values:   t.Values,
		}
		if t.Shared {
			tl.SharedWith = t.SharedWith.String()
		}
		resp.Tracks = append(resp.Tracks, tl)
	}
	return resp
}
