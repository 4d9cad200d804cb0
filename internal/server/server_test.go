package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gridscan/gridscan/internal/detection"
	"github.com/gridscan/gridscan/internal/grid"
)

type stubRecognizer struct {
	result *grid.Result
	err    error
	data   []byte
}

func (s *stubRecognizer) RecognizeBytes(_ context.Context, data []byte) (*grid.Result, error) {
	s.data = data
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestServer(rec *stubRecognizer) *Server {
	gin.SetMode(gin.TestMode)
	return New(rec, zerolog.Nop())
}

// multipartBody builds a multipart form with content under the given
// field name and returns the body with its content type.
func multipartBody(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, "board.png")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func postRecognize(s *Server, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestRecognizeEndpoint_OK(t *testing.T) {
	puzzle := "5" + strings.Repeat("0", 80)
	stub := &stubRecognizer{result: &grid.Result{
		Puzzle:     puzzle,
		Confidence: 87.5,
		Cells:      make([]grid.CellResult, 81),
		Board:      image.Rect(60, 60, 510, 510),
		Strategy:   detection.StrategyLines,
	}}
	srv := newTestServer(stub)

	body, contentType := multipartBody(t, "file", []byte("fake image bytes"))
	rec := postRecognize(srv, body, contentType)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if string(stub.data) != "fake image bytes" {
		t.Errorf("recognizer received %q, want uploaded bytes", stub.data)
	}

	var resp struct {
		Puzzle       string  `json:"puzzle"`
		Confidence   float64 `json:"confidence"`
		GridLocation struct {
			X      int `json:"x"`
			Y      int `json:"y"`
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"grid_location"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Puzzle != puzzle {
		t.Errorf("puzzle = %q, want %q", resp.Puzzle, puzzle)
	}
	if resp.Confidence != 87.5 {
		t.Errorf("confidence = %v, want 87.5", resp.Confidence)
	}
	loc := resp.GridLocation
	if loc.X != 60 || loc.Y != 60 || loc.Width != 450 || loc.Height != 450 {
		t.Errorf("grid_location = %+v, want {60 60 450 450}", loc)
	}
}

func TestRecognizeEndpoint_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"undecodable image", grid.ErrImageLoad, http.StatusBadRequest},
		{"board not found", grid.ErrRectangleNotFound, http.StatusUnprocessableEntity},
		{"canceled", context.Canceled, http.StatusRequestTimeout},
		{"deadline", context.DeadlineExceeded, http.StatusRequestTimeout},
		{"internal", errTestBoom, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(&stubRecognizer{err: tt.err})
			body, contentType := multipartBody(t, "file", []byte("img"))
			rec := postRecognize(srv, body, contentType)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

var errTestBoom = errOpaque("engine exploded")

type errOpaque string

func (e errOpaque) Error() string { return string(e) }

func TestRecognizeEndpoint_MissingFileField(t *testing.T) {
	stub := &stubRecognizer{}
	srv := newTestServer(stub)

	body, contentType := multipartBody(t, "upload", []byte("img"))
	rec := postRecognize(srv, body, contentType)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if stub.data != nil {
		t.Error("recognizer should not run without a file field")
	}
}

func TestRecognizeEndpoint_NoBody(t *testing.T) {
	srv := newTestServer(&stubRecognizer{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recognize", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
