// Package server exposes the recognition pipeline over HTTP: a
// multipart image upload in, the recognized puzzle JSON out.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/gridscan/gridscan/internal/grid"
)

// BoardRecognizer recognizes a raw image blob into a puzzle result.
// Satisfied by *grid.Recognizer.
type BoardRecognizer interface {
	RecognizeBytes(ctx context.Context, data []byte) (*grid.Result, error)
}

// Server routes recognition requests to a BoardRecognizer.
type Server struct {
	rec    BoardRecognizer
	log    zerolog.Logger
	router *gin.Engine
}

// New creates a Server and builds its routes.
func New(rec BoardRecognizer, log zerolog.Logger) *Server {
	s := &Server{rec: rec, log: log}

	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api").Group("/v1")
	v1.POST("/recognize", s.recognize)

	s.router = router
	return s
}

// Router returns the underlying gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves HTTP on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("listening")
	return s.router.Run(addr)
}

// gridLocation is the detected board rectangle in source coordinates.
type gridLocation struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// recognizeResponse is the JSON body of a successful recognition.
type recognizeResponse struct {
	Puzzle       string            `json:"puzzle"`
	Confidence   float64           `json:"confidence"`
	Cells        []grid.CellResult `json:"cells"`
	GridLocation gridLocation      `json:"grid_location"`
}

// recognize handles POST /api/v1/recognize: a multipart form with the
// image under the "file" field.
func (s *Server) recognize(c *gin.Context) {
	start := time.Now()

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing form file", "message": err.Error()})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable form file", "message": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable form file", "message": err.Error()})
		return
	}

	result, err := s.rec.RecognizeBytes(c.Request.Context(), data)
	if err != nil {
		s.log.Err(err).Str("file", header.Filename).Msg("recognition failed")
		switch {
		case errors.Is(err, grid.ErrImageLoad):
			c.JSON(http.StatusBadRequest, gin.H{"error": "undecodable image", "message": err.Error()})
		case errors.Is(err, grid.ErrRectangleNotFound):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "board not found", "message": err.Error()})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.JSON(http.StatusRequestTimeout, gin.H{"error": "canceled", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "recognition failed", "message": err.Error()})
		}
		return
	}

	s.log.Info().
		Str("file", header.Filename).
		Str("strategy", string(result.Strategy)).
		Float64("confidence", result.Confidence).
		Dur("elapsed", time.Since(start)).
		Msg("recognized board")

	c.JSON(http.StatusOK, recognizeResponse{
		Puzzle:     result.Puzzle,
		Confidence: result.Confidence,
		Cells:      result.Cells,
		GridLocation: gridLocation{
			X:      result.Board.Min.X,
			Y:      result.Board.Min.Y,
			Width:  result.Board.Dx(),
			Height: result.Board.Dy(),
		},
	})
}
