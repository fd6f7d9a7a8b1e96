package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

const (
	defaultScene = "three-spheres"
	minWidth     = 16
	maxWidth     = 2000
	maxSamples   = 10000
	maxBounces   = 1000
	maxGamma     = 5.0
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string        `json:"scene"`           // Built-in scene name or scene file name
	Width           int           `json:"width"`           // Image width (0 = scene default)
	SamplesPerPixel int           `json:"samplesPerPixel"` // Samples per pixel (0 = scene default)
	MaxBounces      int           `json:"maxBounces"`      // Maximum ray bounces (0 = scene default)
	Gamma           float64       `json:"gamma"`           // Output gamma (0 = scene default)
	Seed            int64         `json:"seed"`            // Random seed
	Format          output.Format `json:"format"`          // Image format for direct renders
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int64   `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	Rows           int     `json:"rows"`
}

// CompleteUpdate is the final SSE event of a streamed render
type CompleteUpdate struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

type renderResult struct {
	frame *core.Frame
	stats renderer.RenderStats
}

var contentTypes = map[output.Format]string{
	output.FormatPPM:  "image/x-portable-pixmap",
	output.FormatPNG:  "image/png",
	output.FormatBMP:  "image/bmp",
	output.FormatTIFF: "image/tiff",
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: defaultScene, Format: output.FormatPNG}

	if sceneName := query.Get("scene"); sceneName != "" {
		req.Scene = sceneName
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "depth", 0, 1, maxBounces); err != nil {
		return nil, err
	}
	if req.Gamma, err = parseFloatParam(query, "gamma", 0, 0, maxGamma); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(query, "seed", 42, 1, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	if format := query.Get("format"); format != "" {
		if req.Format, err = output.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// newRaytracer builds the requested scene with the request's overrides applied
func (s *Server) newRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	sceneObj, err := s.createScene(req.Scene, req.Seed)
	if err != nil {
		return nil, err
	}
	return sceneObj.NewRaytracer(renderer.RenderConfig{
		ImageWidth:      req.Width,
		SamplesPerPixel: req.SamplesPerPixel,
		MaxBounces:      req.MaxBounces,
		Gamma:           req.Gamma,
		Seed:            req.Seed,
	}, logger)
}

// handleRender renders synchronously and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	raytracer, err := s.newRaytracer(req, s.logger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Encode into a buffer so an encoding failure can still become a 500
	var buf bytes.Buffer
	if _, err := raytracer.Render(&buf, req.Format); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", contentTypes[req.Format])
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Printf("Failed to write render response: %v\n", err)
	}
}

// handleRenderStream renders in the background and streams console output via SSE,
// finishing with a "complete" event carrying the PNG
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(renderID, consoleChan, s.logger)

	raytracer, err := s.newRaytracer(req, logger)
	if err != nil {
		s.sendSSEEvent(w, flusher, "error", err.Error())
		return
	}

	startTime := time.Now()
	done := make(chan renderResult, 1)
	go func() {
		frame, stats := raytracer.RenderPass()
		done <- renderResult{frame: frame, stats: stats}
	}()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			// Client went away; the render finishes in the background and is dropped
			return
		case msg := <-consoleChan:
			s.sendConsole(w, flusher, msg)
		case result := <-done:
			for drained := false; !drained; {
				select {
				case msg := <-consoleChan:
					s.sendConsole(w, flusher, msg)
				default:
					drained = true
				}
			}

			imageData, err := encodeBase64PNG(result.frame, raytracer.Config().Gamma)
			if err != nil {
				s.sendSSEEvent(w, flusher, "error", fmt.Sprintf("Render error: %v", err))
				return
			}
			update := CompleteUpdate{
				Width:     result.frame.Width,
				Height:    result.frame.Height,
				ImageData: imageData,
				Stats: Stats{
					TotalPixels:    result.stats.TotalPixels,
					TotalSamples:   int64(result.stats.TotalSamples),
					AverageSamples: result.stats.AverageSamples,
					Rows:           result.stats.Rows,
				},
				ElapsedMs: time.Since(startTime).Milliseconds(),
			}
			data, err := json.Marshal(update)
			if err != nil {
				s.sendSSEEvent(w, flusher, "error", err.Error())
				return
			}
			s.sendSSEEvent(w, flusher, "complete", string(data))
			return
		}
	}
}

func (s *Server) sendConsole(w http.ResponseWriter, flusher http.Flusher, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.sendSSEEvent(w, flusher, "console", string(data))
}

// setSSEHeaders sets the headers required for server-sent events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event, data string) {
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

// encodeBase64PNG converts a frame to base64-encoded PNG
func encodeBase64PNG(frame *core.Frame, gamma float64) (string, error) {
	var buf bytes.Buffer
	if err := output.Encode(&buf, frame, output.FormatPNG, gamma); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
