package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string               `json:"scene"`
	Width           int                  `json:"width"`
	Height          int                  `json:"height"`
	SamplesPerPixel int                  `json:"samplesPerPixel"` // 0 uses the scene's value
	MaxDepth        int                  `json:"maxDepth"`
	Frames          int                  `json:"frames"`
	VFov            float64              `json:"vfov"` // 0 keeps the scene's field of view
	Sampler         renderer.SamplerKind `json:"sampler"`
	ToneMap         renderer.ToneMap     `json:"toneMap"`
}

// ProgressUpdate is a preview image sent via SSE
type ProgressUpdate struct {
	RenderID    string `json:"renderId"`
	Frame       int    `json:"frame"`
	TotalFrames int    `json:"totalFrames"`
	Received    int    `json:"received"`
	Expected    int    `json:"expected"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	IsComplete  bool   `json:"isComplete"`
	ElapsedMs   int64  `json:"elapsedMs"`
	Stats       *Stats `json:"stats,omitempty"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	MinSamples     int     `json:"minSamples"`
	MaxSamplesUsed int     `json:"maxSamplesUsed"`
	Frames         int     `json:"frames"`
	Workers        int     `json:"workers"`
	DurationMs     int64   `json:"durationMs"`
	Luminance      float64 `json:"averageLuminance"`
}

// SSEEvent is one event queued for the stream writer
type SSEEvent struct {
	Type string // "console", "progress", "error", "complete"
	Data string // JSON or plain text, no newlines
}

// handleRender streams a progressive render via SSE: a "progress" event at every frame
// boundary, "console" events for renderer log lines, then "complete" or "error".
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	if _, ok := w.(http.Flusher); !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()

	// All writes to w happen on the writer goroutine
	events := make(chan SSEEvent, 64)
	writerDone := make(chan struct{})
	go s.writeSSEEvents(ctx, w, events, writerDone)
	defer func() {
		close(events)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, events, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendEvent(ctx, events, "error", err.Error())
		return
	}

	consoleChan := make(chan ConsoleMessage, 64)
	logger := NewWebLogger(uuid.NewString(), consoleChan, s.logger)
	consoleDone := make(chan struct{})
	go s.streamConsoleMessages(ctx, consoleChan, events, consoleDone)

	config := s.renderConfig(req)
	startTime := time.Now()
	result, err := renderer.NewRenderer(config, logger).Render(ctx, sceneObj.Setup(), func(p renderer.Preview) {
		update := ProgressUpdate{
			RenderID:    logger.RenderID(),
			Frame:       p.Frame,
			TotalFrames: config.Frames,
			Received:    p.Received,
			Expected:    p.Expected,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}
		s.sendProgress(ctx, events, update, p.Image)
	})

	// Render has returned, so no worker can log any more
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.sendEvent(ctx, events, "error", fmt.Sprintf("Render error: %v", err))
		return
	}

	stats := toStats(result.Stats)
	s.sendProgress(ctx, events, ProgressUpdate{
		RenderID:    logger.RenderID(),
		Frame:       config.Frames,
		TotalFrames: config.Frames,
		Received:    result.Stats.TotalSamples,
		Expected:    result.Stats.TotalSamples,
		IsComplete:  true,
		ElapsedMs:   time.Since(startTime).Milliseconds(),
		Stats:       &stats,
	}, result.Image)

	complete, _ := json.Marshal(map[string]any{"renderId": logger.RenderID(), "stats": stats})
	s.sendEvent(ctx, events, "complete", string(complete))
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: "default"}
	if name := query.Get("scene"); name != "" {
		req.Scene = name
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", s.defaults.Width, 8, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", s.defaults.Height, 8, 2000); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "samplesPerPixel", 0, 0, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", s.defaults.MaxDepth, 0, 1000); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(query, "frames", max(s.defaults.Frames, 1), 1, 360); err != nil {
		return nil, err
	}
	if req.VFov, err = parseFloatParam(query, "vfov", 0, 1, 179); err != nil {
		return nil, err
	}

	req.Sampler = s.defaults.Sampler
	switch sampler := renderer.SamplerKind(query.Get("sampler")); sampler {
	case "":
	case renderer.SamplerUniform, renderer.SamplerBlueNoise:
		req.Sampler = sampler
	default:
		return nil, fmt.Errorf("unknown sampler %q", sampler)
	}

	req.ToneMap = s.defaults.Color.ToneMap
	if name := query.Get("toneMap"); name != "" {
		if req.ToneMap, err = renderer.ParseToneMap(name); err != nil {
			return nil, err
		}
	}

	if req.Width*req.Height*max(req.SamplesPerPixel, 1)*req.Frames > 800*600*100 {
		s.logger.Printf("Render warning: %dx%d with %d frame(s) may render slowly\n", req.Width, req.Height, req.Frames)
	}
	return req, nil
}

// createScene builds the requested scene. Only built-in scenes and files from the
// scenes directory are accepted, never arbitrary paths.
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	if !slices.Contains(scene.Names(), req.Scene) {
		files, err := scene.ListFileScenes(s.scenesDir)
		if err != nil {
			return nil, err
		}
		if !slices.ContainsFunc(files, func(info scene.SceneInfo) bool { return info.ID == req.Scene }) {
			return nil, fmt.Errorf("unknown scene: %s", req.Scene)
		}
	}

	return scene.Create(req.Scene, renderer.CameraConfig{
		AspectRatio: float64(req.Width) / float64(req.Height),
		VFov:        req.VFov,
	})
}

// renderConfig applies the request to the server's base configuration
func (s *Server) renderConfig(req *RenderRequest) renderer.Config {
	config := s.defaults
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.SamplesPerPixel
	config.MaxDepth = req.MaxDepth
	config.Frames = req.Frames
	config.PreviewEveryFrame = true
	config.Sampler = req.Sampler
	config.Color.ToneMap = req.ToneMap
	return config
}

// writeSSEEvents writes queued events until the channel is closed. After the client
// disconnects events are drained without writing.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, events <-chan SSEEvent, done chan<- struct{}) {
	defer close(done)
	flusher := w.(http.Flusher)

	for event := range events {
		if ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		flusher.Flush()
	}
}

// streamConsoleMessages forwards renderer log lines until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- SSEEvent, done chan<- struct{}) {
	defer close(done)
	for msg := range consoleChan {
		data, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		s.sendEvent(ctx, events, "console", string(data))
	}
}

// sendEvent queues an event unless the client has gone away
func (s *Server) sendEvent(ctx context.Context, events chan<- SSEEvent, eventType, data string) {
	select {
	case events <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}

// sendProgress encodes img into update and queues it
func (s *Server) sendProgress(ctx context.Context, events chan<- SSEEvent, update ProgressUpdate, img image.Image) {
	imageData, err := imageToBase64PNG(img)
	if err != nil {
		s.sendEvent(ctx, events, "error", fmt.Sprintf("failed to encode image: %v", err))
		return
	}
	update.ImageData = imageData

	data, err := json.Marshal(update)
	if err != nil {
		s.sendEvent(ctx, events, "error", fmt.Sprintf("failed to encode update: %v", err))
		return
	}
	s.sendEvent(ctx, events, "progress", string(data))
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func toStats(stats renderer.RenderStats) Stats {
	return Stats{
		TotalPixels:    stats.TotalPixels,
		TotalSamples:   stats.TotalSamples,
		AverageSamples: stats.AverageSamples,
		MinSamples:     stats.MinSamples,
		MaxSamplesUsed: stats.MaxSamplesUsed,
		Frames:         stats.Frames,
		Workers:        stats.Workers,
		DurationMs:     stats.Duration.Milliseconds(),
		Luminance:      stats.AverageLuminance,
	}
}
