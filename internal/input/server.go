package input

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ThatOtherAndrew/Tinsel/internal/logging"
	"github.com/ThatOtherAndrew/Tinsel/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

//go:embed capture.html
var capturePage []byte

const maxMessageSize = 64 << 10

// CaptureOptions are handed to the browser capture page and passed straight
// to MediaPipe Hands. ModelComplexity -1 lets the page pick by viewport width.
type CaptureOptions struct {
	MaxNumHands            int     `json:"maxNumHands"`
	ModelComplexity        int     `json:"modelComplexity"`
	MinDetectionConfidence float64 `json:"minDetectionConfidence"`
	MinTrackingConfidence  float64 `json:"minTrackingConfidence"`
	Width                  int     `json:"width"`
	Height                 int     `json:"height"`
}

var DefaultCaptureOptions = CaptureOptions{
	MaxNumHands:            1,
	ModelComplexity:        -1,
	MinDetectionConfidence: 0.6,
	MinTrackingConfidence:  0.6,
	Width:                  640,
	Height:                 480,
}

// Message is the JSON the capture page sends per processed camera frame.
// It mirrors the MediaPipe Hands results object.
type Message struct {
	MultiHandLandmarks [][]models.Landmark `json:"multiHandLandmarks"`
}

// Server accepts landmark streams over websocket and hands each frame to
// onLandmarks. It also serves the capture page at /.
type Server struct {
	addr        string
	options     CaptureOptions
	onLandmarks func(Frame)
	log         logging.Logger
	upgrader    websocket.Upgrader

	mu       sync.Mutex
	http     *http.Server
	listener net.Listener
	conns    map[uuid.UUID]*websocket.Conn
}

func NewServer(addr string, options CaptureOptions, onLandmarks func(Frame), logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Server{
		addr:        addr,
		options:     options,
		onLandmarks: onLandmarks,
		log:         logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // the page is served from this process, local use only
			},
		},
		conns: make(map[uuid.UUID]*websocket.Conn),
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveCapturePage)
	mux.HandleFunc("/options", s.serveOptions)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start listens on the configured address and serves until Stop.
func (s *Server) Start(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.mu.Lock()
	s.http = srv
	s.listener = ln
	s.mu.Unlock()

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("landmark server stopped: %v", err)
		}
	}()

	s.log.Infof("Landmark server listening on http://%s", ln.Addr())
	return nil
}

// Addr is the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop closes every capture connection and shuts the listener down.
func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.http
	s.http = nil
	for id, conn := range s.conns {
		conn.Close()
		delete(s.conns, id)
	}
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) serveCapturePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(capturePage)
}

func (s *Server) serveOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.options); err != nil {
		s.log.Warnf("failed to write capture options: %v", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warnf("websocket upgrade error: %v", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	id := uuid.New()
	s.mu.Lock()
	s.conns[id] = conn
	s.mu.Unlock()
	s.log.Infof("capture client %s connected from %s", id, r.RemoteAddr)

	defer func() {
		s.mu.Lock()
		delete(s.conns, id)
		s.mu.Unlock()
		conn.Close()
		s.log.Infof("capture client %s disconnected", id)
	}()

	source := id.String()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warnf("capture client %s read error: %v", id, err)
			}
			return
		}

		frame, err := DecodeFrame(data)
		if err != nil {
			s.log.Warnf("capture client %s sent a malformed frame: %v", id, err)
			continue
		}
		frame.Source = source
		if s.onLandmarks != nil {
			s.onLandmarks(frame)
		}
	}
}

// DecodeFrame parses one capture message. Only the first hand is kept.
func DecodeFrame(data []byte) (Frame, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Frame{}, fmt.Errorf("failed to decode landmark message: %w", err)
	}
	frame := Frame{Received: time.Now()}
	if len(msg.MultiHandLandmarks) > 0 {
		frame.Landmarks = msg.MultiHandLandmarks[0]
	}
	return frame, nil
}
