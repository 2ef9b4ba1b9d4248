// Package stream serves point clouds to browser clients over websockets,
// revealing a bounded batch of points per tick.
package stream

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/soypat/heart"
	"github.com/soypat/heart/glsdf3/glbuild"
	"github.com/soypat/heart/render"
)

// closeWait bounds how long the server waits for the client to
// acknowledge the close message.
const closeWait = time.Second

var errClientGone = errors.New("client closed connection")

// Header is the first (text) message of a stream. Every following
// binary message holds up to Batch points as little endian float32 x,y,z.
type Header struct {
	Total int `json:"total"`
	Batch int `json:"batch"`
}

// Server streams a shared, read-only cloud. Each connection gets its own
// reveal cursor.
type Server struct {
	cloud    heart.Cloud
	batch    int
	interval time.Duration
	logger   *log.Logger
	upgrader websocket.Upgrader
}

// NewServer returns a server revealing batch points of c every interval.
// An interval <= 0 sends batches back to back. A nil logger uses log.Default().
func NewServer(c heart.Cloud, batch int, interval time.Duration, logger *log.Logger) *Server {
	if batch < 1 {
		batch = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		cloud:    c,
		batch:    batch,
		interval: interval,
		logger:   logger,
	}
}

// AllowOrigins lets pages served from other origins open streams.
func (s *Server) AllowOrigins() {
	s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
}

// ServeHTTP upgrades the request to a websocket and streams the cloud.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Println("upgrade:", err)
		return
	}
	defer conn.Close()
	// reader: handles control frames and notices when the client leaves.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	start := time.Now()
	err = s.stream(conn, done)
	if err != nil {
		s.logger.Printf("stream to %s: %v", r.RemoteAddr, err)
		return
	}
	select {
	case <-done:
	case <-time.After(closeWait):
	}
	s.logger.Printf("streamed %d points to %s in %s", len(s.cloud), r.RemoteAddr, time.Since(start).Round(time.Millisecond))
}

func (s *Server) stream(conn *websocket.Conn, done <-chan struct{}) error {
	rv := render.NewRevealer(s.cloud, s.batch)
	header, err := json.Marshal(Header{Total: rv.Len(), Batch: s.batch})
	if err != nil {
		return err
	}
	if err = conn.WriteMessage(websocket.TextMessage, header); err != nil {
		return err
	}
	var tick <-chan time.Time
	if s.interval > 0 {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	var buf []byte
	for !rv.Done() {
		if tick != nil {
			select {
			case <-done:
				return errClientGone
			case <-tick:
			}
		} else {
			select {
			case <-done:
				return errClientGone
			default:
			}
		}
		buf = render.AppendPoints(buf[:0], rv.Tick())
		if err = conn.WriteMessage(websocket.BinaryMessage, buf); err != nil {
			return err
		}
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "cloud complete")
	return conn.WriteMessage(websocket.CloseMessage, msg)
}

// PLYHandler serves c as a binary PLY file.
func PLYHandler(c heart.Cloud) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if len(c) == 0 {
			http.Error(w, "empty point cloud", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		if r.Method == http.MethodHead {
			return
		}
		if err := render.WritePLY(w, c); err != nil {
			log.Println("write ply:", err)
		}
	})
}

// ShaderHandler serves the GLSL program of s, with a float sdf(vec3 p) entry
// point, so clients can shade the surface they receive points of.
func ShaderHandler(s glbuild.Shader3D) http.Handler {
	var src bytes.Buffer
	_, err := glbuild.WriteProgram(&src, s, nil)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err != nil {
			http.Error(w, "shader generation: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if r.Method == http.MethodHead {
			return
		}
		w.Write(src.Bytes())
	})
}
