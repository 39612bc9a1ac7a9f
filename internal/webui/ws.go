package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"booksearch/internal/logger"
	"booksearch/internal/metrics"
	"booksearch/internal/render"
	"booksearch/internal/search"
)

const (
	writeWait    = 10 * time.Second
	maxFrameSize = 4096
)

type incomingQuery struct {
	Query string `json:"query"`
}

// Frame is pushed to the browser for every View update.
type Frame struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	HTML  string `json:"html,omitempty"`
	Count int    `json:"count,omitempty"`
}

// wsView writes View updates to one connection.
type wsView struct {
	ctx  context.Context
	mu   sync.Mutex
	conn *websocket.Conn
	html *render.HTML
}

func (v *wsView) send(f Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()
	_ = v.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := v.conn.WriteJSON(f); err != nil {
		logger.For(v.ctx).WithError(err).Debug("ws.write.failed")
	}
}

func (v *wsView) SetStatus(text string) {
	v.send(Frame{Type: "status", Text: text})
}

func (v *wsView) RenderList(records []search.BookRecord) {
	list, err := v.html.List(records)
	if err != nil {
		logger.For(v.ctx).WithError(err).Error("render.failed")
		list = ""
	}
	v.send(Frame{Type: "results", HTML: string(list), Count: len(records)})
}

// GET /ws
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.For(r.Context()).WithError(err).Warn("ws.upgrade.failed")
		return
	}
	metrics.WebsocketSessions.Inc()
	defer metrics.WebsocketSessions.Dec()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	view := &wsView{ctx: ctx, conn: conn, html: s.html}
	var wg sync.WaitGroup
	sw := s.newWidget("ws", view)
	defer func() {
		sw.Close()
		wg.Wait()
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxFrameSize)
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var in incomingQuery
		if err := json.Unmarshal(payload, &in); err != nil {
			in.Query = string(payload)
		}
		query := in.Query

		// Reserve the ordering here, on the reader goroutine.
		pending := sw.Begin(ctx)
		wg.Add(1)
		go func() {
			defer wg.Done()
			pending.Run(query)
		}()
	}
}
