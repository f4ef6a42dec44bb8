package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"itemsvc/internal/events"
	"itemsvc/internal/model"
)

// Events streams collection changes as server-sent events. The optional
// "kind" query narrows the stream to "items" or "users".
func (h *Handler) Events(c *gin.Context) {
	kind := c.Query("kind")
	if kind != "" && kind != model.KindItems && kind != model.KindUsers {
		c.String(http.StatusBadRequest, `kind must be "items" or "users"`)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		h.log.Error("streaming unsupported")
		c.String(http.StatusInternalServerError, "streaming unsupported")
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	flusher.Flush()

	client := &events.Client{
		Kind: kind,
		Ch:   make(chan model.Event, 16),
	}
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	interval := h.cfg.EventsHeartbeat
	if interval <= 0 {
		interval = 15 * time.Second
	}
	heartbeat := time.NewTicker(interval)
	defer heartbeat.Stop()

	var seq int64
	for {
		select {
		case <-c.Request.Context().Done():
			return
		case <-heartbeat.C:
			if _, err := fmt.Fprint(c.Writer, ": ping\n\n"); err != nil {
				h.log.Debug("heartbeat write failed", zap.Error(err))
				return
			}
			flusher.Flush()
		case event, ok := <-client.Ch:
			if !ok {
				return
			}
			seq++
			if err := writeEvent(c.Writer, seq, event); err != nil {
				h.log.Debug("write event failed", zap.String("type", event.Type), zap.Error(err))
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, seq int64, event model.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", seq, event.Type, payload)
	return err
}
