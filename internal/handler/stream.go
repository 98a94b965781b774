package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/office-seat-reservation/internal/broadcast"
)

// StreamHandler serves the live event feed over Server-Sent Events.
type StreamHandler struct {
	Hub *broadcast.Hub
}

func NewStreamHandler(hub *broadcast.Hub) *StreamHandler {
	return &StreamHandler{Hub: hub}
}

// keepAliveEvery bounds how long an idle connection goes without
// traffic, so proxies between us and the client do not cut it.
const keepAliveEvery = 25 * time.Second

// Stream subscribes the connection to the hub and forwards every
// event as an SSE frame until the client disconnects or the hub
// drops the subscriber for not keeping up.  Events are fire-and-
// forget: a client that connects later resyncs via the seats
// endpoint.
func (h *StreamHandler) Stream(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher, ok := w.Writer.(http.Flusher)
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "streaming unsupported")
	}

	sub := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(sub)

	// Tell the client it is connected before the first real event.
	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepAliveEvery)
	defer ticker.Stop()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case ev, open := <-sub.C:
			if !open {
				// Hub dropped us for falling behind.
				return nil
			}
			payload, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Name, payload)
			flusher.Flush()
		}
	}
}
