package httpapi

import (
	"fmt"
	"net/http"

	"github.com/bastiwasti/jobsearch/internal/events"
)

type EventsHandler struct {
	Hub *events.Hub
}

func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	// initial ping so the client knows the stream is live
	fmt.Fprintf(w, "event: message\ndata: %s\n\n", events.New(events.TypePing, nil).Encode())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e := <-ch:
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", e.Encode())
			flusher.Flush()
		}
	}
}
