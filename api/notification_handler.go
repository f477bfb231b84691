package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/vibehub/showcase-backend/errs"
	"github.com/vibehub/showcase-backend/notify"
)

// streamNotifications holds an SSE connection open and forwards the viewer's
// engagement events until the client disconnects
// @Summary Notification stream
// @Tags Engagement
// @Produce text/event-stream
// @Success 200 {string} string "Server-sent event stream"
// @Router /api/notifications/stream [get]
func (h engagementHandler) streamNotifications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			h.responder.WriteError(w, errs.NewInternalError("streaming is not supported"))
			return
		}

		viewerID := ctxViewerID(r.Context())
		events, unsubscribe := h.bus.Subscribe(viewerID)
		defer unsubscribe()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for {
			select {
			case <-r.Context().Done():
				return
			case event, open := <-events:
				if !open {
					return
				}
				if err := h.writeEvent(w, event); err != nil {
					h.logger.Debug().Err(err).Uint("userID", viewerID).Msg("Notification stream closed")
					return
				}
				flusher.Flush()
			}
		}
	}
}

func (h engagementHandler) writeEvent(w http.ResponseWriter, event notify.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
	return err
}
