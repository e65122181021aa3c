// Package sse frames the streaming endpoint's server-sent events: one
// `data: <json>\n\n` line per validator.Event, flushed immediately. It is
// adapted from a multi-subscriber broadcaster down to a single writer,
// because a solve request streams only to the caller that made it — there
// is no pub/sub registry to maintain.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bodul/sbs/validator"
)

// Writer streams validator.Events to one HTTP response as they occur.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter prepares w for event-stream output and returns a Writer, or
// false if w does not support flushing (streaming is unavailable on this
// response). Headers are written and flushed immediately so the client
// sees the stream open before the first event arrives.
func NewWriter(w http.ResponseWriter) (*Writer, bool) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, false
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Writer{w: w, flusher: flusher}, true
}

// WriteEvent marshals evt and writes it as one SSE frame, flushing
// immediately so the caller observes it without buffering delay.
func (sw *Writer) WriteEvent(evt validator.Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(sw.w, "data: %s\n\n", body); err != nil {
		return err
	}
	sw.flusher.Flush()
	return nil
}
