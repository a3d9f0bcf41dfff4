package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
)

// DefaultMaxShow is how many body bytes EchoHandler prints by default
const DefaultMaxShow = 1024

// EchoHandler prints each request and answers 200 OK
type EchoHandler struct {
	mu      sync.Mutex
	out     io.Writer
	maxShow int  // negative prints whole bodies
	format  bool // pretty-print JSON bodies
}

// NewEchoHandler creates a handler printing to out. full disables body
// truncation; format pretty-prints JSON bodies.
func NewEchoHandler(out io.Writer, full, format bool) *EchoHandler {
	maxShow := DefaultMaxShow
	if full {
		maxShow = -1
	}
	return &EchoHandler{out: out, maxShow: maxShow, format: format}
}

// ServeHTTP implements http.Handler
func (h *EchoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*, Content-Type, Authorization")
		w.WriteHeader(http.StatusOK)
		return
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, "Failed to read body", err.Error(), http.StatusBadRequest)
		return
	}
	h.print(r, body)

	message := []byte("OK\n")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", fmt.Sprint(len(message)))
	w.WriteHeader(http.StatusOK)
	w.Write(message)
}

func (h *EchoHandler) print(r *http.Request, body []byte) {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Client: %s\n", r.RemoteAddr)
	fmt.Fprintf(&b, "Request: %s %s %s\n", r.Method, r.URL.RequestURI(), r.Proto)
	fmt.Fprintln(&b, "-- Headers --")
	names := make([]string, 0, len(r.Header))
	for name := range r.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range r.Header[name] {
			fmt.Fprintf(&b, "%s: %s\n", name, v)
		}
	}
	if len(body) > 0 {
		fmt.Fprintln(&b, "-- Body (bytes) --")
		h.writeBody(&b, body, r.Header.Get("Content-Type"))
	} else {
		fmt.Fprintln(&b, "-- No Body --")
	}
	fmt.Fprintln(&b, rule)

	h.mu.Lock()
	defer h.mu.Unlock()
	io.WriteString(h.out, b.String())
}

func (h *EchoHandler) writeBody(b *strings.Builder, body []byte, contentType string) {
	if h.format && strings.HasPrefix(contentType, "application/json") {
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err == nil {
			body = pretty.Bytes()
		}
	}

	shown := body
	if h.maxShow >= 0 && len(body) > h.maxShow {
		shown = body[:h.maxShow]
	}
	b.WriteString(strings.ToValidUTF8(string(shown), "�"))
	b.WriteString("\n")
	if h.maxShow >= 0 && len(body) > h.maxShow {
		fmt.Fprintf(b, "-- %d more bytes not shown --\n", len(body)-h.maxShow)
	}
}
