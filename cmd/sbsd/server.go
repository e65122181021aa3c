package main

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/bodul/sbs/apicontract"
	"github.com/bodul/sbs/solver"
	"github.com/bodul/sbs/sse"
	"github.com/bodul/sbs/validator"
	"github.com/bodul/sbs/wordindex"
)

// Server is the HTTP entry point: GET /health and POST /api/solve over a
// WordIndex built once at startup and shared read-only across every
// request.
type Server struct {
	mux     *http.ServeMux
	cfg     *Config
	idx     *wordindex.WordIndex
	cache   *lru.Cache[validator.CacheKey, validator.WordEntry]
	limiter *ipLimiter
}

// NewServer constructs a configured Server. idx must already be built;
// NewServer performs no I/O of its own.
func NewServer(cfg *Config, idx *wordindex.WordIndex) (*Server, error) {
	cache, err := validator.NewCache(cfg.ValidationCacheSize)
	if err != nil {
		return nil, err
	}

	s := &Server{
		mux:     http.NewServeMux(),
		cfg:     cfg,
		idx:     idx,
		cache:   cache,
		limiter: newIPLimiter(cfg.RateLimitPerMinute),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/solve", s.handleSolve)
}

// ServeHTTP sets permissive CORS headers so a browser or mobile shell can
// reach the contract directly, then delegates to the route mux.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.mux.ServeHTTP(w, r)
}

// GET /health — 200 "ok" once the WordIndex is built. Build failures are
// fatal at startup (see main.go), so a running Server always has one.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("X-Sbs-Version", s.cfg.Version)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// POST /api/solve — enumerates candidates, then either validates them
// inline and returns a single JSON summary, or, when the caller requests
// validation and sends Accept: text/event-stream, streams progress and
// result events over SSE as they arrive.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.allow(clientIP(r)) {
		jsonError(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	requestID := uuid.NewString()

	var req apicontract.SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "malformed request body", http.StatusBadRequest)
		return
	}

	cs, err := req.ToConstraintSet()
	if err != nil {
		log.Printf("request=%s rejected: %v", requestID, err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	httpClient := &http.Client{Timeout: s.cfg.ValidatorTimeout}

	variant, err := req.BuildValidator(ctx, httpClient)
	if err != nil {
		log.Printf("request=%s rejected: %v", requestID, err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	candidates := make([]string, 0, 64)
	for word := range solver.Solve(ctx, s.idx, cs) {
		candidates = append(candidates, word)
	}

	if variant == nil {
		writeJSON(w, http.StatusOK, candidates)
		return
	}

	pipeline := validator.NewPipeline(variant, httpClient, s.cache, s.cfg.ValidatorThrottle, s.cfg.ValidatorTimeout)

	if acceptsEventStream(r) {
		sw, ok := sse.NewWriter(w)
		if !ok {
			jsonError(w, "streaming not supported", http.StatusInternalServerError)
			return
		}
		_, runErr := pipeline.Run(ctx, candidates, func(evt validator.Event) {
			if werr := sw.WriteEvent(evt); werr != nil {
				log.Printf("request=%s sse write failed: %v", requestID, werr)
			}
		})
		if runErr != nil {
			log.Printf("request=%s pipeline aborted: %v", requestID, runErr)
		}
		return
	}

	summary, err := pipeline.Run(ctx, candidates, nil)
	if err != nil {
		jsonError(w, "request cancelled", http.StatusRequestTimeout)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func acceptsEventStream(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
