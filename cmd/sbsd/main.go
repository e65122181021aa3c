// Command sbsd serves the Spelling Bee solver's HTTP contract: it loads
// configuration from the environment, builds the word index once, and
// serves GET /health and POST /api/solve until the process is killed.
package main

import (
	"log"
	"net/http"

	"github.com/bodul/sbs/wordindex"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("sbsd: invalid configuration: %v", err)
	}

	idx, err := wordindex.BuildFromFile(cfg.DictPath, cfg.CaseSensitive)
	if err != nil {
		log.Fatalf("sbsd: failed to build word index from %s: %v", cfg.DictPath, err)
	}
	log.Printf("sbsd: word index built from %s", cfg.DictPath)

	srv, err := NewServer(cfg, idx)
	if err != nil {
		log.Fatalf("sbsd: failed to start server: %v", err)
	}

	log.Printf("sbsd: listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv); err != nil {
		log.Fatal(err)
	}
}
