// The agent runs next to an RFID reader station. It receives card reads
// over a small local HTTP surface, locates a live backend by port probing
// and forwards each read to the backend scan endpoint.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"ems/backend/internal/pkg/discovery"
	"ems/backend/internal/rfid"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
)

const scanPath = "/api/v1/attendance/scan"

type config struct {
	BackendHost string `conf:"default:localhost"`
	ListenAddr  string `conf:"default::5001"`
	Token       string `conf:"noprint"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := run(); err != nil {
		log.Fatalln("agent error:", err)
	}
}

func run() error {
	var cfg config

	if err := conf.Parse(os.Args[1:], "AGENT", &cfg); err != nil {
		if err == conf.ErrHelpWanted {
			usage, err := conf.Usage("AGENT", &cfg)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return nil
		}
		return errors.Wrap(err, "parsing config")
	}

	forwarder := &forwarder{
		prober: discovery.New(cfg.BackendHost, nil),
		client: &http.Client{Timeout: 10 * time.Second},
		token:  cfg.Token,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/scan", forwarder.handleScan)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Println("agent listening on", cfg.ListenAddr)
	return http.ListenAndServe(cfg.ListenAddr, mux)
}

type forwarder struct {
	prober *discovery.Prober
	client *http.Client
	token  string
}

type scanPayload struct {
	UID string `json:"uid"`
}

func (f *forwarder) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var payload scanPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	// Reject garbage reads before they travel to the backend.
	uid, err := rfid.NormalizeUID(payload.UID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, body, err := f.forward(r.Context(), uid)
	if err != nil {
		log.Println("forward error:", err)
		http.Error(w, "backend unreachable", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// forward posts the scan to the backend. A transport failure invalidates
// the cached base URL and retries once against a freshly probed backend.
func (f *forwarder) forward(ctx context.Context, uid string) (int, []byte, error) {
	status, body, err := f.post(ctx, uid)
	if err == nil {
		return status, body, nil
	}

	f.prober.Invalidate()

	return f.post(ctx, uid)
}

func (f *forwarder) post(ctx context.Context, uid string) (int, []byte, error) {
	base, err := f.prober.Find(ctx)
	if err != nil {
		return 0, nil, err
	}

	payload, err := json.Marshal(scanPayload{UID: uid})
	if err != nil {
		return 0, nil, errors.Wrap(err, "marshaling scan")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+scanPath, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, nil, errors.Wrap(err, "posting scan")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errors.Wrap(err, "reading response")
	}

	return resp.StatusCode, body, nil
}
