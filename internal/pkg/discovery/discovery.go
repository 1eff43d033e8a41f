// Package discovery locates a live EMS backend by probing a fixed, ordered
// list of local ports. The first base URL whose health endpoint answers is
// cached on the Prober; Invalidate clears it so the next call probes again.
package discovery

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// DefaultPorts is the probe order used by the RFID agent.
var DefaultPorts = []int{5000, 5001, 3001, 3000, 8080}

// ErrNoBackendFound is returned when every port in the list has been
// exhausted without a healthy response.
var ErrNoBackendFound = errors.New("no backend found on any known port")

const (
	healthPath   = "/api/test"
	probeTimeout = 5 * time.Second
)

// Prober finds and caches a working backend base URL. The zero value is not
// usable; construct with New.
type Prober struct {
	host   string
	ports  []int
	client *http.Client

	mu     sync.Mutex
	cached string
}

func New(host string, ports []int) *Prober {
	if host == "" {
		host = "localhost"
	}
	if len(ports) == 0 {
		ports = DefaultPorts
	}
	return &Prober{
		host:   host,
		ports:  ports,
		client: &http.Client{Timeout: probeTimeout},
	}
}

// Find returns the cached base URL if one is known, otherwise probes the
// port list in order and caches the first healthy base URL.
func (p *Prober) Find(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached, nil
	}

	for _, port := range p.ports {
		base := fmt.Sprintf("http://%s:%d", p.host, port)
		if p.probe(ctx, base) {
			p.cached = base
			return base, nil
		}
	}

	return "", ErrNoBackendFound
}

// Invalidate clears the cached base URL. The next Find probes again.
func (p *Prober) Invalidate() {
	p.mu.Lock()
	p.cached = ""
	p.mu.Unlock()
}

func (p *Prober) probe(ctx context.Context, base string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+healthPath, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
