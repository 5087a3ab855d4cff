package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/mdns"
)

// DiscoveryAddress is the Philips Hue cloud discovery endpoint (NUPNP)
const DiscoveryAddress = "https://discovery.meethue.com"

// DiscoveredBridge represents a Hue bridge found during discovery
type DiscoveredBridge struct {
	// Unique bridge identifier
	ID string
	// Base URL derived from the reported address and port
	URL string
}

// Bridge converts the discovery result into a Bridge
func (d DiscoveredBridge) Bridge() *Bridge {
	return NewBridge(d.URL)
}

// Discoverer finds Hue bridges
type Discoverer interface {
	Discover(ctx context.Context) ([]DiscoveredBridge, error)
}

// DiscoverOne returns the first bridge d finds, in the order the discovery
// source reported them, or ErrNoBridgeFound
func DiscoverOne(ctx context.Context, d Discoverer) (DiscoveredBridge, error) {
	bridges, err := d.Discover(ctx)
	if err != nil {
		return DiscoveredBridge{}, err
	}
	if len(bridges) == 0 {
		return DiscoveredBridge{}, ErrNoBridgeFound
	}
	return bridges[0], nil
}

// bridgeURL maps an address and port to a base URL. Port 443 is the
// bridge's TLS listener; anything else is plain HTTP with an explicit port.
func bridgeURL(ip string, port int) string {
	if port == 443 {
		return "https://" + ip
	}
	return "http://" + ip + ":" + strconv.Itoa(port)
}

// nupnpResponse represents the response from Hue cloud discovery
type nupnpResponse struct {
	ID                string `json:"id"`
	InternalIPAddress string `json:"internalipaddress"`
	Port              int    `json:"port"`
}

// CloudDiscovery discovers bridges through the Hue cloud service.
//
// The cloud endpoint is rate limited: discover once, then store the bridge
// URL and reuse it.
type CloudDiscovery struct {
	// Endpoint defaults to DiscoveryAddress
	Endpoint string
	// Client defaults to NewHTTPClient()
	Client *http.Client
}

// Discover queries the cloud endpoint
func (c CloudDiscovery) Discover(ctx context.Context) ([]DiscoveredBridge, error) {
	endpoint := c.Endpoint
	if endpoint == "" {
		endpoint = DiscoveryAddress
	}
	client := c.Client
	if client == nil {
		client = NewHTTPClient()
	}

	var results []nupnpResponse
	if err := getJSON(ctx, client, endpoint, &results); err != nil {
		return nil, err
	}

	bridges := make([]DiscoveredBridge, len(results))
	for i, r := range results {
		bridges[i] = DiscoveredBridge{
			ID:  r.ID,
			URL: bridgeURL(r.InternalIPAddress, r.Port),
		}
	}

	return bridges, nil
}

// MDNSDiscovery discovers bridges on the local network using mDNS
type MDNSDiscovery struct {
	// Timeout bounds the query; defaults to 3 seconds
	Timeout time.Duration
}

// Discover runs a _hue._tcp query
func (m MDNSDiscovery) Discover(ctx context.Context) ([]DiscoveredBridge, error) {
	timeout := m.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var bridges []DiscoveredBridge
	var mu sync.Mutex
	done := make(chan struct{})

	entriesCh := make(chan *mdns.ServiceEntry, 10)

	go func() {
		defer close(done)
		for entry := range entriesCh {
			if entry.AddrV4 == nil {
				continue
			}
			bridge := DiscoveredBridge{
				URL: bridgeURL(entry.AddrV4.String(), entry.Port),
			}
			for _, txt := range entry.InfoFields {
				if id, ok := strings.CutPrefix(txt, "bridgeid="); ok {
					bridge.ID = id
				}
			}

			mu.Lock()
			bridges = append(bridges, bridge)
			mu.Unlock()
		}
	}()

	params := mdns.DefaultParams("_hue._tcp")
	params.Entries = entriesCh
	params.Timeout = timeout
	params.DisableIPv6 = true

	err := mdns.Query(params)
	close(entriesCh)
	<-done

	if err != nil {
		return bridges, fmt.Errorf("mDNS query failed: %w", err)
	}

	return bridges, nil
}

// DiscoverAll runs every discoverer concurrently and merges the results,
// keeping the first entry seen per bridge id (or URL when the id is unknown).
// An error is returned only when no discoverer found anything.
func DiscoverAll(ctx context.Context, discoverers ...Discoverer) ([]DiscoveredBridge, error) {
	type result struct {
		bridges []DiscoveredBridge
		err     error
	}

	results := make([]result, len(discoverers))
	var wg sync.WaitGroup
	for i, d := range discoverers {
		wg.Add(1)
		go func(i int, d Discoverer) {
			defer wg.Done()
			bridges, err := d.Discover(ctx)
			results[i] = result{bridges: bridges, err: err}
		}(i, d)
	}
	wg.Wait()

	var allBridges []DiscoveredBridge
	seen := make(map[string]bool)
	var lastErr error

	for _, r := range results {
		if r.err != nil {
			lastErr = r.err
		}
		for _, b := range r.bridges {
			key := strings.ToLower(b.ID)
			if key == "" {
				key = b.URL
			}
			if !seen[key] {
				seen[key] = true
				allBridges = append(allBridges, b)
			}
		}
	}

	if len(allBridges) == 0 && lastErr != nil {
		return nil, lastErr
	}

	return allBridges, nil
}
