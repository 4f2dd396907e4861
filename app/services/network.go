package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// IPResolver yields the caller's network identity. The attendance gate uses
// the connection-derived address; PublicIP exists so the client's WiFi banner
// can show the address an external observer sees.
type IPResolver struct {
	// Override substitutes every resolved address, development only.
	Override  string
	LookupURL string
	Client    *http.Client
}

func NewIPResolver(override, lookupURL string) *IPResolver {
	return &IPResolver{
		Override:  override,
		LookupURL: lookupURL,
		Client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CallerIP resolves the address of the current request: the override when
// set, else the first X-Forwarded-For hop, else the remote address.
func (r *IPResolver) CallerIP(forwardedFor, remoteAddr string) string {
	if r.Override != "" {
		return r.Override
	}
	if forwardedFor != "" {
		parts := strings.Split(forwardedFor, ",")
		return strings.TrimSpace(parts[0])
	}
	return remoteAddr
}

// PublicIP asks the configured lookup service (ipify-style JSON body) for
// the server-observed public address.
func (r *IPResolver) PublicIP() (string, error) {
	if r.Override != "" {
		return r.Override, nil
	}

	resp, err := r.Client.Get(r.LookupURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ip lookup returned status %d", resp.StatusCode)
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.IP, nil
}
