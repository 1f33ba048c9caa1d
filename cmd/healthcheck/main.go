// Command healthcheck probes the server's health endpoint and exits
// with a non-zero status on failure. Intended as a container
// HEALTHCHECK command.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

func main() {
	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":3000"
	}

	url := fmt.Sprintf("http://localhost%s/api/health", addr)

	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(os.Stderr, "health check error: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "health check failed: status %d\n", resp.StatusCode)
		os.Exit(1)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintf(os.Stderr, "health check failed: invalid JSON response\n")
		os.Exit(1)
	}

	fmt.Printf("health check passed: %s\n", body.Message)
}
