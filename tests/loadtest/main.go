package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numChats     = 50
)

var pages = []string{"", "scheme", "verifications", "operations", "permissions", "custom"}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== Sidebar Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Chats: %d\n\n", numWorkers, testDuration, numChats)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Seeding chats (PUT /admin/api/sidebar/chats) ---")
	if r := doPutChats(); r.err {
		fmt.Printf("FAILED: seeding answered %d\n", r.status)
		return
	}
	if r := doPutSelected(rand.New(rand.NewSource(1))); r.err {
		fmt.Printf("FAILED: selecting answered %d\n", r.status)
		return
	}

	// Phase 2: Navigation reads
	fmt.Println("\n--- Phase 2: Read-only load (sidebar, statistics) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.50:
			return doGetSidebar(rng)
		case r < 0.70:
			return doGetSidebarHTML(rng)
		default:
			return doGetStatistics()
		}
	})

	// Phase 3: Mixed with selection changes and takeover toggles
	fmt.Println("\n--- Phase 3: Mixed load (10% select, 10% takeover, 80% GET) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doPutSelected(rng)
		case r < 0.20:
			return doPutTakeover(rng)
		case r < 0.60:
			return doGetSidebar(rng)
		case r < 0.80:
			return doGetStatistics()
		default:
			return doGetNotifications()
		}
	})
}

// runPhase drives numWorkers workers for duration and prints per-endpoint latencies.
func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	var mu sync.Mutex
	byEndpoint := make(map[string]*stats)
	record := func(r result) {
		mu.Lock()
		defer mu.Unlock()
		s, ok := byEndpoint[r.endpoint]
		if !ok {
			s = &stats{}
			byEndpoint[r.endpoint] = s
		}
		s.count++
		if r.err {
			s.errors++
		}
		s.latencies = append(s.latencies, r.latency)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		seed := rand.Int63() + int64(i)
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed))
			for ctx.Err() == nil {
				record(workFn(rng))
			}
			return nil
		})
	}
	_ = g.Wait()

	printResults(byEndpoint, duration)
}

func printResults(byEndpoint map[string]*stats, duration time.Duration) {
	var total, failed int64

	endpoints := make([]string, 0, len(byEndpoint))
	for ep := range byEndpoint {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	rule := "  " + strings.Repeat("-", 92)
	fmt.Printf("\n  %-24s %8s %6s %10s %10s %10s %10s\n", "Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println(rule)
	for _, ep := range endpoints {
		s := byEndpoint[ep]
		total += s.count
		failed += s.errors
		slices.Sort(s.latencies)
		fmt.Printf("  %-24s %8d %6d %10s %10s %10s %10s\n", ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}
	fmt.Println(rule)
	if total == 0 {
		fmt.Println("  No requests completed")
		return
	}
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		total, failed, float64(failed)/float64(total)*100, float64(total)/duration.Seconds())
}

func do(method, endpoint, url string, body []byte, want int) result {
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func chatID(rng *rand.Rand) int64 {
	return -1000 - int64(rng.Intn(numChats))
}

func doPutChats() result {
	list := make([]map[string]interface{}, numChats)
	for i := range list {
		list[i] = map[string]interface{}{
			"id":         int64(-1000 - i),
			"isTakeOver": false,
			"title":      fmt.Sprintf("chat %d", i),
		}
	}
	data, _ := json.Marshal(list)
	return do(http.MethodPut, "PUT /chats", baseURL+"/admin/api/sidebar/chats", data, http.StatusOK)
}

func doPutSelected(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/admin/api/sidebar/selected?chat_id=%d", baseURL, chatID(rng))
	return do(http.MethodPut, "PUT /selected", url, nil, http.StatusOK)
}

func doPutTakeover(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/admin/api/sidebar/takeover?async=1&value=%t", baseURL, rng.Intn(2) == 1)
	return do(http.MethodPut, "PUT /takeover", url, nil, http.StatusAccepted)
}

func doGetSidebar(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/admin/api/sidebar?path=/admin/chats/%d/%s", baseURL, chatID(rng), pages[rng.Intn(len(pages))])
	return do(http.MethodGet, "GET /sidebar", url, nil, http.StatusOK)
}

func doGetSidebarHTML(rng *rand.Rand) result {
	url := fmt.Sprintf("%s/admin/sidebar?path=/admin/chats/%d/%s", baseURL, chatID(rng), pages[rng.Intn(len(pages))])
	return do(http.MethodGet, "GET /sidebar (html)", url, nil, http.StatusOK)
}

func doGetStatistics() result {
	return do(http.MethodGet, "GET /statistics", baseURL+"/admin/api/sidebar/statistics", nil, http.StatusOK)
}

func doGetNotifications() result {
	return do(http.MethodGet, "GET /notifications", baseURL+"/admin/api/sidebar/notifications", nil, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
