package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Exercises a running dashboard instance. Point it at a kiosk-mode
// deployment (credentials in the config) so the browser gate is open;
// otherwise pass -user/-pass and it signs in through the form first.

const (
	numWorkers   = 50
	testDuration = 10 * time.Second
)

var (
	baseURL  = flag.String("url", "http://127.0.0.1:8080", "dashboard base URL")
	animalID = flag.String("id", "", "animal id to select (default: first in the roster)")
	username = flag.String("user", "", "form login username (empty for kiosk mode)")
	password = flag.String("pass", "", "form login password")
)

var chartKinds = []string{"bars", "ribbon", "deviation"}

var httpClient *http.Client

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
	flag.Parse()

	jar, _ := cookiejar.New(nil)
	httpClient = &http.Client{
		Timeout: 5 * time.Second,
		Jar:     jar,
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

	fmt.Println("=== Zoodash Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Target: %s\n\n", numWorkers, testDuration, *baseURL)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(*baseURL + "/health")
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

	if *username != "" {
		fmt.Print("Signing in... ")
		resp, err := httpClient.PostForm(*baseURL+"/login", url.Values{
			"username": {*username},
			"password": {*password},
		})
		if err != nil {
			fmt.Println("FAILED:", err)
			return
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		if resp.StatusCode != 200 {
			fmt.Println("FAILED: status", resp.StatusCode)
			return
		}
		fmt.Println("OK")
	}

	if *animalID == "" {
		id, err := firstAnimalID()
		if err != nil {
			fmt.Println("Could not pick an animal:", err)
			return
		}
		*animalID = id
	}
	fmt.Printf("Selected animal: %s\n", *animalID)

	// select it so the chart endpoints have a scope to serve
	resp, err := httpClient.Get(*baseURL + "/?id=" + url.QueryEscape(*animalID))
	if err != nil || resp.StatusCode != 200 {
		fmt.Println("Selection failed")
		return
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	fmt.Println("\n--- Phase 1: Page load (GET /) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		return doGetDashboard(rng)
	})

	fmt.Println("\n--- Phase 2: Browser mix (pages, alerts, charts) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.25:
			return doGetDashboard(rng)
		case r < 0.50:
			return doGetAlerts()
		case r < 0.90:
			return doGetChart(rng)
		default:
			return doGetHealth()
		}
	})

	fmt.Println("\n--- Phase 3: Chart-heavy (refresh timers) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.75:
			return doGetChart(rng)
		case r < 0.95:
			return doGetAlerts()
		default:
			return doGetDashboard(rng)
		}
	})
}

func firstAnimalID() (string, error) {
	resp, err := httpClient.Get(*baseURL + "/")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	// pull the first roster link out of the rendered page
	marker := `href="/?id=`
	idx := strings.Index(string(body), marker)
	if idx == -1 {
		return "", fmt.Errorf("no roster links on the page (not signed in?)")
	}
	rest := string(body)[idx+len(marker):]
	end := strings.IndexByte(rest, '"')
	if end == -1 {
		return "", fmt.Errorf("malformed roster link")
	}
	return rest[:end], nil
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func doGetDashboard(rng *rand.Rand) result {
	target := *baseURL + "/"
	if rng.Float64() < 0.3 {
		target += "?id=" + url.QueryEscape(*animalID)
	}
	start := time.Now()
	resp, err := httpClient.Get(target)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetAlerts() result {
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + "/api/alerts")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /api/alerts", 0, lat, true}
	}
	ok := resp.StatusCode == 200
	if ok {
		var alerts []json.RawMessage
		ok = json.NewDecoder(resp.Body).Decode(&alerts) == nil
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /api/alerts", resp.StatusCode, lat, !ok}
}

func doGetChart(rng *rand.Rand) result {
	kind := chartKinds[rng.Intn(len(chartKinds))]
	target := fmt.Sprintf("%s/charts/%s.svg?id=%s", *baseURL, kind, url.QueryEscape(*animalID))
	ep := "GET /charts/" + kind + ".svg"
	start := time.Now()
	resp, err := httpClient.Get(target)
	lat := time.Since(start)
	if err != nil {
		return result{ep, 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{ep, resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetHealth() result {
	start := time.Now()
	resp, err := httpClient.Get(*baseURL + "/health")
	lat := time.Since(start)
	if err != nil {
		return result{"GET /health", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /health", resp.StatusCode, lat, resp.StatusCode != 200}
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
