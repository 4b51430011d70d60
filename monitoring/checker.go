// monitoring/checker.go
package monitoring

import (
	"context"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// Website is one monitored government site.
type Website struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// WebsiteStatus is the result of one availability check.
type WebsiteStatus struct {
	Website
	Status         string    `json:"status"`
	ResponseTimeMs int64     `json:"responseTime,omitempty"`
	LastChecked    time.Time `json:"lastChecked"`
}

const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// DefaultWebsites is the fixed list of monitored Indonesian government sites.
var DefaultWebsites = []Website{
	{ID: "1", Name: "Satu Data Indonesia", URL: "https://data.go.id", Category: "Data & Statistik"},
	{ID: "2", Name: "DPR RI", URL: "https://dpr.go.id", Category: "Legislatif"},
	{ID: "3", Name: "POLRI", URL: "https://polri.go.id", Category: "Keamanan"},
	{ID: "4", Name: "Kementerian Keuangan", URL: "https://kemenkeu.go.id", Category: "Ekonomi"},
	{ID: "5", Name: "Kementerian Kesehatan", URL: "https://kemkes.go.id", Category: "Kesehatan"},
	{ID: "6", Name: "Kementerian Pendidikan", URL: "https://kemdikbud.go.id", Category: "Pendidikan"},
	{ID: "7", Name: "BPS", URL: "https://bps.go.id", Category: "Data & Statistik"},
	{ID: "8", Name: "Bank Indonesia", URL: "https://bi.go.id", Category: "Ekonomi"},
	{ID: "9", Name: "Kementerian Dalam Negeri", URL: "https://kemendagri.go.id", Category: "Pemerintahan"},
	{ID: "10", Name: "Kementerian Luar Negeri", URL: "https://kemlu.go.id", Category: "Pemerintahan"},
}

// Checker runs availability checks against a fixed site list. It has no
// dependency on the event core.
type Checker struct {
	client   *resty.Client
	websites []Website
}

func NewChecker(websites []Website) *Checker {
	client := resty.New().
		SetTimeout(10*time.Second).
		SetHeader("User-Agent", "TungguMonitoring/1.0")

	return &Checker{
		client:   client,
		websites: websites,
	}
}

// CheckAll probes every site concurrently and returns one status per site,
// in the order of the configured list.
func (c *Checker) CheckAll(ctx context.Context) []WebsiteStatus {
	results := make([]WebsiteStatus, len(c.websites))

	var wg sync.WaitGroup
	for i, site := range c.websites {
		wg.Add(1)
		go func(i int, site Website) {
			defer wg.Done()
			results[i] = c.check(ctx, site)
		}(i, site)
	}
	wg.Wait()

	return results
}

// check issues a HEAD request so only headers are transferred.
func (c *Checker) check(ctx context.Context, site Website) WebsiteStatus {
	status := WebsiteStatus{
		Website:     site,
		Status:      StatusOffline,
		LastChecked: time.Now().UTC(),
	}

	start := time.Now()
	resp, err := c.client.R().SetContext(ctx).Head(site.URL)
	if err != nil || resp.IsError() {
		return status
	}

	status.Status = StatusOnline
	status.ResponseTimeMs = time.Since(start).Milliseconds()
	return status
}

// Summarize condenses per-site results into the dashboard's headline numbers.
func Summarize(results []WebsiteStatus) (online, offline int) {
	for _, r := range results {
		if r.Status == StatusOnline {
			online++
		} else {
			offline++
		}
	}
	return online, offline
}
