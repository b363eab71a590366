package analyzer

import (
	"context"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"

	"github.com/Priyanka-kale21/webhack/internal/crawler"
)

// FetchRobots downloads and parses robots.txt for the origin of siteURL.
// It returns nil when the file is unreachable or unparsable, which the SEO
// analyzer treats as "everything allowed". The crawl itself never consults
// robots.txt; the result only feeds the SEO report.
func FetchRobots(ctx context.Context, c *http.Client, siteURL string) *robotstxt.RobotsData {
	u, err := url.Parse(siteURL)
	if err != nil || u.Host == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.Scheme+"://"+u.Host+"/robots.txt", nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", crawler.UserAgent)

	resp, err := c.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil
	}
	return data
}
