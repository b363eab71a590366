package analyzer

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Priyanka-kale21/webhack/internal/crawler"
	"github.com/Priyanka-kale21/webhack/internal/model"
)

// minHSTSMaxAge is 180 days, the floor commonly required for preload lists.
const minHSTSMaxAge = 180 * 24 * 60 * 60

// AnalyzeSecurityHeaders checks the response headers of a page.
func AnalyzeSecurityHeaders(pageURL string, headers crawler.Headers) model.SectionResult {
	return security(parseURL(pageURL), headers)
}

func security(u *url.URL, headers crawler.Headers) model.SectionResult {
	var f findings
	https := u.Scheme == "https"

	if !https {
		f.add(model.SeverityHigh, "Page is served over plain HTTP",
			"Serve every page over HTTPS and redirect HTTP requests to HTTPS.")
	} else {
		switch hsts := headers.Get("strict-transport-security"); {
		case hsts == "":
			f.add(model.SeverityHigh, "Missing Strict-Transport-Security header",
				"Send Strict-Transport-Security: max-age=31536000; includeSubDomains.")
		case hstsMaxAge(hsts) < minHSTSMaxAge:
			f.add(model.SeverityLow, "Strict-Transport-Security max-age is below 180 days",
				"Raise the HSTS max-age to at least 15552000 seconds.")
		}
	}

	csp := headers.Get("content-security-policy")
	switch {
	case csp == "" && headers.Get("content-security-policy-report-only") != "":
		f.add(model.SeverityLow, "Content-Security-Policy is only in report-only mode",
			"Enforce the policy with a Content-Security-Policy header once reports are clean.")
	case csp == "":
		f.add(model.SeverityMedium, "Missing Content-Security-Policy header",
			"Define a Content-Security-Policy that restricts script, style and frame sources.")
	}

	if headers.Get("x-frame-options") == "" && !strings.Contains(strings.ToLower(csp), "frame-ancestors") {
		f.add(model.SeverityMedium, "Page can be framed by other sites (clickjacking)",
			"Send X-Frame-Options: DENY or a CSP frame-ancestors directive.")
	}

	if !strings.EqualFold(headers.Get("x-content-type-options"), "nosniff") {
		f.add(model.SeverityLow, "Missing X-Content-Type-Options: nosniff",
			"Send X-Content-Type-Options: nosniff to stop MIME type sniffing.")
	}

	if headers.Get("referrer-policy") == "" {
		f.add(model.SeverityLow, "Missing Referrer-Policy header",
			"Send Referrer-Policy: strict-origin-when-cross-origin.")
	}

	if headers.Get("permissions-policy") == "" {
		f.add(model.SeverityInfo, "Missing Permissions-Policy header",
			"Use Permissions-Policy to disable browser features the site does not need.")
	}

	if server := headers.Get("server"); strings.ContainsAny(server, "0123456789") {
		f.add(model.SeverityLow, fmt.Sprintf("Server header discloses version (%s)", server),
			"Remove version details from the Server header.")
	}
	if powered := headers.Get("x-powered-by"); powered != "" {
		f.add(model.SeverityLow, fmt.Sprintf("X-Powered-By header discloses technology (%s)", powered),
			"Remove the X-Powered-By header.")
	}

	insecure, noSameSite := cookieFlags(headers.Values("set-cookie"), https)
	if insecure > 0 {
		f.add(model.SeverityMedium, fmt.Sprintf("%d cookie(s) set without Secure or HttpOnly", insecure),
			"Mark cookies Secure and HttpOnly unless client scripts must read them.")
	}
	if noSameSite > 0 {
		f.add(model.SeverityLow, fmt.Sprintf("%d cookie(s) set without SameSite", noSameSite),
			"Set SameSite=Lax or SameSite=Strict on cookies.")
	}

	return f.result()
}

// hstsMaxAge returns the max-age directive in seconds, or 0.
func hstsMaxAge(v string) int {
	for _, d := range strings.Split(v, ";") {
		k, val, ok := strings.Cut(strings.TrimSpace(d), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "max-age") {
			continue
		}
		n, err := strconv.Atoi(strings.Trim(strings.TrimSpace(val), `"`))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// cookieFlags counts cookies missing Secure (on https) or HttpOnly, and
// cookies missing SameSite.
func cookieFlags(cookies []string, https bool) (insecure, noSameSite int) {
	for _, c := range cookies {
		var secure, httpOnly, sameSite bool
		for _, a := range strings.Split(c, ";")[1:] {
			name, _, _ := strings.Cut(strings.TrimSpace(a), "=")
			switch strings.ToLower(strings.TrimSpace(name)) {
			case "secure":
				secure = true
			case "httponly":
				httpOnly = true
			case "samesite":
				sameSite = true
			}
		}
		if (https && !secure) || !httpOnly {
			insecure++
		}
		if !sameSite {
			noSameSite++
		}
	}
	return insecure, noSameSite
}
