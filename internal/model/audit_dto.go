package model

import "time"

// AuditRequest is the payload of POST /api/audit.
type AuditRequest struct {
	URL      string `json:"url" binding:"required" example:"https://example.com"`
	MaxPages int    `json:"maxPages" example:"5"`
}

// AuditInput echoes the effective request parameters.
type AuditInput struct {
	URL      string `json:"url"`
	MaxPages int    `json:"maxPages"`
}

// AverageScores are per-dimension score means across the audited pages.
type AverageScores struct {
	SEO           int `json:"seo"`
	Security      int `json:"security"`
	Performance   int `json:"performance"`
	Accessibility int `json:"accessibility"`
}

// AuditSummary aggregates an audit across pages.
type AuditSummary struct {
	PagesScanned      int           `json:"pagesScanned"`
	TotalBytes        int64         `json:"totalBytes"`
	AverageResponseMs int64         `json:"averageResponseMs"`
	ErrorCount        int           `json:"errorCount"`
	AverageScores     AverageScores `json:"averageScores"`
}

// PageReport holds the four analyzer results for one page.
type PageReport struct {
	URL           string        `json:"url"`
	Status        int           `json:"status"`
	ResponseMs    int64         `json:"responseMs"`
	SizeBytes     int           `json:"sizeBytes"`
	SEO           SectionResult `json:"seo"`
	Security      SectionResult `json:"security"`
	Performance   SectionResult `json:"performance"`
	Accessibility SectionResult `json:"accessibility"`
}

// CrawlErrorDTO describes a URL that could not be fetched or expanded.
type CrawlErrorDTO struct {
	URL    string `json:"url"`
	Error  string `json:"error"`
	Status *int   `json:"status"`
}

// AuditResponse is the full result of an audit.
type AuditResponse struct {
	ID         string          `json:"id"`
	Input      AuditInput      `json:"input"`
	StartedAt  time.Time       `json:"startedAt"`
	FinishedAt time.Time       `json:"finishedAt"`
	Summary    AuditSummary    `json:"summary"`
	Reports    []PageReport    `json:"reports"`
	Errors     []CrawlErrorDTO `json:"errors"`
}

// AuditSummaryDTO is the list view of a stored audit.
type AuditSummaryDTO struct {
	ID                string    `json:"id"`
	URL               string    `json:"url"`
	MaxPages          int       `json:"maxPages"`
	PagesScanned      int       `json:"pagesScanned"`
	ErrorCount        int       `json:"errorCount"`
	TotalBytes        int64     `json:"totalBytes"`
	AverageResponseMs int64     `json:"averageResponseMs"`
	StartedAt         time.Time `json:"startedAt"`
	FinishedAt        time.Time `json:"finishedAt"`
	CreatedAt         time.Time `json:"createdAt"`
}
