package model

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Audit is a stored audit run. The full response is kept as JSON in Report.
type Audit struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id"`
	URL               string         `gorm:"type:text;not null" json:"url"`
	MaxPages          int            `gorm:"not null" json:"max_pages"`
	PagesScanned      int            `json:"pages_scanned"`
	ErrorCount        int            `json:"error_count"`
	TotalBytes        int64          `json:"total_bytes"`
	AverageResponseMs int64          `json:"average_response_ms"`
	StartedAt         time.Time      `gorm:"not null" json:"started_at"`
	FinishedAt        time.Time      `gorm:"not null" json:"finished_at"`
	Report            string         `gorm:"type:longtext;not null" json:"-"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the name of the table for Audit.
func (Audit) TableName() string {
	return "audits"
}

// AuditFromResponse maps a finished audit onto a row.
func AuditFromResponse(resp *AuditResponse) (*Audit, error) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode audit report: %w", err)
	}
	return &Audit{
		ID:                resp.ID,
		URL:               resp.Input.URL,
		MaxPages:          resp.Input.MaxPages,
		PagesScanned:      resp.Summary.PagesScanned,
		ErrorCount:        resp.Summary.ErrorCount,
		TotalBytes:        resp.Summary.TotalBytes,
		AverageResponseMs: resp.Summary.AverageResponseMs,
		StartedAt:         resp.StartedAt,
		FinishedAt:        resp.FinishedAt,
		Report:            string(raw),
	}, nil
}

// ToResponse decodes the stored report.
func (a *Audit) ToResponse() (*AuditResponse, error) {
	var resp AuditResponse
	if err := json.Unmarshal([]byte(a.Report), &resp); err != nil {
		return nil, fmt.Errorf("decode audit %s: %w", a.ID, err)
	}
	return &resp, nil
}

// ToSummaryDTO converts an Audit row to its list view.
func (a *Audit) ToSummaryDTO() *AuditSummaryDTO {
	return &AuditSummaryDTO{
		ID:                a.ID,
		URL:               a.URL,
		MaxPages:          a.MaxPages,
		PagesScanned:      a.PagesScanned,
		ErrorCount:        a.ErrorCount,
		TotalBytes:        a.TotalBytes,
		AverageResponseMs: a.AverageResponseMs,
		StartedAt:         a.StartedAt,
		FinishedAt:        a.FinishedAt,
		CreatedAt:         a.CreatedAt,
	}
}
