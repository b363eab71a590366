package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyanka-kale21/webhack/internal/model"
)

func sampleResponse() *model.AuditResponse {
	started := time.Date(2025, 7, 9, 12, 0, 0, 0, time.UTC)
	status := 503
	return &model.AuditResponse{
		ID:         "0b6c1f4e-1111-4c3a-9d7e-5a0c2f1e9b11",
		Input:      model.AuditInput{URL: "https://example.com", MaxPages: 5},
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		Summary: model.AuditSummary{
			PagesScanned:      1,
			TotalBytes:        2048,
			AverageResponseMs: 120,
			ErrorCount:        1,
		},
		Reports: []model.PageReport{{
			URL: "https://example.com/",
			SEO: model.NewSectionResult([]model.Issue{{Severity: model.SeverityLow, Message: "Missing canonical link"}}, nil),
		}},
		Errors: []model.CrawlErrorDTO{{URL: "https://example.com/down", Error: "bad gateway", Status: &status}},
	}
}

func TestAuditFromResponse(t *testing.T) {
	resp := sampleResponse()

	row, err := model.AuditFromResponse(resp)
	require.NoError(t, err)

	t.Run("Columns", func(t *testing.T) {
		assert.Equal(t, resp.ID, row.ID)
		assert.Equal(t, "https://example.com", row.URL)
		assert.Equal(t, 5, row.MaxPages)
		assert.Equal(t, 1, row.PagesScanned)
		assert.Equal(t, 1, row.ErrorCount)
		assert.Equal(t, int64(2048), row.TotalBytes)
		assert.Equal(t, int64(120), row.AverageResponseMs)
		assert.True(t, row.StartedAt.Equal(resp.StartedAt))
	})

	t.Run("Report Round Trip", func(t *testing.T) {
		back, err := row.ToResponse()
		require.NoError(t, err)
		assert.Equal(t, resp.Reports[0].SEO, back.Reports[0].SEO)
		require.NotNil(t, back.Errors[0].Status)
		assert.Equal(t, 503, *back.Errors[0].Status)
	})

	t.Run("Corrupt Report", func(t *testing.T) {
		_, err := (&model.Audit{ID: "x", Report: "{"}).ToResponse()
		assert.Error(t, err)
	})
}

func TestAuditToSummaryDTO(t *testing.T) {
	row, err := model.AuditFromResponse(sampleResponse())
	require.NoError(t, err)
	row.CreatedAt = time.Date(2025, 7, 9, 12, 0, 5, 0, time.UTC)

	dto := row.ToSummaryDTO()
	assert.Equal(t, row.ID, dto.ID)
	assert.Equal(t, row.URL, dto.URL)
	assert.Equal(t, row.PagesScanned, dto.PagesScanned)
	assert.Equal(t, row.CreatedAt, dto.CreatedAt)
	assert.Equal(t, "audits", model.Audit{}.TableName())
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		issues []model.Issue
		want   int
	}{
		{"no issues", nil, 100},
		{"one of each", []model.Issue{
			{Severity: model.SeverityHigh},
			{Severity: model.SeverityMedium},
			{Severity: model.SeverityLow},
			{Severity: model.SeverityInfo},
		}, 35},
		{"floored at zero", []model.Issue{
			{Severity: model.SeverityHigh}, {Severity: model.SeverityHigh},
			{Severity: model.SeverityHigh}, {Severity: model.SeverityHigh},
		}, 0},
		{"unknown severity", []model.Issue{{Severity: "WHATEVER"}}, 95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Score(tt.issues))
		})
	}
}

func TestNewSectionResult(t *testing.T) {
	r := model.NewSectionResult(nil, nil)
	assert.Equal(t, 100, r.Score)
	assert.NotNil(t, r.Issues)
	assert.NotNil(t, r.Recommendations)
}
