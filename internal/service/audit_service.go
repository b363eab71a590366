package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/Priyanka-kale21/webhack/internal/analyzer"
	"github.com/Priyanka-kale21/webhack/internal/crawler"
	"github.com/Priyanka-kale21/webhack/internal/model"
	"github.com/Priyanka-kale21/webhack/internal/repository"
)

var (
	// ErrURLRequired is returned when the request carries no URL.
	ErrURLRequired = errors.New("url is required")
	// ErrTooManyAudits is returned when every audit slot is taken.
	ErrTooManyAudits = errors.New("too many audits in progress, try again later")
	// ErrHistoryDisabled is returned by history lookups when no database is
	// configured.
	ErrHistoryDisabled = errors.New("audit history is disabled: no database configured")
)

// Crawler is the subset of crawler.Crawler the audit service needs.
type Crawler interface {
	Crawl(ctx context.Context, seed string, maxPages int) (*crawler.Report, error)
}

// RobotsFunc returns the robots.txt rules for the origin of siteURL, or nil.
type RobotsFunc func(ctx context.Context, siteURL string) *robotstxt.RobotsData

// AuditConfig bounds the work a single service instance accepts.
type AuditConfig struct {
	DefaultMaxPages int
	MaxPagesLimit   int
	MaxConcurrent   int
	Timeout         time.Duration
}

// AuditService runs audits and serves stored ones.
type AuditService interface {
	Run(ctx context.Context, req *model.AuditRequest) (*model.AuditResponse, error)
	Get(id string) (*model.AuditResponse, error)
	List(p repository.Pagination) (*model.PaginatedResponse[model.AuditSummaryDTO], error)
}

type auditService struct {
	cfg      AuditConfig
	crawler  Crawler
	analyzer analyzer.Analyzer
	robots   RobotsFunc
	repo     repository.AuditRepository
	slots    *semaphore.Weighted
	log      logrus.FieldLogger
}

// NewAuditService constructs an AuditService. robots and repo may be nil:
// without robots the SEO analyzer assumes everything is allowed, without a
// repo audits are not stored and Get/List return ErrHistoryDisabled.
func NewAuditService(
	cfg AuditConfig,
	c Crawler,
	a analyzer.Analyzer,
	robots RobotsFunc,
	repo repository.AuditRepository,
	log logrus.FieldLogger,
) AuditService {
	if cfg.MaxPagesLimit < 1 {
		cfg.MaxPagesLimit = 1
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &auditService{
		cfg:      cfg,
		crawler:  c,
		analyzer: a,
		robots:   robots,
		repo:     repo,
		slots:    semaphore.NewWeighted(int64(cfg.MaxConcurrent)),
		log:      log,
	}
}

// ClampMaxPages maps a requested page budget onto [1, limit]; a zero or
// negative request means def.
func ClampMaxPages(requested, def, limit int) int {
	n := requested
	if n <= 0 {
		n = def
	}
	if n > limit {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Run crawls the requested site, analyzes every fetched page and returns
// the aggregated report.
func (s *auditService) Run(ctx context.Context, req *model.AuditRequest) (*model.AuditResponse, error) {
	target := strings.TrimSpace(req.URL)
	if target == "" {
		return nil, ErrURLRequired
	}
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	if !s.slots.TryAcquire(1) {
		return nil, ErrTooManyAudits
	}
	defer s.slots.Release(1)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	maxPages := ClampMaxPages(req.MaxPages, s.cfg.DefaultMaxPages, s.cfg.MaxPagesLimit)
	id := uuid.NewString()
	log := s.log.WithFields(logrus.Fields{"audit_id": id, "url": target, "max_pages": maxPages})
	log.Info("audit started")

	var robots *robotstxt.RobotsData
	if s.robots != nil {
		robots = s.robots(ctx, target)
	}

	report, err := s.crawler.Crawl(ctx, target, maxPages)
	if err != nil {
		return nil, err
	}

	pages, err := s.analyze(ctx, report.Pages, robots)
	if err != nil {
		return nil, fmt.Errorf("analyze pages: %w", err)
	}

	resp := &model.AuditResponse{
		ID:         id,
		Input:      model.AuditInput{URL: target, MaxPages: maxPages},
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Summary:    summarize(report, pages),
		Reports:    pages,
		Errors:     crawlErrors(report.Errors),
	}

	if s.repo != nil {
		if err := s.store(resp); err != nil {
			log.WithError(err).Error("failed to store audit")
		}
	}

	log.WithFields(logrus.Fields{
		"pages":  resp.Summary.PagesScanned,
		"errors": resp.Summary.ErrorCount,
	}).Info("audit finished")
	return resp, nil
}

func (s *auditService) store(resp *model.AuditResponse) error {
	row, err := model.AuditFromResponse(resp)
	if err != nil {
		return err
	}
	return s.repo.Create(row)
}

// analyze runs the analyzer set over every page in parallel, keeping crawl
// order in the result.
func (s *auditService) analyze(ctx context.Context, pages []crawler.FetchResult, robots *robotstxt.RobotsData) ([]model.PageReport, error) {
	out := make([]model.PageReport, len(pages))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i := range pages {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("analyzer panic on %s: %v", pages[i].FinalURL, r)
				}
			}()
			out[i] = s.analyzer.Analyze(analyzer.PageFromFetch(pages[i], robots))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a stored audit.
func (s *auditService) Get(id string) (*model.AuditResponse, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	a, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return a.ToResponse()
}

// List returns a page of stored audit summaries, newest first.
func (s *auditService) List(p repository.Pagination) (*model.PaginatedResponse[model.AuditSummaryDTO], error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	audits, err := s.repo.List(p)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}

	data := make([]model.AuditSummaryDTO, 0, len(audits))
	for i := range audits {
		data = append(data, *audits[i].ToSummaryDTO())
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return &model.PaginatedResponse[model.AuditSummaryDTO]{
		Data: data,
		Pagination: model.PaginationMetaDTO{
			Page:       page,
			PageSize:   p.Limit(),
			TotalItems: total,
			TotalPages: p.TotalPages(total),
		},
	}, nil
}

// validateTarget rejects anything that is not an absolute http(s) URL.
func validateTarget(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return crawler.ErrInvalidSeed
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return nil
	default:
		return crawler.ErrInvalidSeed
	}
}

func summarize(report *crawler.Report, pages []model.PageReport) model.AuditSummary {
	sum := model.AuditSummary{
		PagesScanned: len(pages),
		ErrorCount:   len(report.Errors),
	}
	var totalMs float64
	for _, p := range report.Pages {
		sum.TotalBytes += int64(p.SizeBytes)
		totalMs += float64(p.Latency) / float64(time.Millisecond)
	}
	sum.AverageResponseMs = int64(math.Round(totalMs / float64(max(1, len(report.Pages)))))

	if len(pages) > 0 {
		var seo, sec, perf, a11y int
		for _, p := range pages {
			seo += p.SEO.Score
			sec += p.Security.Score
			perf += p.Performance.Score
			a11y += p.Accessibility.Score
		}
		n := float64(len(pages))
		sum.AverageScores = model.AverageScores{
			SEO:           int(math.Round(float64(seo) / n)),
			Security:      int(math.Round(float64(sec) / n)),
			Performance:   int(math.Round(float64(perf) / n)),
			Accessibility: int(math.Round(float64(a11y) / n)),
		}
	}
	return sum
}

func crawlErrors(in []crawler.CrawlError) []model.CrawlErrorDTO {
	out := make([]model.CrawlErrorDTO, 0, len(in))
	for _, e := range in {
		out = append(out, model.CrawlErrorDTO{URL: e.URL, Error: e.Error, Status: e.Status})
	}
	return out
}
