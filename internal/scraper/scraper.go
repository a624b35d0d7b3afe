package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/pfrederiksen/playoff-picture/internal/logger"
	"github.com/pfrederiksen/playoff-picture/internal/page"
)

const (
	UserAgent            = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	Timeout              = 60 * time.Second
	DefaultSettleTimeout = 5 * time.Second
	DefaultPollInterval  = 250 * time.Millisecond
)

// ErrPageUnavailable wraps every navigation, transport or status failure.
var ErrPageUnavailable = errors.New("page unavailable")

var errNotReady = errors.New("readiness marker not present")

// ReadyFunc reports whether a page has settled enough to extract from.
type ReadyFunc func(*page.Document) bool

// Options configures a Scraper. Zero values take the package defaults.
type Options struct {
	Timeout       time.Duration
	UserAgent     string
	SettleTimeout time.Duration
	PollInterval  time.Duration
}

// Scraper fetches pages over HTTP, or from disk for non-URL targets, and
// exposes them as goquery documents or rendered page documents.
type Scraper struct {
	client        *http.Client
	userAgent     string
	settleTimeout time.Duration
	pollInterval  time.Duration
	log           *logger.Logger
}

// New creates a new Scraper instance
func New(opts Options, log *logger.Logger) *Scraper {
	if opts.Timeout <= 0 {
		opts.Timeout = Timeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = UserAgent
	}
	if opts.SettleTimeout <= 0 {
		opts.SettleTimeout = DefaultSettleTimeout
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if log == nil {
		log = logger.Default()
	}
	return &Scraper{
		client: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent:     opts.UserAgent,
		settleTimeout: opts.SettleTimeout,
		pollInterval:  opts.PollInterval,
		log:           log,
	}
}

// IsRemote reports whether target is fetched over HTTP rather than read from disk.
func IsRemote(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

func localPath(target string) string {
	return strings.TrimPrefix(target, "file://")
}

// Document fetches target and parses it with goquery.
func (s *Scraper) Document(ctx context.Context, target string) (*goquery.Document, error) {
	if !IsRemote(target) {
		f, err := os.Open(localPath(target))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageUnavailable, err)
		}
		defer f.Close()
		doc, err := goquery.NewDocumentFromReader(f)
		if err != nil {
			return nil, fmt.Errorf("parsing HTML: %w", err)
		}
		return doc, nil
	}

	body, err := s.get(ctx, target)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// Render loads target as a page document and polls until ready reports
// true or the settle timeout elapses. On timeout the last fetched document
// is returned. A nil ready accepts the first document.
func (s *Scraper) Render(ctx context.Context, target string, ready ReadyFunc) (*page.Document, error) {
	if !IsRemote(target) {
		doc, err := page.Load(localPath(target))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageUnavailable, err)
		}
		if ready != nil && !ready(doc) {
			s.log.Warn("saved page lacks readiness marker", logger.Fields{"target": target})
		}
		return doc, nil
	}

	var last *page.Document
	attempts := 0
	op := func() error {
		attempts++
		doc, err := s.fetchPage(ctx, target)
		if err != nil {
			return backoff.Permanent(err)
		}
		last = doc
		if ready != nil && !ready(doc) {
			return errNotReady
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.pollInterval
	b.MaxInterval = 4 * s.pollInterval
	b.MaxElapsedTime = s.settleTimeout

	err := backoff.Retry(op, backoff.WithContext(b, ctx))
	switch {
	case err == nil:
		return last, nil
	case errors.Is(err, errNotReady) && last != nil:
		s.log.Warn("page did not settle, using last render", logger.Fields{
			"target":   target,
			"attempts": attempts,
		})
		return last, nil
	case ctx.Err() != nil:
		return nil, fmt.Errorf("%w: %v", ErrPageUnavailable, ctx.Err())
	default:
		return nil, err
	}
}

func (s *Scraper) fetchPage(ctx context.Context, target string) (*page.Document, error) {
	body, err := s.get(ctx, target)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return page.FromHTML(body, target)
}

func (s *Scraper) get(ctx context.Context, target string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	start := time.Now()
	resp, err := s.client.Do(req)
	logger.RecordTiming("http.get", time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrPageUnavailable, target, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned status %d", ErrPageUnavailable, target, resp.StatusCode)
	}
	return resp.Body, nil
}
