package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultUserAgent   = "taxdesk research tool (compliance research)"
	defaultTimeout     = 10 * time.Second
	defaultPoliteDelay = 500 * time.Millisecond
)

// GuidanceResult is one document found on a guidance index page.
type GuidanceResult struct {
	Title      string `json:"title"`
	URL        string `json:"url"`
	Year       int    `json:"year,omitempty"`
	SourceType string `json:"type"`
	Keyword    string `json:"keyword,omitempty"`
}

// Verification records whether a cited document could be located.
type Verification struct {
	Valid      bool   `json:"valid"`
	Citation   string `json:"citation"`
	URL        string `json:"url,omitempty"`
	SourceType string `json:"type,omitempty"`
	Source     string `json:"source,omitempty"`
	Note       string `json:"note,omitempty"`
}

// SectionSearch is the outcome of a free-text search for a code or
// regulation section.
type SectionSearch struct {
	Section   string           `json:"section"`
	Results   []GuidanceResult `json:"results"`
	SearchURL string           `json:"search_url"`
}

// ClientOptions tune the HTTP behavior shared by the scrapers.
type ClientOptions struct {
	Timeout     time.Duration
	UserAgent   string
	PoliteDelay time.Duration
	Logger      *zap.Logger
}

func (o *ClientOptions) fill() {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	if o.PoliteDelay <= 0 {
		o.PoliteDelay = defaultPoliteDelay
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

// IRSClient fetches Internal Revenue Bulletins, notices and rulings
// from IRS.gov. BaseURL and IRBBase are exported so tests can point the
// client at a local server.
type IRSClient struct {
	BaseURL string
	IRBBase string

	httpc       *http.Client
	userAgent   string
	politeDelay time.Duration
	log         *zap.Logger
}

func NewIRSClient(opts ClientOptions) *IRSClient {
	opts.fill()
	return &IRSClient{
		BaseURL:     "https://www.irs.gov",
		IRBBase:     "https://www.irs.gov/irb",
		httpc:       &http.Client{Timeout: opts.Timeout},
		userAgent:   opts.UserAgent,
		politeDelay: opts.PoliteDelay,
		log:         opts.Logger,
	}
}

var guidanceNumberPattern = regexp.MustCompile(`^(\d{4})-(\d+)$`)

// SearchIRB scans the Internal Revenue Bulletin index for a year and
// returns every linked item whose title mentions the search term.
func (c *IRSClient) SearchIRB(ctx context.Context, year int, term string) ([]GuidanceResult, error) {
	indexURL := fmt.Sprintf("%s/%d", c.IRBBase, year)

	resp, err := c.get(ctx, indexURL)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	links, err := collectLinks(resp.Body)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(term)
	var results []GuidanceResult
	for _, l := range links {
		if !strings.Contains(strings.ToLower(l.text), lower) {
			continue
		}
		results = append(results, GuidanceResult{
			Title:      l.text,
			URL:        absoluteURL(c.BaseURL, l.href),
			Year:       year,
			SourceType: detectGuidanceType(l.text),
		})
	}

	c.log.Debug("IRB search complete",
		zap.Int("year", year),
		zap.String("term", term),
		zap.Int("hits", len(results)))
	return results, nil
}

// VerifyNotice checks that a notice number like "2020-69" resolves to a
// published document, first via the direct PDF drop, then via the IRB
// index for its year.
func (c *IRSClient) VerifyNotice(ctx context.Context, number string) (*Verification, error) {
	return c.verifyGuidance(ctx, number, "n", "Notice")
}

// VerifyRevenueRuling checks that a revenue ruling number like
// "2019-01" resolves to a published document.
func (c *IRSClient) VerifyRevenueRuling(ctx context.Context, number string) (*Verification, error) {
	return c.verifyGuidance(ctx, number, "rr", "Revenue Ruling")
}

func (c *IRSClient) verifyGuidance(ctx context.Context, number, pdfPrefix, sourceType string) (*Verification, error) {
	m := guidanceNumberPattern.FindStringSubmatch(number)
	if m == nil {
		return nil, fmt.Errorf("invalid %s number format: %q", strings.ToLower(sourceType), number)
	}

	pdfURL := fmt.Sprintf("%s/pub/irs-drop/%s-%s.pdf",
		c.BaseURL, pdfPrefix, strings.ReplaceAll(number, "-", ""))

	status, err := c.head(ctx, pdfURL)
	if err != nil {
		return nil, err
	}
	if status == http.StatusOK {
		return &Verification{
			Valid:      true,
			Citation:   number,
			URL:        pdfURL,
			SourceType: sourceType,
		}, nil
	}

	var year int
	fmt.Sscanf(m[1], "%d", &year)
	term := sourceType + " " + number
	if sourceType == "Revenue Ruling" {
		term = "Rev. Rul. " + number
	}

	irbResults, err := c.SearchIRB(ctx, year, term)
	if err != nil {
		return nil, err
	}
	if len(irbResults) > 0 {
		return &Verification{
			Valid:      true,
			Citation:   number,
			URL:        irbResults[0].URL,
			SourceType: sourceType,
			Source:     "IRB",
		}, nil
	}

	return &Verification{Valid: false, Citation: number, SourceType: sourceType}, nil
}

// SearchCodeSection runs the IRS.gov site search for an IRC section and
// returns the top five hits.
func (c *IRSClient) SearchCodeSection(ctx context.Context, section string) (*SectionSearch, error) {
	return c.siteSearch(ctx, section, "IRC section "+section, 5)
}

// RegulationInfo runs the IRS.gov site search for a Treasury regulation
// section and returns the top three hits.
func (c *IRSClient) RegulationInfo(ctx context.Context, regSection string) (*SectionSearch, error) {
	return c.siteSearch(ctx, regSection, "Treasury Regulation "+regSection, 3)
}

func (c *IRSClient) siteSearch(ctx context.Context, section, query string, limit int) (*SectionSearch, error) {
	searchURL := c.BaseURL + "/search?" + url.Values{
		"q":     {query},
		"scope": {"tax"},
	}.Encode()

	resp, err := c.get(ctx, searchURL)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	links, err := collectResultLinks(resp.Body, "result")
	if err != nil {
		return nil, err
	}

	results := make([]GuidanceResult, 0, limit)
	for _, l := range links {
		if len(results) == limit {
			break
		}
		results = append(results, GuidanceResult{
			Title:      l.text,
			URL:        absoluteURL(c.BaseURL, l.href),
			SourceType: "Search Result",
		})
	}

	return &SectionSearch{
		Section:   section,
		Results:   results,
		SearchURL: searchURL,
	}, nil
}

// PoliteDelay sleeps between consecutive requests so bulk lookups don't
// hammer the site. Cancels early if ctx is done.
func (c *IRSClient) PoliteDelay(ctx context.Context) error {
	select {
	case <-time.After(c.politeDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *IRSClient) get(ctx context.Context, rawURL string) (*http.Response, error) {
	return doRequest(ctx, c.httpc, http.MethodGet, rawURL, c.userAgent)
}

func (c *IRSClient) head(ctx context.Context, rawURL string) (int, error) {
	resp, err := doRequest(ctx, c.httpc, http.MethodHead, rawURL, c.userAgent)
	if err != nil {
		return 0, err
	}
	closeBody(resp)
	return resp.StatusCode, nil
}

func doRequest(ctx context.Context, httpc *http.Client, method, rawURL, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", rawURL, err)
	}
	if method == http.MethodGet && resp.StatusCode != http.StatusOK {
		closeBody(resp)
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return resp, nil
}

func detectGuidanceType(text string) string {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "notice"):
		return "Notice"
	case strings.Contains(lower, "revenue ruling"), strings.Contains(lower, "rev. rul."):
		return "Revenue Ruling"
	case strings.Contains(lower, "revenue procedure"), strings.Contains(lower, "rev. proc."):
		return "Revenue Procedure"
	case strings.Contains(lower, "announcement"):
		return "Announcement"
	case strings.Contains(lower, "private letter ruling"), strings.Contains(lower, "plr"):
		return "Private Letter Ruling"
	case strings.Contains(lower, "chief counsel advice"), strings.Contains(lower, "cca"):
		return "Chief Counsel Advice"
	default:
		return "Other"
	}
}
