// Package linkedin implements the LinkedIn job-board adapter: URL building,
// browser-driven search, and card parsing.
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/types"
)

const (
	maxScrollAttempts = 5
	scrollDelayMin    = 1500 * time.Millisecond
	scrollDelayMax    = 3 * time.Second
	pageDelayMin      = 3 * time.Second
	pageDelayMax      = 7 * time.Second
	snippetMaxLen     = 2000
)

// Adapter drives a headless Chrome session against the jobs search pages.
// One adapter serves all searches in a run; each Search call opens a fresh
// browser context.
type Adapter struct {
	cfg config.BrowserConfig
}

// New builds an adapter from the browser settings.
func New(cfg config.BrowserConfig) *Adapter {
	return &Adapter{cfg: cfg}
}

// PlatformID implements platform.Adapter.
func (a *Adapter) PlatformID() string { return "linkedin" }

// Search runs one keyword search, paginating until max_pages or a short
// page. Individual bad cards are skipped inside the parser; a navigation
// failure is fatal for the search.
func (a *Adapter) Search(ctx context.Context, search config.SearchConfig) ([]types.JobCandidate, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", a.cfg.Headless),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	if err := a.loadCookies(browserCtx); err != nil {
		log.Printf("cookie load failed, continuing unauthenticated: %v", err)
	}

	parser := NewParser(search.Filters)
	var all []types.JobCandidate

	for page := 0; page < search.Filters.MaxPages; page++ {
		pageURL := BuildSearchURL(search.Keyword, search.Filters, page)
		log.Printf("navigating to page %d: %s", page, pageURL)

		html, err := a.renderResultsPage(browserCtx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to load results page %d: %w", page, err)
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("failed to parse results page %d: %w", page, err)
		}

		cards := CountCards(doc)
		candidates := parser.ParseDocument(doc)
		all = append(all, candidates...)
		log.Printf("page %d: %d cards, %d candidates parsed", page, cards, len(candidates))

		if shouldStopPagination(cards) {
			break
		}
		if page < search.Filters.MaxPages-1 {
			sleepRandom(ctx, pageDelayMin, pageDelayMax)
		}
	}

	if search.FetchDescription {
		a.fetchDescriptions(browserCtx, all)
	}
	return all, nil
}

// renderResultsPage navigates to the URL, scrolls until the card count
// stabilizes so lazily loaded cards materialize, and returns the HTML.
func (a *Adapter) renderResultsPage(ctx context.Context, pageURL string) (string, error) {
	navCtx := ctx
	if a.cfg.NavTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, a.cfg.NavTimeout)
		defer cancel()
	}

	var html string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(scrollUntilStable),
		chromedp.OuterHTML("html", &html),
	)
	return html, err
}

// scrollUntilStable scrolls the results list until the card count stops
// growing. Incremental scrolls, never a single jump to the bottom.
func scrollUntilStable(ctx context.Context) error {
	prev := -1
	for attempt := 0; attempt < maxScrollAttempts; attempt++ {
		count, err := countCardsInPage(ctx)
		if err != nil {
			return err
		}
		if count == prev && attempt > 0 {
			break
		}
		prev = count
		if err := chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil).Do(ctx); err != nil {
			return err
		}
		sleepRandom(ctx, scrollDelayMin, scrollDelayMax)
	}
	return nil
}

func countCardsInPage(ctx context.Context) (int, error) {
	for _, sel := range cardSelectors {
		var count int
		expr := fmt.Sprintf("document.querySelectorAll(%q).length", sel)
		if err := chromedp.Evaluate(expr, &count).Do(ctx); err != nil {
			return 0, err
		}
		if count > 0 {
			return count, nil
		}
	}
	return 0, nil
}

// fetchDescriptions visits each candidate's detail page and fills the
// description snippet. Failures leave the snippet empty and never abort the
// batch.
func (a *Adapter) fetchDescriptions(ctx context.Context, candidates []types.JobCandidate) {
	for i := range candidates {
		text, err := a.fetchDescription(ctx, candidates[i].URL)
		if err != nil {
			log.Printf("description fetch failed for %s: %v", candidates[i].ExternalID, err)
			continue
		}
		candidates[i].DescriptionSnippet = text
		sleepRandom(ctx, pageDelayMin, pageDelayMax)
	}
}

func (a *Adapter) fetchDescription(ctx context.Context, jobURL string) (string, error) {
	navCtx := ctx
	if a.cfg.NavTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, a.cfg.NavTimeout)
		defer cancel()
	}

	var html string
	err := chromedp.Run(navCtx,
		chromedp.Navigate(jobURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	text := textFallback(doc.Selection, descriptionSelectors)
	if len(text) > snippetMaxLen {
		text = text[:snippetMaxLen]
	}
	return text, nil
}

// textFallback tries selectors in order and returns the first non-empty
// trimmed text.
func textFallback(root *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(root.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// browserCookie matches the JSON shape exported by browser cookie
// extensions.
type browserCookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expirationDate"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
}

// loadCookies injects session cookies from the configured JSON file.
// A missing file is not an error; the session just runs unauthenticated.
func (a *Adapter) loadCookies(ctx context.Context) error {
	if a.cfg.CookiesPath == "" {
		return nil
	}
	data, err := os.ReadFile(a.cfg.CookiesPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("cookie file not found: %s", a.cfg.CookiesPath)
			return nil
		}
		return err
	}

	var cookies []browserCookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return fmt.Errorf("cookie file is not a JSON array: %w", err)
	}

	err = chromedp.Run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range cookies {
			action := network.SetCookie(c.Name, c.Value).
				WithDomain(c.Domain).
				WithPath(c.Path).
				WithHTTPOnly(c.HTTPOnly).
				WithSecure(c.Secure)
			if c.Expires > 0 {
				exp := cdp.TimeSinceEpoch(time.Unix(int64(c.Expires), 0))
				action = action.WithExpires(&exp)
			}
			if err := action.Do(ctx); err != nil {
				return fmt.Errorf("failed to set cookie %s: %w", c.Name, err)
			}
		}
		return nil
	}))
	if err != nil {
		return err
	}
	log.Printf("loaded %d cookies from %s", len(cookies), a.cfg.CookiesPath)
	return nil
}

// sleepRandom sleeps a uniformly random duration in [min, max], returning
// early if the context is cancelled. Randomized delays keep request timing
// from looking mechanical.
func sleepRandom(ctx context.Context, min, max time.Duration) {
	if max < min {
		max = min
	}
	d := min + time.Duration(rand.Int63n(int64(max-min)+1))
	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
}
