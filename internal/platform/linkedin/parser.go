package linkedin

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/types"
)

// Parser converts search-result card markup into candidates.
//
// IsEasyApply always comes from the search filters, never from the DOM: the
// card markup for the apply button is unreliable, while f_AL filtering
// guarantees every result is easy-apply when the flag is set.
type Parser struct {
	isEasyApply   bool
	workplaceType string
	now           func() time.Time
}

// NewParser builds a parser carrying the filter-derived fields.
func NewParser(filters config.SearchFilters) *Parser {
	return &Parser{
		isEasyApply:   filters.EasyApplyOnly,
		workplaceType: resolveWorkplaceType(filters.WorkplaceType),
		now:           time.Now,
	}
}

// ParseDocument extracts all candidates from a rendered results page.
// Cards that cannot be parsed are skipped, never fatal.
func (p *Parser) ParseDocument(doc *goquery.Document) []types.JobCandidate {
	cards := findFirst(doc.Selection, cardSelectors)
	var out []types.JobCandidate
	cards.Each(func(_ int, card *goquery.Selection) {
		if c, ok := p.parseCard(card); ok {
			out = append(out, c)
		}
	})
	return out
}

// CountCards returns how many result cards the page contains, used for the
// pagination stop check.
func CountCards(doc *goquery.Document) int {
	return findFirst(doc.Selection, cardSelectors).Length()
}

// parseCard parses one card. A card without an extractable job ID is
// dropped; every other field degrades to empty.
func (p *Parser) parseCard(card *goquery.Selection) (types.JobCandidate, bool) {
	externalID := firstAttr(card, jobIDAttr, jobIDAttrFallback)
	if externalID == "" {
		return types.JobCandidate{}, false
	}

	titleLink := findFirst(card, titleLinkSelectors).First()

	return types.JobCandidate{
		ExternalID:    externalID,
		Platform:      "linkedin",
		Title:         parseTitle(card, titleLink),
		Company:       textFallback(card, companySelectors),
		Location:      textFallback(card, locationSelectors),
		URL:           parseURL(titleLink, externalID),
		IsEasyApply:   p.isEasyApply,
		WorkplaceType: p.workplaceType,
		PostedTime:    parsePostedTime(card),
		FoundAt:       p.now().UTC(),
	}, true
}

// parseTitle prefers the <strong> inside the title link, then the link's
// aria-label, then the first line of the link text. The raw link text has a
// leading newline and the title duplicated, so it is the last resort.
func parseTitle(card, titleLink *goquery.Selection) string {
	if strong := card.Find("a span strong").First(); strong.Length() > 0 {
		if text := strings.TrimSpace(strong.Text()); text != "" {
			return text
		}
	}
	if titleLink.Length() > 0 {
		if aria := strings.TrimSpace(titleLink.AttrOr("aria-label", "")); aria != "" {
			return strings.TrimSuffix(aria, " with verification")
		}
		raw := strings.TrimSpace(titleLink.Text())
		if raw != "" {
			first, _, _ := strings.Cut(raw, "\n")
			return strings.TrimSpace(first)
		}
	}
	return ""
}

// parseURL takes the title-link href with tracking params stripped, or the
// canonical job URL when the link is missing.
func parseURL(titleLink *goquery.Selection, jobID string) string {
	href := strings.TrimSpace(titleLink.AttrOr("href", ""))
	if href == "" {
		return BuildJobURL(jobID)
	}
	return cleanURL(href)
}

// parsePostedTime prefers the datetime attribute of a <time> element over
// its display text.
func parsePostedTime(card *goquery.Selection) string {
	el := findFirst(card, postedTimeSelectors).First()
	if el.Length() == 0 {
		return ""
	}
	if dt := strings.TrimSpace(el.AttrOr("datetime", "")); dt != "" {
		return dt
	}
	return strings.TrimSpace(el.Text())
}

// findFirst tries selectors in order and returns the first non-empty match.
func findFirst(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := root.Find(sel); found.Length() > 0 {
			return found
		}
	}
	return root.Find(selectors[len(selectors)-1])
}

// firstAttr returns the first non-empty attribute value among names.
func firstAttr(s *goquery.Selection, names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(s.AttrOr(name, "")); v != "" {
			return v
		}
	}
	return ""
}

// cleanURL strips query and fragment and resolves relative hrefs against
// the site base.
func cleanURL(href string) string {
	if strings.HasPrefix(href, "/") {
		href = baseURL + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// resolveWorkplaceType returns the workplace type only when the filter pins
// exactly one value; with several values the card's type is unknown.
func resolveWorkplaceType(values []string) string {
	if len(values) == 1 {
		return strings.ToLower(strings.TrimSpace(values[0]))
	}
	return ""
}
