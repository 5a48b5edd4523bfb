package linkedin

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/job-scout/internal/config"
)

const (
	baseURL        = "https://www.linkedin.com"
	resultsPerPage = 25
)

// workplaceTypeCodes maps user-facing workplace values to the f_WT URL codes.
var workplaceTypeCodes = map[string]string{
	"remote":  "2",
	"hybrid":  "3",
	"onsite":  "1",
	"on-site": "1",
}

// experienceLevelCodes maps experience values to the f_E URL codes.
var experienceLevelCodes = map[string]string{
	"internship": "1",
	"entry":      "2",
	"associate":  "3",
	"mid-senior": "4",
	"senior":     "4",
	"director":   "5",
	"executive":  "6",
}

// BuildSearchURL builds a jobs search URL for a keyword, filters, and a
// zero-based page number. Page 0 omits the start parameter.
func BuildSearchURL(keyword string, filters config.SearchFilters, page int) string {
	params := url.Values{}
	params.Set("keywords", keyword)
	params.Set("sortBy", "DD")

	if filters.GeoID != nil {
		params.Set("geoId", strconv.FormatInt(*filters.GeoID, 10))
	}
	if filters.EasyApplyOnly {
		params.Set("f_AL", "true")
	}
	if codes := mapFilterValues(filters.WorkplaceType, workplaceTypeCodes, "workplace_type"); len(codes) > 0 {
		params.Set("f_WT", strings.Join(codes, ","))
	}
	if codes := mapFilterValues(filters.ExperienceLevel, experienceLevelCodes, "experience_level"); len(codes) > 0 {
		params.Set("f_E", strings.Join(codes, ","))
	}
	if page > 0 {
		params.Set("start", strconv.Itoa(page*resultsPerPage))
	}

	return baseURL + "/jobs/search/?" + params.Encode()
}

// BuildJobURL returns the canonical job detail URL for a job ID.
func BuildJobURL(jobID string) string {
	return fmt.Sprintf("%s/jobs/view/%s/", baseURL, jobID)
}

// shouldStopPagination reports whether the page just fetched was the last
// one. LinkedIn serves 25 results per page; fewer means no further pages.
func shouldStopPagination(cardsFound int) bool {
	return cardsFound < resultsPerPage
}

// mapFilterValues maps filter values to URL codes, skipping (and logging)
// unknown values rather than failing the search.
func mapFilterValues(values []string, codes map[string]string, field string) []string {
	var out []string
	for _, v := range values {
		code, ok := codes[strings.ToLower(strings.TrimSpace(v))]
		if !ok {
			log.Printf("unknown %s value %q, skipping", field, v)
			continue
		}
		out = append(out, code)
	}
	return out
}
