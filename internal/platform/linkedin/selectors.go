package linkedin

// DOM selectors with fallbacks, ordered by stability: data attributes first,
// then aria attributes, then class names. Callers try each in order until
// one matches.

var cardSelectors = []string{
	"li[data-occludable-job-id]",
	"li.jobs-search-results__list-item",
	"li.scaffold-layout__list-item",
}

const (
	jobIDAttr         = "data-occludable-job-id"
	jobIDAttrFallback = "data-job-id"
)

var titleLinkSelectors = []string{
	`a[href*="/jobs/view/"]`,
	"a.job-card-list__title",
	"a.job-card-container__link",
}

var companySelectors = []string{
	"span.job-card-container__primary-description",
	".artdeco-entity-lockup__subtitle",
	"span.job-card-container__company-name",
}

var locationSelectors = []string{
	"li.job-card-container__metadata-item",
	".artdeco-entity-lockup__caption",
	"span.job-card-container__metadata-wrapper",
}

var postedTimeSelectors = []string{
	"time",
	"span.job-card-container__listed-time",
	".job-card-container__footer-item",
}

var descriptionSelectors = []string{
	".jobs-description__content",
	".jobs-description-content__text",
	"#job-details",
}
