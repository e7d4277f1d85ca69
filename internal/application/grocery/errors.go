package grocery

import "errors"

var (
	errEmptyEnrichment = errors.New("enrichment returned no valid items")
	errEnrichmentGrew  = errors.New("enrichment returned more items than it was given")
)
