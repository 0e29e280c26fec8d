package data

import (
	"strings"

	"github.com/myk4040okothogodo/moviefinder/internal/validator"
)

// Names of the filterable attributes. They double as the query string parameter names.
const (
	FieldName     = "name"
	FieldLanguage = "language"
	FieldGenre    = "genre"
	FieldSubtitle = "subtitle"
)

// Movie is a single catalog record. Records have no identifier, two movies may share a name.
type Movie struct {
	Name     string `json:"name"`
	Language string `json:"language"`
	Genre    string `json:"genre"`
	Subtitle string `json:"subtitle"`
}

// Options holds the values a client is allowed to filter on. They are used to validate filters only,
// records are not checked against them when the catalog is loaded.
type Options struct {
	Languages []string `json:"languages"`
	Genres    []string `json:"genres"`
	Subtitles []string `json:"subtitles"`
}

// Filters holds the optional query constraints. A nil or empty value means the filter was not supplied.
type Filters struct {
	Name     *string `json:"name"`
	Language *string `json:"language"`
	Genre    *string `json:"genre"`
	Subtitle *string `json:"subtitle"`
}

// Result is the successful outcome of Find.
type Result struct {
	FiltersApplied Filters `json:"filters_applied"`
	Results        []Movie `json:"results"`
}

// Catalog is the in-memory movie list built once at startup. Nothing mutates it afterwards, so it is safe
// for concurrent use by any number of handlers.
type Catalog struct {
	movies  []Movie
	options Options
}

// NewCatalog copies its arguments so later changes by the caller can't leak into the catalog.
func NewCatalog(movies []Movie, options Options) *Catalog {
	return &Catalog{
		movies: append([]Movie(nil), movies...),
		options: Options{
			Languages: append([]string(nil), options.Languages...),
			Genres:    append([]string(nil), options.Genres...),
			Subtitles: append([]string(nil), options.Subtitles...),
		},
	}
}

// Movies returns a copy of the records in catalog order.
func (c *Catalog) Movies() []Movie {
	return append([]Movie(nil), c.movies...)
}

// Options returns a copy of the configured option lists.
func (c *Catalog) Options() Options {
	return Options{
		Languages: append([]string(nil), c.options.Languages...),
		Genres:    append([]string(nil), c.options.Genres...),
		Subtitles: append([]string(nil), c.options.Subtitles...),
	}
}

func (c *Catalog) Len() int {
	return len(c.movies)
}

// Find narrows the catalog with the supplied filters.
//
// Option values are validated first, in the order language, genre, subtitle, and the first unsupported
// value is returned as an *UnsupportedOptionError. The name filter is then applied case-insensitively and
// returns a *MovieNotFoundError if nothing matches. Language, genre and subtitle are exact, case-sensitive
// matches. If the filters leave nothing, ErrNoResults is returned.
func (c *Catalog) Find(filters Filters) (*Result, error) {
	filters = filters.normalized()

	if err := c.checkOptions(filters); err != nil {
		return nil, err
	}

	matches := c.movies

	if filters.Name != nil {
		matches = where(matches, func(m Movie) bool {
			return strings.EqualFold(m.Name, *filters.Name)
		})
		if len(matches) == 0 {
			return nil, &MovieNotFoundError{Name: *filters.Name}
		}
	}

	if filters.Language != nil {
		matches = where(matches, func(m Movie) bool { return m.Language == *filters.Language })
	}
	if filters.Genre != nil {
		matches = where(matches, func(m Movie) bool { return m.Genre == *filters.Genre })
	}
	if filters.Subtitle != nil {
		matches = where(matches, func(m Movie) bool { return m.Subtitle == *filters.Subtitle })
	}

	if len(matches) == 0 {
		return nil, ErrNoResults
	}

	return &Result{
		FiltersApplied: filters,
		Results:        append([]Movie(nil), matches...),
	}, nil
}

// Inconsistencies lists records whose language, genre or subtitle is not in the matching option list.
// Such records are still served, they just can never be selected by that filter.
func (c *Catalog) Inconsistencies() []UnsupportedOptionError {
	var out []UnsupportedOptionError
	for _, m := range c.movies {
		if !validator.In(m.Language, c.options.Languages...) {
			out = append(out, UnsupportedOptionError{Field: FieldLanguage, Value: m.Language})
		}
		if !validator.In(m.Genre, c.options.Genres...) {
			out = append(out, UnsupportedOptionError{Field: FieldGenre, Value: m.Genre})
		}
		if !validator.In(m.Subtitle, c.options.Subtitles...) {
			out = append(out, UnsupportedOptionError{Field: FieldSubtitle, Value: m.Subtitle})
		}
	}
	return out
}

func (c *Catalog) checkOptions(filters Filters) error {
	checks := []struct {
		field   string
		value   *string
		allowed []string
	}{
		{FieldLanguage, filters.Language, c.options.Languages},
		{FieldGenre, filters.Genre, c.options.Genres},
		{FieldSubtitle, filters.Subtitle, c.options.Subtitles},
	}

	for _, check := range checks {
		if check.value != nil && !validator.In(*check.value, check.allowed...) {
			return &UnsupportedOptionError{Field: check.field, Value: *check.value}
		}
	}
	return nil
}

// normalized maps empty filter values to nil so that "?genre=" behaves like an absent genre.
func (f Filters) normalized() Filters {
	return Filters{
		Name:     nonEmpty(f.Name),
		Language: nonEmpty(f.Language),
		Genre:    nonEmpty(f.Genre),
		Subtitle: nonEmpty(f.Subtitle),
	}
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}

func where(movies []Movie, keep func(Movie) bool) []Movie {
	var out []Movie
	for _, m := range movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
