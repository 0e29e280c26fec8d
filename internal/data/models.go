package data

import (
	"errors"
	"fmt"
)

// ErrNoResults is returned by Find when every filter was valid but together they excluded the whole
// catalog.
var ErrNoResults = errors.New("No movies found matching the given filters.")

// UnsupportedOptionError is returned when a language, genre or subtitle filter names a value that is not
// in the configured option list for that field. It is reported before any filtering happens.
type UnsupportedOptionError struct {
	Field string
	Value string
}

func (e *UnsupportedOptionError) Error() string {
	switch e.Field {
	case FieldLanguage:
		return fmt.Sprintf("Language '%s' is not supported.", e.Value)
	case FieldGenre:
		return fmt.Sprintf("Genre '%s' is not supported.", e.Value)
	case FieldSubtitle:
		return fmt.Sprintf("Subtitle option '%s' is not available.", e.Value)
	default:
		return fmt.Sprintf("%s '%s' is not supported.", e.Field, e.Value)
	}
}

// MovieNotFoundError is returned when a name filter matches no movie in the catalog. It is distinct from
// ErrNoResults, which means the remaining filters emptied the result set.
type MovieNotFoundError struct {
	Name string
}

func (e *MovieNotFoundError) Error() string {
	return fmt.Sprintf("Movie '%s' not found.", e.Name)
}

// IsLookupMiss reports whether err is one of the errors Find uses to tell the client that nothing
// matched its query.
func IsLookupMiss(err error) bool {
	var unsupported *UnsupportedOptionError
	var notFound *MovieNotFoundError
	return errors.As(err, &unsupported) || errors.As(err, &notFound) || errors.Is(err, ErrNoResults)
}

// Models wraps the movie model so that handlers depend on an interface. We can swap in the mock model
// when testing the HTTP layer.
type Models struct {
	Movies interface {
		Find(filters Filters) (*Result, error)
		Count() int
	}
}

// NewModels returns a Models struct backed by the catalog loaded at startup.
func NewModels(catalog *Catalog) Models {
	return Models{
		Movies: MovieModel{Catalog: catalog},
	}
}

// NewMockModels returns a Models instance containing the mock models only.
func NewMockModels(mock MockMovieModel) Models {
	return Models{
		Movies: mock,
	}
}

// MovieModel answers queries against the immutable catalog.
type MovieModel struct {
	Catalog *Catalog
}

func (m MovieModel) Find(filters Filters) (*Result, error) {
	return m.Catalog.Find(filters)
}

func (m MovieModel) Count() int {
	return m.Catalog.Len()
}

// MockMovieModel returns canned values.
type MockMovieModel struct {
	Result *Result
	Err    error
}

func (m MockMovieModel) Find(filters Filters) (*Result, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func (m MockMovieModel) Count() int {
	if m.Result == nil {
		return 0
	}
	return len(m.Result.Results)
}
