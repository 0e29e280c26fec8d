package main

import (
	"net/http"

	"github.com/myk4040okothogodo/moviefinder/internal/data"
)

// listMoviesHandler serves GET /movies. Every query parameter is optional; see data.Catalog.Find for the
// order in which they are checked.
func (app *application) listMoviesHandler(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filters := data.Filters{
		Name:     app.readOptionalString(qs, data.FieldName),
		Language: app.readOptionalString(qs, data.FieldLanguage),
		Genre:    app.readOptionalString(qs, data.FieldGenre),
		Subtitle: app.readOptionalString(qs, data.FieldSubtitle),
	}

	result, err := app.models.Movies.Find(filters)
	if err != nil {
		switch {
		case data.IsLookupMiss(err):
			app.movieLookupFailedResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{
		"filters_applied": result.FiltersApplied,
		"results":         result.Results,
	}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
