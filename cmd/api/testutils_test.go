package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/myk4040okothogodo/moviefinder/internal/data"
	"github.com/myk4040okothogodo/moviefinder/internal/jsonlog"
)

const testCatalog = `[LANGUAGES]
available = English, Hindi, French
[GENRES]
available = Animation, Drama, Comedy
[SUBTITLES]
available = Yes, No
[MOVIES]
movies =
    Up | English | Animation | Yes
    Dangal | Hindi | Drama | No
    Amelie | French | Comedy | Yes
    Coco | English | Animation | No
`

// newTestApplication returns an application backed by testCatalog with rate limiting disabled and
// logging switched off.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	catalog, err := data.ParseCatalog([]byte(testCatalog))
	require.NoError(t, err)

	return newTestApplicationWithModels(t, data.NewModels(catalog), jsonlog.New(io.Discard, jsonlog.LevelOff))
}

func newTestApplicationWithModels(t *testing.T, models data.Models, logger *jsonlog.Logger) *application {
	t.Helper()

	var cfg config
	cfg.env = "testing"
	cfg.cors.trustedOrigins = []string{"http://localhost:3000"}

	return newApplication(cfg, logger, models)
}

func doRequest(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	for key, values := range header {
		req.Header[key] = values
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

type moviesResponse struct {
	FiltersApplied map[string]*string `json:"filters_applied"`
	Results        []data.Movie       `json:"results"`
	Detail         string             `json:"detail"`
}

func decodeMovies(t *testing.T, rr *httptest.ResponseRecorder) moviesResponse {
	t.Helper()

	var resp moviesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp
}
