package main

import (
	"expvar"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	// Initialize a new httprouter router instance
	router := httprouter.New()

	// Convert the notFoundResponse() and methodNotAllowedResponse() helpers to http.Handlers and set them
	// as the custom error handlers for 404 Not Found and 405 Method Not Allowed responses.
	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)
	router.HandlerFunc(http.MethodGet, "/movies", app.listMoviesHandler)

	// expvar variables and the Prometheus exposition of the same request counters.
	router.Handler(http.MethodGet, "/debug/vars", expvar.Handler())
	router.Handler(http.MethodGet, "/metrics", promhttp.HandlerFor(app.stats.registry, promhttp.HandlerOpts{}))

	// JSON responses are gzip/deflate compressed when the client asks for it.
	return app.metrics(app.requestID(app.recoverPanic(app.enableCORS(app.rateLimit(handlers.CompressHandler(router))))))
}
