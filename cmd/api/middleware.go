package main

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/tomasen/realip"
	"golang.org/x/time/rate"

	"github.com/myk4040okothogodo/moviefinder/internal/validator"
)

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Create a deferred function (which will always be run in the event of a panic as Go unwinds the
		// stack).
		defer func() {
			if err := recover(); err != nil {
				// Setting "Connection: close" makes Go's HTTP server close the current connection after the
				// response has been sent.
				w.Header().Set("Connection", "close")

				// The value returned by recover() has the type interface{}, so we use fmt.Errorf() to
				// normalize it into an error and call our serverErrorResponse() helper.
				app.serverErrorResponse(w, r, fmt.Errorf("%s", err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// requestID tags every request with an ID, echoed back in the X-Request-Id header and attached to error
// log entries. A well-formed UUID sent by the client is kept, anything else is replaced.
func (app *application) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, app.contextSetRequestID(r, id))
	})
}

func (app *application) rateLimit(next http.Handler) http.Handler {
	// Define a client struct to hold the rate limiter and last seen time for each client.
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	// Launch a background goroutine which removes old entries from the clients map once every minute.
	go func() {
		for {
			time.Sleep(time.Minute)

			mu.Lock()

			// Loop through all clients. If they haven't been seen within the last three minutes, delete the
			// corresponding entry from the map.
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}

			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Only carry out the check if rate limiting is enabled.
		if app.config.limiter.enabled {
			// realip looks at X-Forwarded-For and X-Real-IP before falling back to r.RemoteAddr, so clients
			// behind a proxy each get their own limiter.
			ip := realip.FromRequest(r)

			mu.Lock()

			if _, found := clients[ip]; !found {
				clients[ip] = &client{
					limiter: rate.NewLimiter(rate.Limit(app.config.limiter.rps), app.config.limiter.burst),
				}
			}

			clients[ip].lastSeen = time.Now()

			if !clients[ip].limiter.Allow() {
				mu.Unlock()
				app.rateLimitExceededResponse(w, r)
				return
			}

			// Don't defer the unlock: the mutex must not be held while the handlers downstream of this
			// middleware run.
			mu.Unlock()
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")

		origin := r.Header.Get("Origin")

		// Only run this if there's an Origin request header present AND it exactly matches one of the
		// trusted origins.
		if origin != "" && validator.In(origin, app.config.cors.trustedOrigins...) {
			// Credentials are allowed, so the origin is echoed back rather than using a "*" wildcard.
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			// A request with the OPTIONS method and an Access-Control-Request-Method header is a preflight
			// request. Every method is allowed and whatever headers the browser asks for are allowed too.
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", "DELETE, GET, HEAD, OPTIONS, PATCH, POST, PUT")
				if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
					w.Header().Set("Access-Control-Allow-Headers", requested)
				}
				w.Header().Set("Access-Control-Max-Age", "600")

				w.WriteHeader(http.StatusOK)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.stats.vars.Add("total_requests_received", 1)

		// httpsnoop.CaptureMetrics() runs the next handler in the chain and returns the status code, bytes
		// written and duration of the response.
		metrics := httpsnoop.CaptureMetrics(next, w, r)

		app.stats.vars.Add("total_responses_sent", 1)
		app.stats.vars.Add("total_processing_time_μs", metrics.Duration.Microseconds())

		// The expvar map is string-keyed, so the status code is converted with strconv.Itoa().
		code := strconv.Itoa(metrics.Code)
		app.stats.byStatus.Add(code, 1)

		app.stats.requests.WithLabelValues(r.Method, code).Inc()
		app.stats.duration.WithLabelValues(r.Method).Observe(metrics.Duration.Seconds())
	})
}
