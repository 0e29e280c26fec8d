package main

import (
	"expvar"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/myk4040okothogodo/moviefinder/internal/data"
	"github.com/myk4040okothogodo/moviefinder/internal/jsonlog"
)

// Declare a string containing the version number
const version = "1.0.0"

// Define a config struct to hold all the configuration settings for our application. We read these
// settings from command-line flags when the application starts. The movie catalog itself lives in the
// INI file named by the catalog field and is loaded exactly once, before the server starts.
type config struct {
	port     int
	env      string
	catalog  string
	logLevel string

	// Requests-per-second and burst values for the per-client rate limiter, and a boolean field which we
	// can use to enable/disable rate limiting altogether.
	limiter struct {
		rps     float64
		burst   int
		enabled bool
	}
	cors struct {
		trustedOrigins []string
	}
}

// Define an application struct to hold the dependencies for our HTTP handlers, helpers, and middleware.
type application struct {
	config config
	logger *jsonlog.Logger
	models data.Models
	stats  *stats
}

func newApplication(cfg config, logger *jsonlog.Logger, models data.Models) *application {
	return &application{
		config: cfg,
		logger: logger,
		models: models,
		stats:  newStats(),
	}
}

func main() {
	var cfg config

	flag.IntVar(&cfg.port, "port", 4000, "API server port")
	flag.StringVar(&cfg.env, "env", "development", "Environment (development|staging|production)")
	flag.StringVar(&cfg.catalog, "catalog", "config.ini", "Path to the movie catalog INI file")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "Minimum log level (info|error|fatal|off)")

	flag.Float64Var(&cfg.limiter.rps, "limiter-rps", 2, "Rate limiter maximum requests per second")
	flag.IntVar(&cfg.limiter.burst, "limiter-burst", 4, "Rate limiter maximum burst")
	flag.BoolVar(&cfg.limiter.enabled, "limiter-enabled", true, "Enable rate limiter")

	// The frontend is the only trusted origin unless the flag says otherwise. strings.Fields() splits the
	// flag value on whitespace, so an empty flag value disables CORS entirely.
	cfg.cors.trustedOrigins = []string{"http://localhost:3000"}
	flag.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	level, err := jsonlog.ParseLevel(cfg.logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Initialize a new jsonlog.Logger which writes any messages *at or above* the configured severity
	// level to the standard out stream.
	logger := jsonlog.New(os.Stdout, level)
	defer logger.Sync()

	// A malformed catalog is fatal: we never start serving a partial or empty catalog by accident.
	catalog, err := data.LoadCatalog(cfg.catalog)
	if err != nil {
		logger.PrintFatal(err, map[string]string{"catalog": cfg.catalog})
	}

	logger.PrintInfo("catalog loaded", map[string]string{
		"catalog": cfg.catalog,
		"movies":  strconv.Itoa(catalog.Len()),
	})

	// Records tagged with a value outside its option list are still served, we only report them.
	for _, inconsistency := range catalog.Inconsistencies() {
		logger.PrintInfo("catalog record uses a value outside its option list", map[string]string{
			"field": inconsistency.Field,
			"value": inconsistency.Value,
		})
	}

	app := newApplication(cfg, logger, data.NewModels(catalog))

	publishVars(app)

	err = app.serve()
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}

// publishVars registers the expvar variables served on GET /debug/vars. expvar panics on duplicate
// names, so this runs once from main and never from tests.
func publishVars(app *application) {
	expvar.NewString("version").Set(version)

	expvar.Publish("goroutines", expvar.Func(func() interface{} {
		return runtime.NumGoroutine()
	}))

	expvar.Publish("catalog", expvar.Func(func() interface{} {
		return map[string]int{"movies": app.models.Movies.Count()}
	}))

	expvar.Publish("timestamp", expvar.Func(func() interface{} {
		return time.Now().Unix()
	}))

	expvar.Publish("requests", app.stats.vars)
}
