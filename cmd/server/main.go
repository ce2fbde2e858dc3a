package main

import (
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"baralho-server/internal/config"
	"baralho-server/internal/mux"
	"baralho-server/pkg/catalog"
	"baralho-server/pkg/db"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	entries := loadCatalog()

	if config.Instance().Backend == config.BackendPostgres {
		// run the db migrations
		db.Migrate()
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, entries))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithFields(logrus.Fields{
		"addr":    srv.Addr,
		"backend": config.Instance().Backend,
		"cards":   len(entries),
	}).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// loadCatalog fails fast on a broken catalog file
func loadCatalog() []*catalog.Entry {
	path := config.Instance().CatalogPath
	if path == "" {
		return catalog.Default()
	}

	entries, err := catalog.Load(path)
	if err != nil {
		logrus.WithError(err).WithField("path", path).Fatal("could not load catalog")
	}

	return entries
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
