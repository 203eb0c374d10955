package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bufferbudget/backend/internal/cache"
	"github.com/bufferbudget/backend/internal/controllers"
	"github.com/bufferbudget/backend/internal/router"
	"github.com/bufferbudget/backend/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	upstreamURL, ok := os.LookupEnv("UPSTREAM_URL")
	if !ok {
		log.Fatal().Msg("UPSTREAM_URL must be set to the persistence API base URL")
	}

	// Create data directory for the snapshot cache
	dataDir := filepath.Join(".", "data")
	err := os.MkdirAll(dataDir, os.ModePerm)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	snapshots, err := cache.Connect("data/snapshots.db?_pragma=foreign_keys(1)")
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	co := controllers.Controller{
		Upstream: upstream.New(upstreamURL, os.Getenv("UPSTREAM_TOKEN")),
		Cache:    snapshots,
	}

	r, err := router.Router(co)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if err := r.Run(); err != nil {
		log.Fatal().Msg(err.Error())
	}
}
