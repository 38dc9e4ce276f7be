package main

import (
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"todoconsole/pkg/api"
	"todoconsole/pkg/config"
	"todoconsole/pkg/controller"
	"todoconsole/pkg/view"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	filePerms := 0o666

	logFile, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	log.Logger = log.With().Caller().Logger().Level(level).Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Str("api_url", cfg.APIURL).Msg("starting application...")

	client := api.NewClient(cfg.APIURL, cfg.RequestTimeout.Duration())

	v := view.New(client, nil)

	controller, err := controller.NewController(ctx, v)
	if err != nil {
		panic(err)
	}

	if err := controller.Go(); err != nil {
		panic(err)
	}
}
