// cmd/bot/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/4N5H64M3R/Showdown-ChatBot/internal/botcmds"
	"github.com/4N5H64M3R/Showdown-ChatBot/internal/config"
	"github.com/4N5H64M3R/Showdown-ChatBot/internal/logging"
	"github.com/4N5H64M3R/Showdown-ChatBot/internal/parser"
	"github.com/4N5H64M3R/Showdown-ChatBot/internal/showdown"
	"github.com/4N5H64M3R/Showdown-ChatBot/internal/storage"
	v "github.com/4N5H64M3R/Showdown-ChatBot/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		os.Stderr.WriteString("invalid configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logging.New(cfg.LogPath, cfg.Debug)
	log.Info().Str("version", v.Version).Msg("starting " + v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	defer store.Close()

	client := showdown.NewClient(showdown.Config{
		URL:         cfg.ServerURL,
		LoginServer: cfg.LoginServer,
		Nick:        cfg.Nick,
		Password:    cfg.Password,
		Rooms:       cfg.Rooms,
	}, log)

	p, err := parser.New(store, client, client, parser.Settings{
		Tokens:           cfg.Tokens,
		Groups:           cfg.Groups,
		NamedGroups:      cfg.NamedGroups(),
		DefaultLanguage:  cfg.Language,
		RoomLanguages:    cfg.RoomLanguages,
		MaxMessageLength: cfg.MaxMessageLength,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize command parser")
	}
	botcmds.Register(p)
	client.SetHandler(p)

	errCh := make(chan error, 1)
	go func() {
		errCh <- client.Run(ctx)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("connection lost")
		}
		cancel()
	}

	if err := p.Save(); err != nil {
		log.Error().Err(err).Msg("failed to flush parser data")
	}
	log.Info().Msg("exited cleanly")
}
