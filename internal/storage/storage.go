// Package storage is the typed access layer over the persisted bot
// document. Components own their section structs; this package only
// moves them in and out of the datastore.
package storage

import (
	"github.com/rs/zerolog"

	"github.com/4N5H64M3R/Showdown-ChatBot/datastore"
)

type Storage struct {
	ds  *datastore.DataStore
	log zerolog.Logger
}

func New(filePath string, log zerolog.Logger) (*Storage, error) {
	cfg := datastore.DefaultConfig(filePath)
	cfg.Logger = log
	ds, err := datastore.NewWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	return &Storage{ds: ds, log: log}, nil
}

func (s *Storage) Close() error {
	return s.ds.Close()
}

// Load decodes the section under key into v. A missing section leaves
// v untouched so callers can fill defaults.
func (s *Storage) Load(key string, v any) error {
	_, err := s.ds.Get(key, v)
	return err
}

// Put replaces the section under key. Encoding failures are logged
// rather than returned; configuration sections are plain data and only
// fail to encode on a programming error.
func (s *Storage) Put(key string, v any) {
	if err := s.ds.Set(key, v); err != nil {
		s.log.Error().Err(err).Str("section", key).Msg("failed to store section")
	}
}

// Save flushes the document to disk.
func (s *Storage) Save() error {
	return s.ds.SaveToFile()
}
