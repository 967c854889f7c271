// Package store persists the list of named DNS server pairs.
//
// The list is kept as an indented JSON array next to the running program.
// There is no locking: one user, one process.
package store

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// DefaultFile is the file name used when no path is configured.
const DefaultFile = "dns_settings.json"

// ErrCorrupt is returned by Load under PolicyFail when the file cannot be parsed.
var ErrCorrupt = errors.New("entries file is corrupt")

// CorruptPolicy decides what Load does with a file it cannot parse.
type CorruptPolicy string

const (
	// PolicyDiscard loads an empty list. The next save overwrites the file.
	PolicyDiscard CorruptPolicy = "discard"
	// PolicyBackup moves the file aside to <file>.corrupt and loads an empty list.
	PolicyBackup CorruptPolicy = "backup"
	// PolicyFail returns ErrCorrupt and leaves the file alone.
	PolicyFail CorruptPolicy = "fail"
)

// Valid reports whether p is a known policy.
func (p CorruptPolicy) Valid() bool {
	switch p {
	case PolicyDiscard, PolicyBackup, PolicyFail:
		return true
	}
	return false
}

// Defaults returns the built-in entries written on first run.
func Defaults() []Entry {
	return []Entry{
		{Title: "Electro", PrimaryDns: "78.157.42.100", SecondaryDns: "78.157.42.101"},
		{Title: "RadarGame", PrimaryDns: "10.202.10.10", SecondaryDns: "10.202.10.11"},
		{Title: "Shekan", PrimaryDns: "178.22.122.100", SecondaryDns: "185.51.200.2"},
		{Title: "Begzar", PrimaryDns: "185.55.226.26", SecondaryDns: "185.55.225.25"},
		{Title: "403DNS", PrimaryDns: "10.202.10.202", SecondaryDns: "10.202.10.102"},
		{Title: "Beshkan", PrimaryDns: "181.41.194.177", SecondaryDns: "181.41.194.186"},
		{Title: "Google DNS", PrimaryDns: "8.8.8.8", SecondaryDns: "8.8.4.4"},
		{Title: "Cloudflare DNS", PrimaryDns: "1.1.1.1", SecondaryDns: "1.0.0.1"},
		{Title: "OpenDNS", PrimaryDns: "208.67.222.222", SecondaryDns: "208.67.220.220"},
	}
}

// Store holds the entries in memory and mirrors them to a file.
type Store struct {
	path    string
	policy  CorruptPolicy
	log     zerolog.Logger
	entries []Entry
}

// New creates a store backed by path. An empty path means DefaultFile in
// the working directory; an unknown policy means PolicyDiscard.
func New(path string, policy CorruptPolicy, log zerolog.Logger) *Store {
	if path == "" {
		path = DefaultFile
	}
	if !policy.Valid() {
		policy = PolicyDiscard
	}
	return &Store{
		path:   path,
		policy: policy,
		log:    log.With().Str("component", "store").Logger(),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the file into memory. A missing file is initialised with
// Defaults.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "read %s", s.path)
		}
		s.log.Info().Str("path", s.path).Msg("No entries file, writing defaults")
		defaults := Defaults()
		if err := s.Save(defaults); err != nil {
			return nil, err
		}
		return s.Entries(), nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		entries, err = s.handleCorrupt(err)
		if err != nil {
			return nil, err
		}
	}
	if entries == nil {
		entries = []Entry{}
	}

	s.entries = entries
	return s.Entries(), nil
}

func (s *Store) handleCorrupt(parseErr error) ([]Entry, error) {
	switch s.policy {
	case PolicyFail:
		return nil, errors.Wrapf(ErrCorrupt, "%s: %v", s.path, parseErr)
	case PolicyBackup:
		aside := s.path + ".corrupt"
		if err := os.Rename(s.path, aside); err != nil {
			return nil, errors.Wrapf(err, "move corrupt file to %s", aside)
		}
		s.log.Warn().Err(parseErr).Str("backup", aside).Msg("Entries file is corrupt, moved aside")
	default:
		s.log.Warn().Err(parseErr).Str("path", s.path).Msg("Entries file is corrupt, starting empty")
	}
	return []Entry{}, nil
}

// Save replaces the file with entries and makes them the in-memory list.
func (s *Store) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return errors.Wrap(err, "encode entries")
	}

	if err := writeFile(s.path, buf.Bytes()); err != nil {
		return err
	}

	s.entries = append([]Entry(nil), entries...)
	return nil
}

// Entries returns a copy of the in-memory list.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Append adds e at the end and persists.
func (s *Store) Append(e Entry) error {
	next := append(s.Entries(), e)
	return s.Save(next)
}

// RemoveAt deletes the entry at index i and persists.
func (s *Store) RemoveAt(i int) error {
	if i < 0 || i >= len(s.entries) {
		return errors.Errorf("index %d out of range", i)
	}
	next := s.Entries()
	next = append(next[:i], next[i+1:]...)
	return s.Save(next)
}

// writeFile writes through a temp file in the target directory and renames
// it over path.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "write temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close temp file")
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrap(err, "chmod temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "replace %s", path)
	}
	return nil
}
