// Package store persists user-maintained payee overrides as a YAML file.
// The map replaces extracted payee names with the spelling the user wants to
// see in their budget, and survives between runs.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// PayeeStore loads and saves the payee override map.
type PayeeStore struct {
	filePath string
}

// NewPayeeStore returns a store backed by the given YAML file.
func NewPayeeStore(filePath string) *PayeeStore {
	return &PayeeStore{filePath: filePath}
}

type storeFile struct {
	Payees map[string]string `yaml:"payees"`
}

// Load reads the override map. A missing file is not an error; it simply
// yields an empty map so first runs work without setup.
func (s *PayeeStore) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("file", s.filePath).Debug("Payee store not found, starting empty")
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error reading payee store: %w", err)
	}

	var content storeFile
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("error parsing payee store: %w", err)
	}
	if content.Payees == nil {
		content.Payees = map[string]string{}
	}

	log.WithFields(logrus.Fields{
		"file":  s.filePath,
		"count": len(content.Payees),
	}).Debug("Loaded payee overrides")
	return content.Payees, nil
}

// Save writes the override map back to disk. yaml.v3 emits map keys sorted,
// which keeps the file diffable under version control.
func (s *PayeeStore) Save(payees map[string]string) error {
	data, err := yaml.Marshal(storeFile{Payees: payees})
	if err != nil {
		return fmt.Errorf("error marshaling payee store: %w", err)
	}

	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating store directory: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("error writing payee store: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":  s.filePath,
		"count": len(payees),
	}).Info("Saved payee overrides")
	return nil
}
