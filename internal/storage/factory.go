// Package storage persists timestamped reports through pluggable writer
// backends selected by configuration.
package storage

import (
	"fmt"
	"log"

	"FlowScope/internal/config"
	"FlowScope/internal/model"
)

// WriterFactory creates one writer backend from the configuration.
type WriterFactory func(def config.WriterDef) (model.Writer, error)

// registry holds the mapping of writer types to their factory functions.
var registry = make(map[string]WriterFactory)

// RegisterWriter registers a new writer type with its factory function.
func RegisterWriter(name string, factory WriterFactory) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("writer type '%s' already registered", name))
	}
	registry[name] = factory
}

// CreateWriters creates every enabled writer backend from the config.
func CreateWriters(cfg *config.Config) ([]model.Writer, error) {
	var writers []model.Writer
	for _, def := range cfg.Storage.Writers {
		if !def.Enabled {
			continue
		}
		factory, ok := registry[def.Type]
		if !ok {
			return nil, fmt.Errorf("unknown writer type: '%s'", def.Type)
		}
		w, err := factory(def)
		if err != nil {
			return nil, fmt.Errorf("error creating writer type '%s': %w", def.Type, err)
		}
		log.Printf("Created report writer of type '%s'", def.Type)
		writers = append(writers, w)
	}
	return writers, nil
}
