package ingest

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/nats-io/nats.go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"FlowScope/internal/config"
	"FlowScope/internal/model"
)

// Publisher is responsible for publishing flow batches to a NATS subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(cfg config.NATSConfig) (*Publisher, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &Publisher{nc: nc, subject: cfg.Subject}, nil
}

// Publish serializes a batch into a protobuf Struct envelope and publishes
// it to the configured NATS subject.
func (p *Publisher) Publish(batch *model.Batch) error {
	envelope, err := toEnvelope(batch)
	if err != nil {
		return err
	}
	s, err := structpb.NewStruct(envelope)
	if err != nil {
		return fmt.Errorf("failed to build struct envelope: %w", err)
	}
	data, err := proto.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}

// toEnvelope converts a typed batch to the schema-free form the wire
// envelope carries. Going through JSON keeps the field names identical to
// the HTTP contract.
func toEnvelope(batch *model.Batch) (map[string]any, error) {
	data, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch: %w", err)
	}
	var envelope map[string]any
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to build envelope: %w", err)
	}
	return envelope, nil
}
