package ingest

import (
	"log"

	"github.com/nats-io/nats.go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"FlowScope/internal/config"
	"FlowScope/internal/model"
)

// BatchHandler is a function that processes a received batch.
type BatchHandler func(batch *model.Batch)

// Subscriber is responsible for subscribing to a NATS subject and decoding
// batch envelopes.
type Subscriber struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	subject string
}

// NewSubscriber creates a new NATS subscriber.
func NewSubscriber(cfg config.NATSConfig) (*Subscriber, error) {
	nc, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", cfg.URL)
	return &Subscriber{nc: nc, subject: cfg.Subject}, nil
}

// Start subscribes to the configured subject and processes messages with
// the provided handler.
func (s *Subscriber) Start(handler BatchHandler) error {
	sub, err := s.nc.Subscribe(s.subject, func(msg *nats.Msg) {
		var envelope structpb.Struct
		if err := proto.Unmarshal(msg.Data, &envelope); err != nil {
			log.Printf("Error unmarshalling batch envelope: %v", err)
			return
		}
		handler(DecodeBatch(envelope.AsMap()))
	})
	if err != nil {
		return err
	}
	s.sub = sub
	log.Printf("Subscribed to '%s'. Waiting for batches...", s.subject)
	return nil
}

// Close unsubscribes and closes the NATS connection.
func (s *Subscriber) Close() {
	if s.sub != nil {
		s.sub.Unsubscribe()
	}
	if s.nc != nil {
		s.nc.Close()
		log.Println("NATS connection closed.")
	}
}
