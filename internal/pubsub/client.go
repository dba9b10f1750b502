package pubsub

import (
	"context"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// New connects to Google Pub/Sub. The returned teardown closes the client.
func New(projectID string) (PubSubClient, func()) {
	ctx := context.Background()
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}
	c := &client{
		client: pubSubC,
		teardown: func() {
			if err := pubSubC.Close(); err != nil {
				log.Warn("Failed to close pubsub client", "error", err)
			}
		},
	}
	return c, c.teardown
}

func (c *client) SendMessage(topic EventType, data any) error {
	ctx := context.Background()
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event": string(topic)},
	}
	result := c.client.Topic(string(topic)).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

// Decoder returns a PubSubClient that only decodes messages. Push handlers
// use it when no project is configured.
func Decoder() PubSubClient {
	return decoder{}
}

type decoder struct{}

func (decoder) SendMessage(topic EventType, data any) error {
	log.Debug("Pubsub disabled, dropping message", "topic", topic)
	return nil
}

func (decoder) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}
