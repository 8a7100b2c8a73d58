package report

import (
	"encoding/json"
	"fmt"
)

// Message is a single MQTT publish request.
type Message struct {
	Topic    string
	Payload  string
	Retained bool
}

// Publisher is what the run needs from an MQTT client. MQTTPublisher and
// FakePublisher implement it.
type Publisher interface {
	Publish(msg Message) error
	Close() error
}

// PublishConfig groups the topic routing parameters.
type PublishConfig struct {
	Prefix   string
	Host     string
	Retained bool
}

// SummaryTopic is where the full JSON summary goes.
func SummaryTopic(prefix, host string) string {
	return fmt.Sprintf("%s/%s/summary", prefix, host)
}

// ResultTopic carries the outcome of a single check.
func ResultTopic(prefix, host, test string) string {
	return fmt.Sprintf("%s/%s/result/%s", prefix, host, test)
}

// PublishSummary publishes each check outcome as a plain string topic and
// the combined JSON summary. It returns the first publish error.
func PublishSummary(s Summary, cfg PublishConfig, pub Publisher) error {
	for _, r := range s.Results {
		msg := Message{
			Topic:    ResultTopic(cfg.Prefix, cfg.Host, r.Name),
			Payload:  string(r.Outcome),
			Retained: cfg.Retained,
		}
		if err := pub.Publish(msg); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshalling summary: %w", err)
	}
	return pub.Publish(Message{
		Topic:    SummaryTopic(cfg.Prefix, cfg.Host),
		Payload:  string(payload),
		Retained: cfg.Retained,
	})
}
