package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

// Publisher announces finished scans on the event bus so downstream
// consumers (content generation, notifiers) can react without polling.
type Publisher struct {
	conn  *nats.Conn
	topic string
}

func NewPublisher(conn *nats.Conn, topic string) *Publisher {
	return &Publisher{
		conn:  conn,
		topic: topic,
	}
}

type scanCompletedEvent struct {
	ScannedAt  time.Time `json:"scannedAt"`
	Sources    []string  `json:"sources"`
	RawCount   int       `json:"rawCount"`
	TrendCount int       `json:"trendCount"`
	TopTrend   string    `json:"topTrend,omitempty"`
}

// ScanCompleted publishes a summary of a finished scan.
func (p *Publisher) ScanCompleted(result *trend.ScanResult) error {
	event := scanCompletedEvent{
		ScannedAt:  result.ScannedAt,
		Sources:    result.Sources,
		RawCount:   result.RawCount,
		TrendCount: len(result.Trends),
	}
	if len(result.Trends) > 0 {
		event.TopTrend = result.Trends[0].Title
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling scan event: %w", err)
	}

	return p.conn.Publish(fmt.Sprintf("%s.completed", p.topic), data)
}
