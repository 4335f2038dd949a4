package noop

import "github.com/imran-khalid/settlement-ledger-system/internal/interfaces"

// Publisher discards every event. Used when no broker is configured.
type Publisher struct{}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) Publish(topic string, event any) error {
	return nil
}

var _ interfaces.EventPublisher = (*Publisher)(nil)
