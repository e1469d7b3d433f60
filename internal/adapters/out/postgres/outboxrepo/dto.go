// Package outboxrepo stores serialized domain events next to the aggregate
// changes that produced them, for later relay to the broker.
package outboxrepo

import (
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/ports"

	"github.com/google/uuid"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null"`
	PublishedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromPort(m ports.OutboxMessage) MessageDTO {
	return MessageDTO{
		ID:          m.ID.Bytes(),
		Name:        m.Name,
		AggregateID: m.AggregateID.Bytes(),
		Payload:     m.Payload,
		OccurredAt:  m.OccurredAt.UTC(),
	}
}

func toPort(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:          id,
		Name:        dto.Name,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
