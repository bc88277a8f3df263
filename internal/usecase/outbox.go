package usecase

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OutboxStatus — статус события в таблице outbox_events.
type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

// OutboxEventType — тип события изменения склада.
type OutboxEventType string

const (
	ProductAdded   OutboxEventType = "product_added"
	StockAdjusted  OutboxEventType = "stock_adjusted"
	ProductDeleted OutboxEventType = "product_deleted"
)

// OutboxEvent — событие изменения склада, ожидающее публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// inventoryEventPayload — JSON-представление события для потребителей топика.
type inventoryEventPayload struct {
	EventID        string `json:"event_id"`
	EventType      string `json:"event_type"`
	EventTimestamp int64  `json:"event_timestamp"`
	ProductID      int64  `json:"product_id"`
	ProductName    string `json:"product_name,omitempty"`
	Amount         int64  `json:"amount,omitempty"`
	Quantity       int64  `json:"quantity"`
}

// NewOutboxEvent собирает событие с сериализованным payload.
// quantity — количество товара после применения операции.
func NewOutboxEvent(eventType OutboxEventType, productID int64, productName string, amount, quantity int64) (*OutboxEvent, error) {
	eventID := uuid.NewString()

	payload, err := json.Marshal(inventoryEventPayload{
		EventID:        eventID,
		EventType:      string(eventType),
		EventTimestamp: time.Now().UnixNano(),
		ProductID:      productID,
		ProductName:    productName,
		Amount:         amount,
		Quantity:       quantity,
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}, nil
}
