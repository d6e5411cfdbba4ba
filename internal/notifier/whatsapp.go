package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// Fila consumida pela ponte externa de WhatsApp.
	outboxKey = "whatsapp:outbox"

	// Chaves mantidas pela ponte com o estado da conexão.
	statusKey = "whatsapp:status"
	phoneKey  = "whatsapp:phone"
)

type OutboxPayload struct {
	MessageID     string `json:"message_id"`
	ToPhone       string `json:"to_phone"`
	Message       string `json:"message"`
	TemplateType  string `json:"template_type"`
	AppointmentID *uint  `json:"appointment_id,omitempty"`
}

// WhatsAppQueue entrega mensagens à ponte via Redis. Tudo aqui é
// best-effort: um Redis fora do ar nunca derruba a operação que originou
// a mensagem.
type WhatsAppQueue struct {
	rdb *redis.Client
}

func NewWhatsAppQueue(rdb *redis.Client) *WhatsAppQueue {
	return &WhatsAppQueue{rdb: rdb}
}

func (q *WhatsAppQueue) Push(ctx context.Context, p OutboxPayload) error {
	if q == nil || q.rdb == nil {
		return nil
	}

	b, err := json.Marshal(p)
	if err != nil {
		return err
	}

	return q.rdb.LPush(ctx, outboxKey, b).Err()
}

type BridgeStatus struct {
	Connected      bool       `json:"connected"`
	PhoneNumber    string     `json:"phone_number,omitempty"`
	LastConnection *time.Time `json:"last_connection,omitempty"`
}

func (q *WhatsAppQueue) Status(ctx context.Context) BridgeStatus {
	if q == nil || q.rdb == nil {
		return BridgeStatus{}
	}

	st := BridgeStatus{}
	if v, err := q.rdb.Get(ctx, statusKey).Result(); err == nil && v == "connected" {
		st.Connected = true
	}
	if v, err := q.rdb.Get(ctx, phoneKey).Result(); err == nil {
		st.PhoneNumber = v
	}

	return st
}
