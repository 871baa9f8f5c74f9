package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/green-crm/internal/infra/integration/greenapi"
)

// Sender envia usando a config do gateway gravada no tenant.
type Sender interface {
	SendConfigured(ctx context.Context, tenantID, mobile, message string) greenapi.SendResult
}

type Worker struct {
	Channel *amqp.Channel
	Sender  Sender
}

func NewWorker(ch *amqp.Channel, sender Sender) *Worker {
	return &Worker{
		Channel: ch,
		Sender:  sender,
	}
}

// Start consome a fila até o ctx ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.ConsumeWithContext(ctx,
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ [WORKER] Encerrado")
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Println("⚠️ [WORKER] Canal fechado")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var msg struct {
		TenantID  string `json:"tenant_id"`
		TriggerID string `json:"trigger_id"`
		Mobile    string `json:"mobile"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(d.Body, &msg); err != nil || msg.TenantID == "" {
		log.Printf("❌ [WORKER] Payload inválido: %v", err)
		// mensagem podre: rejeita sem requeue para não travar a fila
		d.Nack(false, false)
		return
	}

	result := w.Sender.SendConfigured(ctx, msg.TenantID, msg.Mobile, msg.Message)
	if !result.Success {
		// sem retry: o envio recusado fica na DLQ para inspeção
		log.Printf("❌ [WORKER] Envio do trigger %s falhou: %s", msg.TriggerID, result.Message)
		d.Nack(false, false)
		return
	}

	log.Printf("✅ [WORKER] %s", result.Message)
	d.Ack(false)
}
