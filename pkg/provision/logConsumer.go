package provision

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/one-love/onelove/internal/errdef"
	"github.com/one-love/onelove/pkg/model"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ProvisionLogQueue carries log entries reported back by the task executor.
const ProvisionLogQueue = "provision-log"

func NewLogConsumer(logger *slog.Logger, consumer consumer, repository provisionRepository) *logConsumer {
	return &logConsumer{
		logger:     logger,
		consumer:   consumer,
		repository: repository,
	}
}

type consumer interface {
	Consume(queue string, handler func(d amqp.Delivery)) error
}

type logConsumer struct {
	logger     *slog.Logger
	consumer   consumer
	repository provisionRepository
}

type logMessage struct {
	ID        uint   `json:"id"`
	Status    string `json:"status"`
	Host      string `json:"host"`
	Task      string `json:"task"`
	Timestamp string `json:"timestamp"`
	Message   string `json:"message"`
}

// Consume appends executor log entries to their provision and moves the
// provision to the reported status. Malformed payloads are dropped without
// requeue, entries for unknown provisions are acknowledged and discarded,
// and transient repository failures are requeued.
func (c *logConsumer) Consume() error {
	return c.consumer.Consume(ProvisionLogQueue, func(d amqp.Delivery) {
		ctx := context.Background()

		var payload logMessage
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			c.logger.ErrorContext(ctx, "Error unmarshalling provision-log message", "error", err)
			if err := d.Nack(false, false); err != nil {
				c.logger.ErrorContext(ctx, "Error negatively acknowledging provision-log message", "error", err)
			}
			return
		}

		provision, err := c.repository.findById(ctx, payload.ID)
		if err != nil {
			if errdef.IsNotFound(err) {
				c.logger.WarnContext(ctx, "Dropping log entry for unknown provision", "provision", payload.ID)
				if err := d.Ack(false); err != nil {
					c.logger.ErrorContext(ctx, "Error acknowledging provision-log message", "provision", payload.ID, "error", err)
				}
				return
			}
			c.logger.ErrorContext(ctx, "Error finding provision", "provision", payload.ID, "error", err)
			if err := d.Nack(false, true); err != nil {
				c.logger.ErrorContext(ctx, "Error requeueing provision-log message", "provision", payload.ID, "error", err)
			}
			return
		}

		log := &model.ProvisionLog{
			Status:    payload.Status,
			Host:      payload.Host,
			Task:      payload.Task,
			Timestamp: payload.Timestamp,
			Message:   payload.Message,
		}
		if err := c.repository.appendLog(ctx, provision, log); err != nil {
			c.logger.ErrorContext(ctx, "Error appending provision log", "provision", provision.ID, "error", err)
			if err := d.Nack(false, true); err != nil {
				c.logger.ErrorContext(ctx, "Error requeueing provision-log message", "provision", provision.ID, "error", err)
			}
			return
		}

		if err := d.Ack(false); err != nil {
			c.logger.ErrorContext(ctx, "Error acknowledging provision-log message", "provision", provision.ID, "error", err)
		}
	})
}
