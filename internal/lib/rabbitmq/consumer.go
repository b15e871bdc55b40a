package rabbitmq

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
)

// HandlerFunc обрабатывает тело одного сообщения.
type HandlerFunc func(body []byte) error

// Consume читает сообщения из очереди и передаёт их обработчику.
// Сообщение подтверждается только после успешной обработки; при ошибке
// возвращается в очередь.
func Consume(ctx context.Context, ch *amqp.Channel, queue string, log *slog.Logger, handle HandlerFunc) error {
	const op = "rabbitmq.Consume"

	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := handle(msg.Body); err != nil {
				log.Error("failed to handle message", slog.String("queue", queue), sl.Err(err))
				if nackErr := msg.Nack(false, true); nackErr != nil {
					log.Error("failed to nack message", sl.Err(nackErr))
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				log.Error("failed to ack message", sl.Err(ackErr))
			}
		}
	}
}
