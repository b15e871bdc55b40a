// Package trialsender содержит приложение отправителя писем-напоминаний
// об истечении пробного периода.
package trialsender

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/Unlucky13unny/playerzero/internal/config"
	"github.com/Unlucky13unny/playerzero/internal/lib/rabbitmq"
	"github.com/Unlucky13unny/playerzero/internal/lib/smtp"
	senderservice "github.com/Unlucky13unny/playerzero/internal/services/sender"
)

// App представляет приложение отправителя.
type App struct {
	senderService *senderservice.Service
	conn          *amqp.Connection
	ch            *amqp.Channel
	logger        *slog.Logger
}

// New создает новый экземпляр приложения отправителя.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	queues := rabbitmq.GetNotificationQueues()
	ch, err := rabbitmq.SetupChannel(conn, queues)
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error("failed to close connection", slog.Any("err", closeErr))
		}
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.New(transport, ch, logger)

	return &App{
		senderService: senderService,
		conn:          conn,
		ch:            ch,
		logger:        logger,
	}, nil
}

// Run запускает потребление очереди напоминаний до отмены контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.senderService.Run(ctx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("shutting down trial sender")
		if err := a.ch.Close(); err != nil {
			a.logger.Error("failed to close channel", slog.Any("err", err))
		}
		if err := a.conn.Close(); err != nil {
			a.logger.Error("failed to close connection", slog.Any("err", err))
		}
		return nil
	}
}
