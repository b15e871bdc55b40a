// Package sender потребляет напоминания об истечении пробного периода
// из очереди и рассылает письма по SMTP.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/Unlucky13unny/playerzero/internal/lib/rabbitmq"
	"github.com/Unlucky13unny/playerzero/internal/lib/sl"
	"github.com/Unlucky13unny/playerzero/internal/lib/smtp"
	"github.com/Unlucky13unny/playerzero/internal/services/scheduler"
)

// Service потребляет очередь напоминаний и отправляет письма.
type Service struct {
	transport smtp.TransportInterface
	channel   *amqp.Channel
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, channel *amqp.Channel, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		channel:   channel,
		log:       log,
	}
}

// Run потребляет очередь напоминаний до отмены контекста.
func (s *Service) Run(ctx context.Context) error {
	queues := rabbitmq.GetNotificationQueues()
	return rabbitmq.Consume(ctx, s.channel, queues[0].QueueName, s.log, s.handleMessage)
}

func (s *Service) handleMessage(body []byte) error {
	var msg scheduler.TrialExpiringMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal reminder: %w", err)
	}
	if err := s.sendReminder(msg); err != nil {
		s.log.Error("failed to send reminder email",
			slog.String("email", msg.Email), sl.Err(err))
		return err
	}
	s.log.Info("sent trial reminder email", slog.String("email", msg.Email))
	return nil
}

func (s *Service) sendReminder(msg scheduler.TrialExpiringMessage) error {
	client, err := s.transport.Connect()
	if err != nil {
		return err
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			s.log.Error("failed to close smtp session", sl.Err(quitErr))
		}
	}()

	from := s.transport.GetSMTPUser()
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("mail command failed: %w", err)
	}
	if err := client.Rcpt(msg.Email); err != nil {
		return fmt.Errorf("rcpt command failed: %w", err)
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("data command failed: %w", err)
	}

	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your trial ends today\r\n\r\n"+
			"Hi %s,\r\n\r\n"+
			"Your trial period ends on %s. Upgrade to keep full access to your stats, leaderboards and cards.\r\n",
		from, msg.Email, msg.Username, msg.TrialEnd.Format("02 Jan 2006 15:04 MST"))
	if _, err := wc.Write([]byte(body)); err != nil {
		_ = wc.Close()
		return fmt.Errorf("failed to write message body: %w", err)
	}
	return wc.Close()
}
