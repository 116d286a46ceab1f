package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andalan-dev/shift-planner/backend/internal/domain"
)

const notificationQueue = "notification_queue"

// publishNotification puts one event on the notification queue. Callers on
// the scheduling paths treat a failure as fire-and-forget; account flows
// check the error because the email is the whole point there.
func (h *Handler) publishNotification(msg domain.NotificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.eventChannel.PublishWithContext(
		ctx,
		"",
		notificationQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// amqpNotifier adapts the handler's queue channel to the committer's
// Notifier contract. Delivery failures are logged and swallowed so they can
// never fail a commit.
type amqpNotifier struct {
	h         *Handler
	employees map[int64]*domain.Employee
}

func (n *amqpNotifier) AssignmentCreated(employeeID int64, shiftName, date string) {
	emp, ok := n.employees[employeeID]
	if !ok {
		return
	}

	err := n.h.publishNotification(domain.NotificationMessage{
		Type:   domain.NotifyAssignmentCreated,
		UserID: emp.UserID,
		To:     emp.Email,
		Data: domain.AssignmentCreatedData{
			FullName:  emp.FullName,
			ShiftName: shiftName,
			Date:      date,
		},
	})
	if err != nil {
		slog.Warn("assignment notification publish failed", "employee", employeeID, "error", err)
	}
}
