package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"

	"github.com/andalan-dev/shift-planner/backend/internal/config"
	"github.com/andalan-dev/shift-planner/backend/internal/domain"
	"github.com/andalan-dev/shift-planner/backend/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("unable to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * database, for in-app notification rows
	 **********************************************/
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("unable to create database pool", slog.String("error", err.Error()))
		return
	}
	defer dbpool.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()
	if err := dbpool.PingContext(pingCtx); err != nil {
		logger.Error("unable to reach database", slog.String("error", err.Error()))
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	/**********************************************
	 * mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("unable to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("unable to reach mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("unable to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("unable to open rabbitmq channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"notification_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to declare notification queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("unable to start consuming", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				handleMessage(logger, cfg, repo, client, msg)
			}
		}
	}()

	logger.Info("waiting for notifications... (CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down notifier worker...")
	cancel()
	wg.Wait()
	slog.Info("notifier worker stopped")
}

// content describes how one message type renders in each channel.
type content struct {
	templateFile string
	subject      string
	title        string
	message      string
}

func renderContent(notification domain.NotificationMessage) (*content, error) {
	data, ok := notification.Data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected data payload %T", notification.Data)
	}

	str := func(key string) string {
		s, _ := data[key].(string)
		return s
	}

	switch notification.Type {
	case domain.NotifyAssignmentCreated:
		return &content{
			templateFile: "./templates/assignment_created.html",
			subject:      "Shift Planner - New Shift Assignment",
			title:        "New shift assignment",
			message:      fmt.Sprintf("You are scheduled for %s on %s.", str("shiftName"), str("date")),
		}, nil
	case domain.NotifyReplacementAssigned:
		return &content{
			templateFile: "./templates/replacement_assigned.html",
			subject:      "Shift Planner - Replacement Shift",
			title:        "Replacement shift assigned",
			message:      fmt.Sprintf("You are covering %s on %s for %s.", str("shiftName"), str("date"), str("replacedName")),
		}, nil
	case domain.NotifyAccountCreated:
		return &content{
			templateFile: "./templates/account_created.html",
			subject:      "Shift Planner - Your Account",
			title:        "Welcome to Shift Planner",
			message:      fmt.Sprintf("Your account %s has been created.", str("username")),
		}, nil
	case domain.NotifyResetPassword:
		return &content{
			templateFile: "./templates/reset_password.html",
			subject:      "Shift Planner - Password Reset",
			title:        "Password reset requested",
			message:      "A password reset code was requested for your account.",
		}, nil
	default:
		return nil, fmt.Errorf("unsupported notification type %q", notification.Type)
	}
}

func handleMessage(logger *slog.Logger, cfg *config.Config, repo *repository.Repository, client *mail.Client, msg amqp.Delivery) {
	logger.Info("message received", slog.String("body", string(msg.Body)))

	notification := domain.NotificationMessage{}
	if err := json.Unmarshal(msg.Body, &notification); err != nil {
		logger.Error("unable to decode notification", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	c, err := renderContent(notification)
	if err != nil {
		logger.Error("unable to render notification", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	// in-app row first: cheap, and the user should see it even if the
	// mail server is down
	if notification.UserID != 0 {
		row := &domain.Notification{
			UserID:  notification.UserID,
			Type:    notification.Type,
			Title:   c.title,
			Message: c.message,
		}
		if err := repo.CreateNotification(row); err != nil {
			logger.Error("unable to store notification", slog.String("error", err.Error()))
			_ = msg.Nack(false, true)
			return
		}
	}

	if notification.To == "" {
		_ = msg.Ack(false)
		return
	}

	email := mail.NewMsg()
	if err := email.From(cfg.Email.SMTP.Username); err != nil {
		logger.Error("unable to set mail sender", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := email.To(notification.To); err != nil {
		logger.Error("unable to set mail recipient", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	tmpl, err := template.ParseFiles(c.templateFile)
	if err != nil {
		logger.Error("unable to parse mail template", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := email.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
		logger.Error("unable to set mail body", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	email.Subject(c.subject)

	if err := client.DialAndSend(email); err != nil {
		logger.Error("unable to send mail", slog.String("error", err.Error()))
		_ = msg.Nack(false, true) // requeue, the mail server may recover
		return
	}

	_ = msg.Ack(false)
}
