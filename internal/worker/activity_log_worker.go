package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"toyboard/internal/model"
	"toyboard/internal/platform/rabbitmq"
	"toyboard/internal/repository"
)

type outcome int

const (
	ack outcome = iota
	drop
	retry
)

// ActivityLogWorker drains the activity queue into the activity_logs table.
type ActivityLogWorker struct {
	conn      *amqp.Connection
	store     repository.ActivityLogStore
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewActivityLogWorker(conn *amqp.Connection, store repository.ActivityLogStore, queueName string) *ActivityLogWorker {
	return &ActivityLogWorker{
		conn:      conn,
		store:     store,
		queueName: queueName,
	}
}

func (w *ActivityLogWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if err := rabbitmq.DeclareQueue(ch, w.queueName); err != nil {
		_ = ch.Close()
		cancel()
		return err
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				switch w.handle(d.Body) {
				case ack:
					_ = d.Ack(false)
				case drop:
					_ = d.Nack(false, false)
				case retry:
					_ = d.Nack(false, !d.Redelivered)
				}
			}
		}
	}()

	return nil
}

// handle stores one event. Redelivered events already stored are acked.
func (w *ActivityLogWorker) handle(body []byte) outcome {
	var event model.ActivityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		log.Printf("worker decode activity event failed: %v", err)
		return drop
	}
	if event.EventID == "" || event.Action == "" {
		log.Printf("worker dropped activity event without id or action")
		return drop
	}

	entry := event.ToLog()
	if err := w.store.Create(&entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return ack
		}
		log.Printf("worker persist activity event %s failed: %v", event.EventID, err)
		return retry
	}
	return ack
}

func (w *ActivityLogWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
