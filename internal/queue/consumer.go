package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const checkInLogFile = "logs/checkin.log"

// StartCheckInConsumer runs a blocking consume loop over the checkin.recorded
// queue and appends one line per check-in to logs/checkin.log.  On any broker
// failure it waits and reconnects; call it in its own goroutine.
func StartCheckInConsumer() {
	for {
		if err := consumeCheckIns(); err != nil {
			log.Printf("checkin consumer: %v (retrying in 5s)", err)
		}
		time.Sleep(5 * time.Second)
	}
}

func consumeCheckIns() error {
	conn, err := amqp.Dial(brokerURL())
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(checkInQueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := ch.Consume(checkInQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	log.Printf("checkin consumer: waiting for messages on %q", checkInQueueName)
	for d := range deliveries {
		if err := recordCheckIn(checkInLogFile, d.Body); err != nil {
			log.Printf("checkin consumer: record failed: %v", err)
			// Never requeue: with Qos(1) a poison message would
			// redeliver in a tight loop and starve everything behind it.
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
	return fmt.Errorf("delivery channel closed")
}

func recordCheckIn(path string, body []byte) error {
	var event CheckInRecordedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	gate := "-"
	if event.Gate != nil {
		gate = *event.Gate
	}
	line := fmt.Sprintf("%s checkin=%d registration=%d event=%d (%s) attendee=%q gate=%s\n",
		event.CheckedInAt, event.CheckInID, event.RegistrationID, event.EventID,
		event.EventTitle, event.AttendeeName, gate)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}
