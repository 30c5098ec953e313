package notify

import (
	"log/slog"
	"time"
)

// Notifier is the fire-and-forget sink every advisory and alert goes to.
type Notifier interface {
	Send(title, body string)
}

type Notification struct {
	Title  string
	Body   string
	SentAt time.Time
}

type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logger}
}

func (n LogNotifier) Send(title, body string) {
	n.logger.Info("notification", "title", title, "body", body)
}

// Channel delivers notifications to a consumer such as the dashboard.
// Sends never block; when the consumer lags the notification is dropped.
type Channel struct {
	ch chan Notification
}

func NewChannel(depth int) *Channel {
	return &Channel{ch: make(chan Notification, depth)}
}

func (c *Channel) Send(title, body string) {
	select {
	case c.ch <- Notification{Title: title, Body: body, SentAt: time.Now()}:
	default:
	}
}

func (c *Channel) C() <-chan Notification {
	return c.ch
}

// Fanout forwards to every wrapped notifier in order.
type Fanout []Notifier

func (f Fanout) Send(title, body string) {
	for _, n := range f {
		if n != nil {
			n.Send(title, body)
		}
	}
}
