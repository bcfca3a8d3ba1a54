package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Level is the severity of a user-visible notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
)

// Notifier surfaces the outcome of an operation to the operator.
type Notifier interface {
	Success(title, message string)
	Warning(title, message string)
}

// LogNotifier writes notifications to a logrus logger.
type LogNotifier struct {
	log logrus.FieldLogger
}

// NewLogNotifier creates a notifier backed by the given logger
func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(title, message string) {
	n.log.WithFields(logrus.Fields{"title": title, "level": LevelSuccess}).Info(message)
}

func (n *LogNotifier) Warning(title, message string) {
	n.log.WithFields(logrus.Fields{"title": title, "level": LevelWarning}).Warn(message)
}

// Notification is one recorded notification.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// Recorder keeps notifications in memory. The zero value is ready to use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Success(title, message string) {
	r.add(Notification{Level: LevelSuccess, Title: title, Message: message})
}

func (r *Recorder) Warning(title, message string) {
	r.add(Notification{Level: LevelWarning, Title: title, Message: message})
}

func (r *Recorder) add(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of the recorded notifications in order.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Titles returns the titles of recorded notifications with the given level.
func (r *Recorder) Titles(level Level) []string {
	var titles []string
	for _, n := range r.All() {
		if n.Level == level {
			titles = append(titles, n.Title)
		}
	}
	return titles
}

// Reset drops all recorded notifications.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
