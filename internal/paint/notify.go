package paint

import (
	"fmt"
	"log"
)

// Notifier shows short messages to the user, e.g. as a toast.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// LogNotifier writes messages to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Notify(msg string) { log.Println(msg) }

func (s *Session) notifyf(format string, args ...any) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(fmt.Sprintf(format, args...))
}
