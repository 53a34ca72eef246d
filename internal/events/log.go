package events

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogPublisher writes events to the application log
type LogPublisher struct {
	log logrus.FieldLogger
}

func NewLogPublisher(log logrus.FieldLogger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, ev Event) error {
	p.log.WithFields(logrus.Fields{
		"event":   ev.Type,
		"actor":   ev.ActorID,
		"subject": ev.SubjectID,
		"post":    ev.PostID,
	}).Info("domain event")
	return nil
}

func (p *LogPublisher) Close() error { return nil }
