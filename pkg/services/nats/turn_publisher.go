package natsservice

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/mynaparrot/plugnmeet-tutor/pkg/dialogue"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// TurnEvent is published once per completed exchange.
type TurnEvent struct {
	SessionId string        `json:"session_id"`
	Sequence  int           `json:"sequence"`
	User      dialogue.Turn `json:"user"`
	Assistant dialogue.Turn `json:"assistant"`
	CreatedAt time.Time     `json:"created_at"`
}

// TurnPublisher sends every exchange of one session to <subject>.<session id>.
type TurnPublisher struct {
	nc        *nats.Conn
	subject   string
	sessionId string
	sequence  int
	logger    *logrus.Entry
}

func NewTurnPublisher(nc *nats.Conn, subject string, logger *logrus.Entry) *TurnPublisher {
	sessionId := uuid.NewString()
	return &TurnPublisher{
		nc:        nc,
		subject:   subject + "." + sessionId,
		sessionId: sessionId,
		logger:    logger.WithFields(logrus.Fields{"component": "turn-publisher", "sessionId": sessionId}),
	}
}

func (p *TurnPublisher) SessionId() string {
	return p.sessionId
}

func (p *TurnPublisher) Subject() string {
	return p.subject
}

// OnExchange implements session.TurnObserver.
func (p *TurnPublisher) OnExchange(_ context.Context, user, assistant dialogue.Turn) error {
	p.sequence++
	msg, err := json.Marshal(&TurnEvent{
		SessionId: p.sessionId,
		Sequence:  p.sequence,
		User:      user,
		Assistant: assistant,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	if err = p.nc.Publish(p.subject, msg); err != nil {
		return err
	}
	p.logger.WithField("sequence", p.sequence).Debugln("exchange published")
	return nil
}
