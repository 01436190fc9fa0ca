package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/gosignin/internal/auth/usecase"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/messaging"
	"github.com/shandysiswandi/gosignin/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishUserSignedIn(ctx context.Context, msg usecase.UserSignedInEvent) error {
	ctx, span := m.ins.Tracer("auth.outbound.mq").Start(ctx, "PublishUserSignedIn")
	defer span.End()

	body, err := json.Marshal(event.UserSignedInMessage{
		EventID:    msg.EventID,
		IdentityID: msg.IdentityID,
		Channel:    msg.Channel.String(),
		Username:   msg.Username,
		SignedInAt: msg.SignedInAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.UserSignedInDestination, messaging.OutgoingMessage{
		Body:        body,
		Key:         []byte(msg.IdentityID),
		OrderingKey: msg.IdentityID,
		Headers:     []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
