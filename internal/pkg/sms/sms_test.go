package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSNSSend(t *testing.T) {
	// Arrange
	client := &fakeSNS{}
	sender := newSNSWithClient(client, SNSConfig{SenderID: "GoSignin"})

	// Act
	receipt, err := sender.Send(context.Background(), Message{To: "+8613800138000", Body: "your code is 123456"})

	// Assert
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if receipt.MessageID != "msg-1" {
		t.Fatalf("message id = %q, want msg-1", receipt.MessageID)
	}
	if aws.ToString(client.input.PhoneNumber) != "+8613800138000" {
		t.Fatalf("unexpected phone number %q", aws.ToString(client.input.PhoneNumber))
	}
	if aws.ToString(client.input.Message) != "your code is 123456" {
		t.Fatalf("unexpected message %q", aws.ToString(client.input.Message))
	}
	if got := aws.ToString(client.input.MessageAttributes["AWS.SNS.SMS.SMSType"].StringValue); got != "Transactional" {
		t.Fatalf("sms type = %q, want Transactional", got)
	}
	if got := aws.ToString(client.input.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue); got != "GoSignin" {
		t.Fatalf("sender id = %q, want GoSignin", got)
	}
}

func TestSNSSendError(t *testing.T) {
	boom := errors.New("throttled")
	sender := newSNSWithClient(&fakeSNS{err: boom}, SNSConfig{})

	_, err := sender.Send(context.Background(), Message{To: "+8613800138000", Body: "hi"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected provider error to be wrapped, got %v", err)
	}
}

func TestSendValidation(t *testing.T) {
	client := &fakeSNS{}
	senders := map[string]Sender{
		"sns": newSNSWithClient(client, SNSConfig{}),
		"log": NewLog(),
	}

	for name, s := range senders {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Send(context.Background(), Message{Body: "x"}); !errors.Is(err, ErrNoRecipient) {
				t.Fatalf("expected ErrNoRecipient, got %v", err)
			}
			if _, err := s.Send(context.Background(), Message{To: "+8613800138000"}); !errors.Is(err, ErrEmptyBody) {
				t.Fatalf("expected ErrEmptyBody, got %v", err)
			}
		})
	}

	if client.input != nil {
		t.Fatal("invalid messages must not reach the gateway")
	}
}

func TestLogSendAssignsIDs(t *testing.T) {
	sender := NewLog()

	first, err := sender.Send(context.Background(), Message{To: "13800138000", Body: "a"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	second, err := sender.Send(context.Background(), Message{To: "13800138000", Body: "b"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if first.MessageID == "" || first.MessageID == second.MessageID {
		t.Fatalf("expected distinct message ids, got %q and %q", first.MessageID, second.MessageID)
	}
}

func TestNewFromDriver(t *testing.T) {
	s, err := NewFromDriver(context.Background(), " log ", FactoryOptions{})
	if err != nil {
		t.Fatalf("log driver: %v", err)
	}
	if _, ok := s.(*Log); !ok {
		t.Fatalf("expected *Log, got %T", s)
	}

	if _, err := NewFromDriver(context.Background(), "carrier-pigeon", FactoryOptions{}); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}
