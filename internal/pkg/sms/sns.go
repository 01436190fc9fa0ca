package sms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSConfig configures the AWS SNS driver.
type SNSConfig struct {
	// Region is the AWS region.
	Region string
	// Endpoint overrides the AWS endpoint (e.g. localstack).
	Endpoint string
	// AccessKey is the static access key ID.
	AccessKey string
	// SecretKey is the static secret access key.
	SecretKey string
	// SessionToken is the optional session token.
	SessionToken string
	// SenderID is shown as the sender on supporting carriers.
	SenderID string
	// SMSType is "Transactional" or "Promotional".
	SMSType string
}

// SNS sends SMS through AWS SNS direct publish.
type SNS struct {
	client   snsAPI
	senderID string
	smsType  string
}

// NewSNS loads AWS configuration and builds an SNS driver.
func NewSNS(ctx context.Context, cfg SNSConfig) (*SNS, error) {
	cfgOpts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		cfgOpts = append(cfgOpts, config.WithRegion(cfg.Region))
	} else if cfg.Endpoint != "" {
		cfgOpts = append(cfgOpts, config.WithRegion("us-east-1"))
	}
	if cfg.AccessKey != "" || cfg.SecretKey != "" {
		cfgOpts = append(cfgOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, cfg.SessionToken),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, cfgOpts...)
	if err != nil {
		return nil, fmt.Errorf("sms: load aws config: %w", err)
	}

	client := sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return newSNSWithClient(client, cfg), nil
}

func newSNSWithClient(client snsAPI, cfg SNSConfig) *SNS {
	smsType := cfg.SMSType
	if smsType == "" {
		smsType = "Transactional"
	}

	return &SNS{
		client:   client,
		senderID: cfg.SenderID,
		smsType:  smsType,
	}
}

// Send publishes the message to the phone number.
func (s *SNS) Send(ctx context.Context, msg Message) (Receipt, error) {
	if err := validate(msg); err != nil {
		return Receipt{}, err
	}

	attrs := map[string]snstypes.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String(s.smsType),
		},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = snstypes.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s.senderID),
		}
	}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(msg.To),
		Message:           aws.String(msg.Body),
		MessageAttributes: attrs,
	})
	if err != nil {
		return Receipt{}, fmt.Errorf("sms: sns publish: %w", err)
	}

	return Receipt{MessageID: aws.ToString(out.MessageId)}, nil
}

// Close implements io.Closer for interface compatibility.
func (s *SNS) Close() error {
	return nil
}
