// Package notify delivers the one-line summary each intake run produces to
// whoever triggered it: the process log, an email list through SES or an
// SNS topic.
package notify

import (
	"context"
	stderrors "errors"
	"fmt"

	awsclients "intake-workers/internal/common/aws"
	"intake-workers/internal/common/config"
	"intake-workers/internal/common/errors"
	"intake-workers/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

const (
	ChannelLog   = "log"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Message is one run summary.
type Message struct {
	Kind  string
	RunID string
	Text  string
}

type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// New builds the notifier for the configured channels.
func New(ctx context.Context, cfg config.NotificationConfig, log logger.Logger) (Notifier, error) {
	var (
		notifiers []Notifier
		awsLoaded bool
		awsCfg    aws.Config
	)
	loadAWS := func() error {
		if awsLoaded {
			return nil
		}
		c, err := awsclients.LoadConfig(ctx, cfg.AWS.Region)
		if err != nil {
			return err
		}
		awsCfg, awsLoaded = c, true
		return nil
	}

	for _, ch := range cfg.Channels {
		switch ch {
		case ChannelLog:
			notifiers = append(notifiers, NewLogNotifier(log))
		case ChannelEmail:
			if err := loadAWS(); err != nil {
				return nil, err
			}
			notifiers = append(notifiers, NewSESNotifier(awsclients.NewSESClient(awsCfg),
				cfg.Email.FromEmail, cfg.Email.Recipients, cfg.Email.Subject))
		case ChannelSMS:
			if err := loadAWS(); err != nil {
				return nil, err
			}
			notifiers = append(notifiers, NewSNSNotifier(awsclients.NewSNSClient(awsCfg), cfg.SMS.TopicARN))
		default:
			return nil, fmt.Errorf("notifications: unknown channel %q", ch)
		}
	}

	if len(notifiers) == 1 {
		return notifiers[0], nil
	}
	return NewMulti(log, notifiers...), nil
}

type LogNotifier struct {
	logger logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

func (n *LogNotifier) Notify(_ context.Context, msg Message) error {
	n.logger.Info(msg.Text, map[string]interface{}{
		"channel": ChannelLog,
		"kind":    msg.Kind,
		"runId":   msg.RunID,
	})
	return nil
}

type SESNotifier struct {
	client     awsclients.SESAPI
	from       string
	recipients []string
	subject    string
}

func NewSESNotifier(client awsclients.SESAPI, from string, recipients []string, subject string) *SESNotifier {
	return &SESNotifier{client: client, from: from, recipients: recipients, subject: subject}
}

func (n *SESNotifier) Notify(ctx context.Context, msg Message) error {
	subject := n.subject
	if msg.Kind != "" {
		subject = fmt.Sprintf("%s: %s", n.subject, msg.Kind)
	}

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      aws.String(n.from),
		Destination: &types.Destination{ToAddresses: n.recipients},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Text)},
			},
		},
	})
	if err != nil {
		return errors.NewNotificationSendFailedError(ChannelEmail, err)
	}
	return nil
}

type SNSNotifier struct {
	client   awsclients.SNSAPI
	topicARN string
}

func NewSNSNotifier(client awsclients.SNSAPI, topicARN string) *SNSNotifier {
	return &SNSNotifier{client: client, topicARN: topicARN}
}

func (n *SNSNotifier) Notify(ctx context.Context, msg Message) error {
	_, err := n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(msg.Text),
	})
	if err != nil {
		return errors.NewNotificationSendFailedError(ChannelSMS, err)
	}
	return nil
}

// Multi sends to every notifier and reports all failures together.
type Multi struct {
	logger    logger.Logger
	notifiers []Notifier
}

func NewMulti(log logger.Logger, notifiers ...Notifier) *Multi {
	return &Multi{logger: log, notifiers: notifiers}
}

func (m *Multi) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, msg); err != nil {
			m.logger.Warn("notification failed", map[string]interface{}{
				"error": err,
				"kind":  msg.Kind,
			})
			errs = append(errs, err)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return stderrors.Join(errs...)
	}
}
