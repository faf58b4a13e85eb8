package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"flyerwatch/internal/config"
	"flyerwatch/internal/domain"
	"flyerwatch/internal/notify"
	"flyerwatch/internal/port"
)

type sesSender struct {
	client         *sesv2.Client
	fromAddress    string
	fromName       string
	addressPattern string
}

// NewSESSender creates an SES-backed NotificationSender that delivers the
// digest by email. The recipient address is rendered from AddressPattern,
// e.g. "user-%d@digest.flyerwatch.app".
func NewSESSender(cfg *config.EmailConfig) (port.NotificationSender, error) {
	if cfg.AddressPattern == "" {
		return nil, fmt.Errorf("ses: address_pattern is required")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:         sesv2.NewFromConfig(awsCfg),
		fromAddress:    cfg.FromAddress,
		fromName:       cfg.FromName,
		addressPattern: cfg.AddressPattern,
	}, nil
}

func (s *sesSender) Send(ctx context.Context, batch domain.NotificationBatch) error {
	to := fmt.Sprintf(s.addressPattern, batch.UserID)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	subject := "Flyer updates"
	text := notify.RenderText(batch)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &text},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}
