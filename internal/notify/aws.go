// internal/notify/aws.go
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	commonaws "banking-assistant/internal/common/aws"
	cerrors "banking-assistant/internal/common/errors"
	"banking-assistant/internal/models"
)

// AWSNotifier sends card block confirmations by SMS (SNS) and loan
// submission confirmations by email (SES).
type AWSNotifier struct {
	snsClient *commonaws.SNSClient
	sesClient *commonaws.SESClient
	sender    string
}

func NewAWSNotifier(ctx context.Context, region, senderEmail string) (*AWSNotifier, error) {
	snsClient, err := commonaws.NewSNSClient(ctx, region)
	if err != nil {
		return nil, err
	}
	sesClient, err := commonaws.NewSESClient(ctx, region)
	if err != nil {
		return nil, err
	}
	return &AWSNotifier{
		snsClient: snsClient,
		sesClient: sesClient,
		sender:    senderEmail,
	}, nil
}

func (n *AWSNotifier) CardBlocked(ctx context.Context, customer models.Customer, cardType models.CardType, lastFour string) error {
	if customer.Phone == "" {
		return cerrors.NewNotificationSendFailedError("sms", fmt.Errorf("customer %s has no phone number", customer.UserID))
	}

	message := fmt.Sprintf("Your %s card ending in %s has been blocked. Contact support if this was not you.", cardType, lastFour)
	_, err := n.snsClient.Publish(ctx, &sns.PublishInput{
		Message:     aws.String(message),
		PhoneNumber: aws.String(customer.Phone),
	})
	if err != nil {
		return cerrors.NewNotificationSendFailedError("sms", err)
	}
	return nil
}

func (n *AWSNotifier) LoanSubmitted(ctx context.Context, customer models.Customer, amount float64, tenureMonths int, requestID string) error {
	if customer.Email == "" {
		return cerrors.NewNotificationSendFailedError("email", fmt.Errorf("customer %s has no email address", customer.UserID))
	}

	subject := "Your loan application has been received"
	body := fmt.Sprintf(
		"Dear %s,\n\nWe received your loan application for INR %.2f over %d months.\nYour reference number is %s. We will be in touch shortly.\n",
		customer.Name, amount, tenureMonths, requestID,
	)

	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(n.sender),
		Destination: &sestypes.Destination{
			ToAddresses: []string{customer.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(body)},
			},
		},
	})
	if err != nil {
		return cerrors.NewNotificationSendFailedError("email", err)
	}
	return nil
}
