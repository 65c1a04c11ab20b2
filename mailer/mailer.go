// Copyright © 2021 Luther Systems, Ltd. All right reserved.

// Package mailer sends schedule notification email via AWS SES. The
// schedule API's notify loop renders an upcoming fire's summary through
// package notify and hands the HTML body to Send.
package mailer

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
)

const (
	// CharSet is the character set used in all SES emails.
	CharSet = "UTF-8"
)

// SES sends email notifications via AWS SES.
type SES struct {
	sender string
	svc    *ses.SES
}

// NewSES constructs a new mailer that uses AWS SES to send emails from
// sender in region.
func NewSES(region string, sender string) (*SES, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region)},
	)
	if err != nil {
		return nil, err
	}
	return &SES{
		sender: sender,
		svc:    ses.New(sess),
	}, nil
}

// Send sends an HTML email to a single recipient. The context bounds the
// SES API call.
func (m *SES) Send(ctx context.Context, content string, email string, subject string) error {
	input := &ses.SendEmailInput{
		Destination: &ses.Destination{
			ToAddresses: []*string{
				aws.String(email),
			},
		},
		Message: &ses.Message{
			Body: &ses.Body{
				Html: &ses.Content{
					Charset: aws.String(CharSet),
					Data:    aws.String(content),
				},
			},
			Subject: &ses.Content{
				Charset: aws.String(CharSet),
				Data:    aws.String(subject),
			},
		},
		Source: aws.String(m.sender),
	}
	_, err := m.svc.SendEmailWithContext(ctx, input)
	return err
}
