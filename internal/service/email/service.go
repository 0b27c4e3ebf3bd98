package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"bidproposal-backend/internal/config"
)

type Service interface {
	SendRegistrationEmail(ctx context.Context, toEmail, fullName string) error
	SendReviewRequest(ctx context.Context, toEmail, reviewerName, documentName string) error
	SendReviewResult(ctx context.Context, toEmail, creatorName, documentName, status string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return &service{
		client: client,
		config: cfg,
	}
}

func (s *service) SendRegistrationEmail(ctx context.Context, toEmail, fullName string) error {
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Welcome, %s!</h2>
	<p>Your Bid Proposal account has been created. You can now draft, review and
	approve proposal documents with your team.</p>
	<p style="margin: 30px 0;">
		<a href="http://%s/login" style="background-color: #2563eb; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Sign in</a>
	</p>
	<p style="color: #6b7280; font-size: 14px;">If you did not expect this email, you can safely ignore it.</p>
</div>`, fullName, s.config.Domain)

	return s.send(ctx, toEmail, "Welcome to Bid Proposal", html)
}

func (s *service) SendReviewRequest(ctx context.Context, toEmail, reviewerName, documentName string) error {
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Review requested</h2>
	<p>Hi %s,</p>
	<p>The proposal <strong>%s</strong> has been submitted for review and is
	waiting for your decision.</p>
	<p style="margin: 30px 0;">
		<a href="http://%s/documents" style="background-color: #2563eb; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Open review queue</a>
	</p>
</div>`, reviewerName, documentName, s.config.Domain)

	return s.send(ctx, toEmail, fmt.Sprintf("Review requested: %s", documentName), html)
}

func (s *service) SendReviewResult(ctx context.Context, toEmail, creatorName, documentName, status string) error {
	html := fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Review update</h2>
	<p>Hi %s,</p>
	<p>Your proposal <strong>%s</strong> has been reviewed. Its status is now
	<strong>%s</strong>.</p>
	<p style="margin: 30px 0;">
		<a href="http://%s/documents" style="background-color: #2563eb; color: #ffffff; padding: 12px 24px; text-decoration: none; border-radius: 6px;">View document</a>
	</p>
</div>`, creatorName, documentName, status, s.config.Domain)

	return s.send(ctx, toEmail, fmt.Sprintf("Review update: %s", documentName), html)
}

func (s *service) send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Bid Proposal <%s>", s.config.FromEmail),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
