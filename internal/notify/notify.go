package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/judgebase/judgebase-api/internal/notify")

var ErrUnknownTemplate = errors.New("unknown email template")

type Template string

const (
	TemplateHackathonApproved Template = "hackathon_approved"
	TemplateJudgeInvited      Template = "judge_invited"
	TemplateJudgeCredentials  Template = "judge_credentials"
)

type Recipient struct {
	// Caller's identifier for the recipient, handed back to SendBulk's callback
	Key   string
	Email string
	Name  string
	// Template data for this recipient
	Data any
}

type BulkResult struct {
	Success int
	Failed  int
}

//go:generate mockgen -destination ./mock/mock.go -package mock . Notifier

// Renders and sends transactional email
type Notifier interface {
	Send(ctx context.Context, tmpl Template, to Recipient) error
	// Sends sequentially in order. each, if non-nil, is called after every
	// attempt with the recipient and its send error.
	SendBulk(
		ctx context.Context,
		tmpl Template,
		recipients []Recipient,
		each func(Recipient, error),
	) BulkResult
}

// Ensure Dispatcher implements Notifier interface.
var _ Notifier = (*Dispatcher)(nil)

type Dispatcher struct {
	mailer    Mailer
	from      string
	templates map[Template]*emailTemplate
	logger    *slog.Logger
}

func NewDispatcher(mailer Mailer, from string, logger *slog.Logger) (*Dispatcher, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		mailer:    mailer,
		from:      from,
		templates: templates,
		logger:    logger,
	}, nil
}

func (d *Dispatcher) Render(tmpl Template, data any) (Message, error) {
	t, ok := d.templates[tmpl]
	if !ok {
		return Message{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, tmpl)
	}

	var subject bytes.Buffer
	if err := t.subject.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("failed to render subject for %s: %w", tmpl, err)
	}

	var body bytes.Buffer
	if err := t.body.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("failed to render body for %s: %w", tmpl, err)
	}

	return Message{
		From:    d.from,
		Subject: subject.String(),
		HTML:    body.String(),
	}, nil
}

func (d *Dispatcher) Send(ctx context.Context, tmpl Template, to Recipient) error {
	ctx, span := tracer.Start(ctx, "Dispatcher.Send", trace.WithAttributes(
		attribute.String("template", string(tmpl)),
	))
	defer span.End()

	msg, err := d.Render(tmpl, to.Data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to render email")
		return err
	}
	msg.To = to.Email

	span.AddEvent("rendered")

	if err := d.mailer.Deliver(ctx, msg); err != nil {
		d.logger.ErrorContext(ctx, "failed to send email",
			"template", tmpl,
			"to", to.Email,
			"error", err,
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deliver email")
		return err
	}

	d.logger.InfoContext(ctx, "sent email", "template", tmpl, "to", to.Email)
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "sent email")
	return nil
}

func (d *Dispatcher) SendBulk(
	ctx context.Context,
	tmpl Template,
	recipients []Recipient,
	each func(Recipient, error),
) BulkResult {
	ctx, span := tracer.Start(ctx, "Dispatcher.SendBulk", trace.WithAttributes(
		attribute.String("template", string(tmpl)),
		attribute.Int("recipients", len(recipients)),
	))
	defer span.End()

	var result BulkResult
	for _, r := range recipients {
		err := d.Send(ctx, tmpl, r)
		if err != nil {
			result.Failed++
		} else {
			result.Success++
		}

		if each != nil {
			each(r, err)
		}
	}

	span.SetAttributes(
		attribute.Int("success", result.Success),
		attribute.Int("failed", result.Failed),
	)
	span.RecordError(nil)
	span.SetStatus(codes.Ok, "bulk send finished")
	return result
}
