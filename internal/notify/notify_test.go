package notify_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgebase/judgebase-api/internal/logger"
	"github.com/judgebase/judgebase-api/internal/notify"
)

type recordingMailer struct {
	sent []notify.Message
	fail map[string]bool
}

func (m *recordingMailer) Deliver(_ context.Context, msg notify.Message) error {
	if m.fail[msg.To] {
		return errors.New("mailbox unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newDispatcher(t *testing.T, mailer notify.Mailer) *notify.Dispatcher {
	t.Helper()
	d, err := notify.NewDispatcher(mailer, "JudgeBase <noreply@judgebase.dev>", logger.Logger)
	require.NoError(t, err)
	return d
}

func TestRender(t *testing.T) {
	d := newDispatcher(t, &recordingMailer{})

	t.Run("HackathonApproved", func(t *testing.T) {
		msg, err := d.Render(notify.TemplateHackathonApproved, notify.HackathonApprovedData{
			OrganizerName: "Ada",
			HackathonName: "HackX",
			Email:         "ada@example.com",
			Password:      "s3cr3t!Pass1",
			LoginURL:      "https://judgebase.dev/organizer",
		})
		require.NoError(t, err)
		assert.Equal(t, `Your hackathon "HackX" has been approved`, msg.Subject)
		assert.Contains(t, msg.HTML, "s3cr3t!Pass1")
		assert.Contains(t, msg.HTML, "ada@example.com")
		assert.Equal(t, "JudgeBase <noreply@judgebase.dev>", msg.From)
	})

	t.Run("JudgeInvitedEscapesMessage", func(t *testing.T) {
		msg, err := d.Render(notify.TemplateJudgeInvited, notify.JudgeInvitedData{
			JudgeName:     "Jane",
			HackathonName: "HackX",
			Message:       "<script>alert(1)</script>",
			PortalURL:     "https://judgebase.dev/judge",
		})
		require.NoError(t, err)
		assert.Equal(t, "You're invited to judge HackX", msg.Subject)
		assert.NotContains(t, msg.HTML, "<script>")
		assert.Contains(t, msg.HTML, "An organizer")
	})

	t.Run("JudgeCredentials", func(t *testing.T) {
		msg, err := d.Render(notify.TemplateJudgeCredentials, notify.JudgeCredentialsData{
			JudgeName: "Jane",
			Email:     "jane@example.com",
			Password:  "abcDEF123!@#",
			LoginURL:  "https://judgebase.dev/judge",
		})
		require.NoError(t, err)
		assert.Contains(t, msg.HTML, "abcDEF123!@#")
		assert.NotContains(t, msg.HTML, "public profile")
	})

	t.Run("UnknownTemplate", func(t *testing.T) {
		_, err := d.Render("nope", nil)
		assert.ErrorIs(t, err, notify.ErrUnknownTemplate)
	})

	t.Run("MissingField", func(t *testing.T) {
		_, err := d.Render(notify.TemplateJudgeCredentials, map[string]string{})
		assert.Error(t, err)
	})
}

func TestSendBulk(t *testing.T) {
	mailer := &recordingMailer{fail: map[string]bool{"bad@example.com": true}}
	d := newDispatcher(t, mailer)

	recipients := []notify.Recipient{}
	for _, email := range []string{"a@example.com", "bad@example.com", "b@example.com"} {
		recipients = append(recipients, notify.Recipient{
			Email: email,
			Data: notify.JudgeInvitedData{
				JudgeName:     email,
				HackathonName: "HackX",
				PortalURL:     "https://judgebase.dev/judge",
			},
		})
	}

	var order []string
	var failed []string
	result := d.SendBulk(context.Background(), notify.TemplateJudgeInvited, recipients,
		func(r notify.Recipient, err error) {
			order = append(order, r.Email)
			if err != nil {
				failed = append(failed, r.Email)
			}
		})

	assert.Equal(t, notify.BulkResult{Success: 2, Failed: 1}, result)
	assert.Equal(t, []string{"a@example.com", "bad@example.com", "b@example.com"}, order)
	assert.Equal(t, []string{"bad@example.com"}, failed)
	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "a@example.com", mailer.sent[0].To)
	assert.Equal(t, "b@example.com", mailer.sent[1].To)
}

func TestNoopMailer(t *testing.T) {
	d := newDispatcher(t, notify.NewNoopMailer(logger.Logger))

	err := d.Send(context.Background(), notify.TemplateJudgeCredentials, notify.Recipient{
		Email: "jane@example.com",
		Data: notify.JudgeCredentialsData{
			JudgeName: "Jane",
			Email:     "jane@example.com",
			Password:  "pw",
			LoginURL:  "https://judgebase.dev/judge",
		},
	})
	assert.NoError(t, err)
}

func TestHTTPMailer(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/emails" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		if strings.HasPrefix(got["to"].([]any)[0].(string), "reject") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message": "invalid recipient"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id": "email-1"}`))
	}))
	defer srv.Close()

	m, err := notify.NewHTTPMailer(srv.URL, "re_test", logger.Logger)
	require.NoError(t, err)

	t.Run("Delivered", func(t *testing.T) {
		err := m.Deliver(context.Background(), notify.Message{
			From:    "noreply@judgebase.dev",
			To:      "jane@example.com",
			Subject: "hi",
			HTML:    "<p>hi</p>",
		})
		require.NoError(t, err)
		assert.Equal(t, "Bearer re_test", auth)
		assert.Equal(t, "noreply@judgebase.dev", got["from"])
		assert.Equal(t, []any{"jane@example.com"}, got["to"])
		assert.Equal(t, "hi", got["subject"])
	})

	t.Run("Rejected", func(t *testing.T) {
		err := m.Deliver(context.Background(), notify.Message{To: "reject@example.com"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid recipient")
	})
}
