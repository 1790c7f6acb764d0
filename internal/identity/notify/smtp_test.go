package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSMTPNotifierSend(t *testing.T) {
	t.Parallel()

	n := NewSMTPNotifier("relay:25", "no-reply@example.com", 100, 10)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	n.sendMail = func(addr, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	err := n.Send(context.Background(), "alice@example.com", "Password reset request", "body text")
	require.NoError(t, err)

	require.Equal(t, "relay:25", gotAddr)
	require.Equal(t, "no-reply@example.com", gotFrom)
	require.Equal(t, []string{"alice@example.com"}, gotTo)

	msg := string(gotMsg)
	require.Contains(t, msg, "To: alice@example.com\r\n")
	require.Contains(t, msg, "Subject: Password reset request\r\n")
	require.True(t, strings.HasSuffix(msg, "body text\r\n"))
}

func TestSMTPNotifierWrapsSendErrors(t *testing.T) {
	t.Parallel()

	n := NewSMTPNotifier("relay:25", "no-reply@example.com", 100, 10)
	sentinel := errors.New("connection refused")
	n.sendMail = func(string, string, []string, []byte) error { return sentinel }

	err := n.Send(context.Background(), "alice@example.com", "s", "b")
	require.ErrorIs(t, err, sentinel)
}

func TestSMTPNotifierHonorsContextWhileRateLimited(t *testing.T) {
	t.Parallel()

	// Zero burst means Wait can never acquire a slot; cancellation must
	// surface instead of blocking forever.
	n := NewSMTPNotifier("relay:25", "no-reply@example.com", 0, 0)
	n.sendMail = func(string, string, []string, []byte) error { return nil }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Send(ctx, "alice@example.com", "s", "b")
	require.Error(t, err)
}
