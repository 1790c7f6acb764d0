package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"golang.org/x/time/rate"
)

// SMTPNotifier sends plain-text mail through a single SMTP relay. A token
// bucket caps the outbound send rate so a burst of password-reset requests
// cannot flood the relay.
type SMTPNotifier struct {
	addr    string // host:port of the relay
	from    string
	limiter *rate.Limiter

	// sendMail is swappable in tests.
	sendMail func(addr, from string, to []string, msg []byte) error
}

// NewSMTPNotifier builds a notifier for the given relay address and sender.
// perSecond bounds the sustained outbound rate; burst allows short spikes.
func NewSMTPNotifier(addr, from string, perSecond float64, burst int) *SMTPNotifier {
	return &SMTPNotifier{
		addr:    addr,
		from:    from,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		sendMail: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, to, subject, body string) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for send slot: %w", err)
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", n.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	msg.WriteString("\r\n")

	if err := n.sendMail(n.addr, n.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("sending mail via %s: %w", n.addr, err)
	}
	return nil
}
