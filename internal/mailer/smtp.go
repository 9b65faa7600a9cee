package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"time"
)

// SMTPMailer sends mail through a plain SMTP relay. The relay accepts
// unauthenticated mail from inside the network, so there is no auth step.
type SMTPMailer struct {
	Host       string
	Port       int
	Sender     string
	Recipients []string

	dialTimeout time.Duration
}

func NewSMTPMailer(host string, port int, sender string, recipients []string) *SMTPMailer {
	return &SMTPMailer{
		Host:        host,
		Port:        port,
		Sender:      sender,
		Recipients:  recipients,
		dialTimeout: 10 * time.Second,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, email Email) error {
	raw, err := buildMessage(m.Sender, m.Recipients, email)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
	dialer := &net.Dialer{Timeout: m.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", addr, err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Quit()

	if err := c.Mail(m.Sender); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range m.Recipients {
		if err := c.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	return w.Close()
}

// buildMessage renders the RFC 5322 message. With an attachment the body
// becomes multipart/mixed with the file base64-encoded.
func buildMessage(sender string, recipients []string, email Email) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "From: %s\r\n", sender)
	fmt.Fprintf(&buf, "To: %s\r\n", joinAddresses(recipients))
	fmt.Fprintf(&buf, "Subject: %s\r\n", email.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")

	if email.Attachment == nil {
		buf.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
		buf.WriteString(email.Body)
		buf.WriteString("\r\n")
		return buf.Bytes(), nil
	}

	mw := multipart.NewWriter(&buf)
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", mw.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	part, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write([]byte(email.Body)); err != nil {
		return nil, err
	}

	att := email.Attachment
	attHeader := textproto.MIMEHeader{}
	attHeader.Set("Content-Type", att.ContentType)
	attHeader.Set("Content-Transfer-Encoding", "base64")
	attHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
	part, err = mw.CreatePart(attHeader)
	if err != nil {
		return nil, err
	}
	enc := base64.NewEncoder(base64.StdEncoding, part)
	if _, err := enc.Write(att.Content); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func joinAddresses(addrs []string) string {
	out := ""
	for i, a := range addrs {
		if i > 0 {
			out += ", "
		}
		out += a
	}
	return out
}
