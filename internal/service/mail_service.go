package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/osa911/portfolio-contact/internal/api/sanitization"
	"github.com/osa911/portfolio-contact/internal/config"
	"github.com/osa911/portfolio-contact/internal/logging"
	"github.com/osa911/portfolio-contact/internal/models"
)

// relay is a resolved SMTP endpoint
type relay struct {
	host   string
	port   int
	secure bool
}

// wellKnownRelays maps SMTP_SERVICE names to their endpoints
var wellKnownRelays = map[string]relay{
	"gmail":    {host: "smtp.gmail.com", port: 465, secure: true},
	"outlook":  {host: "smtp-mail.outlook.com", port: 587},
	"hotmail":  {host: "smtp-mail.outlook.com", port: 587},
	"yahoo":    {host: "smtp.mail.yahoo.com", port: 465, secure: true},
	"icloud":   {host: "smtp.mail.me.com", port: 587},
	"zoho":     {host: "smtp.zoho.com", port: 465, secure: true},
	"sendgrid": {host: "smtp.sendgrid.net", port: 587},
	"mailgun":  {host: "smtp.mailgun.org", port: 587},
}

// resolveRelay picks host/port/secure from SMTP_HOST or a well-known service.
// An explicit SMTP_PORT always wins over the service defaults.
func resolveRelay(c config.SMTPConfig) relay {
	r := relay{host: c.Host, port: c.Port, secure: c.Secure}

	if known, ok := wellKnownRelays[strings.ToLower(c.Service)]; ok && c.Host == "" {
		r = known
		if c.Port != 0 {
			r.port = c.Port
			r.secure = c.Secure
		}
	}

	if r.port == 0 {
		if r.secure {
			r.port = 465
		} else {
			r.port = 587
		}
	}
	return r
}

// normalizeSMTPPassword strips whitespace from app passwords of providers that
// display them in space-separated groups but reject them that way.
func normalizeSMTPPassword(service, host, user, pass string) string {
	gmailLike := strings.EqualFold(service, "gmail") ||
		strings.Contains(strings.ToLower(host), "gmail.com") ||
		strings.HasSuffix(strings.ToLower(user), "@gmail.com")
	if gmailLike {
		return sanitization.StripWhitespace(pass)
	}
	return pass
}

// smtpClient is the subset of *smtp.Client used by MailService
type smtpClient interface {
	Auth(a smtp.Auth) error
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

type dialFunc func(ctx context.Context) (smtpClient, error)

// MailService relays stored messages to the site owner over SMTP
type MailService struct {
	service    string
	relay      relay
	user       string
	pass       string
	to         string
	from       string
	timeout    time.Duration
	configured bool
	logger     *logging.Logger
	dial       dialFunc
	now        func() time.Time
}

// NewMailService creates a mail service from the relay configuration
func NewMailService(cfg *config.Config, logger *logging.Logger) *MailService {
	smtpCfg := cfg.SMTP
	s := &MailService{
		service: smtpCfg.Service,
		relay:   resolveRelay(smtpCfg),
		user:    smtpCfg.User,
		pass:    normalizeSMTPPassword(smtpCfg.Service, smtpCfg.Host, smtpCfg.User, smtpCfg.Pass),
		to:      cfg.ContactTo,
		from:    cfg.ContactFrom,
		timeout: smtpCfg.Timeout,
		configured: (smtpCfg.Service != "" || smtpCfg.Host != "") &&
			smtpCfg.User != "" && smtpCfg.Pass != "" && cfg.ContactTo != "",
		logger: logger,
		now:    time.Now,
	}
	if s.from == "" {
		s.from = s.user
	}
	s.dial = s.dialRelay
	return s
}

// Configured reports whether relay, credentials and destination are all present
func (s *MailService) Configured() bool {
	return s.configured
}

// Relay describes the resolved endpoint for diagnostics
func (s *MailService) Relay() string {
	if s.relay.host == "" {
		return ""
	}
	return net.JoinHostPort(s.relay.host, strconv.Itoa(s.relay.port))
}

func (s *MailService) dialRelay(ctx context.Context) (smtpClient, error) {
	if s.relay.host == "" {
		return nil, fmt.Errorf("unknown SMTP service %q and no SMTP_HOST", s.service)
	}

	addr := net.JoinHostPort(s.relay.host, strconv.Itoa(s.relay.port))
	dialer := &net.Dialer{Timeout: s.timeout}
	tlsConfig := &tls.Config{ServerName: s.relay.host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	if s.relay.secure {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return nil, err
	}

	// Bound the whole session, not only the connect
	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		conn.Close()
		return nil, err
	}

	client, err := smtp.NewClient(conn, s.relay.host)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if !s.relay.secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(tlsConfig); err != nil {
				client.Close()
				return nil, err
			}
		}
	}
	return client, nil
}

func (s *MailService) auth() smtp.Auth {
	return smtp.PlainAuth("", s.user, s.pass, s.relay.host)
}

// connect dials the relay and authenticates
func (s *MailService) connect(ctx context.Context) (smtpClient, error) {
	client, err := s.dial(ctx)
	if err != nil {
		return nil, &DeliveryError{Stage: "connect", Err: err}
	}
	if err := client.Auth(s.auth()); err != nil {
		client.Close()
		return nil, classify("AUTH", err)
	}
	return client, nil
}

// Verify performs a connect + AUTH handshake without sending anything
func (s *MailService) Verify(ctx context.Context) error {
	if !s.configured {
		return ErrRelayNotConfigured
	}

	client, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Quit(); err != nil {
		s.logger.Warn("SMTP QUIT after verify failed: %v", err)
	}
	return nil
}

// Send delivers msg to the configured destination
func (s *MailService) Send(ctx context.Context, msg *models.StoredMessage) error {
	if !s.configured {
		return ErrRelayNotConfigured
	}

	body, err := s.compose(msg)
	if err != nil {
		return &DeliveryError{Stage: "compose", Err: err}
	}

	client, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Mail(s.from); err != nil {
		return classify("MAIL FROM", err)
	}
	if err := client.Rcpt(s.to); err != nil {
		return classify("RCPT TO", err)
	}

	w, err := client.Data()
	if err != nil {
		return classify("DATA", err)
	}
	if _, err := w.Write(body); err != nil {
		w.Close()
		return classify("DATA", err)
	}
	if err := w.Close(); err != nil {
		return classify("DATA", err)
	}

	if err := client.Quit(); err != nil {
		// The relay already accepted the message
		s.logger.Warn("SMTP QUIT after send failed: %v", err)
	}
	return nil
}

// classify maps authentication reply codes to DeliveryAuthError
func classify(stage string, err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) {
		switch tpErr.Code {
		case 530, 534, 535:
			return &DeliveryAuthError{Err: err}
		}
	}
	return &DeliveryError{Stage: stage, Err: err}
}

// compose builds a multipart/alternative message with text and HTML parts
func (s *MailService) compose(msg *models.StoredMessage) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	text := strings.Join([]string{
		"Name: " + msg.Name,
		"Email: " + msg.Email,
		"",
		"Message:",
		msg.Message,
	}, "\n")

	html := "<h2>New message from portfolio</h2>\n" +
		"<p><strong>Name:</strong> " + sanitization.EscapeHTML(msg.Name) + "</p>\n" +
		"<p><strong>Email:</strong> " + sanitization.EscapeHTML(msg.Email) + "</p>\n" +
		"<p><strong>Subject:</strong> " + sanitization.EscapeHTML(msg.Subject) + "</p>\n" +
		"<p><strong>Message:</strong></p>\n" +
		"<p>" + sanitization.MessageToHTML(msg.Message) + "</p>\n"

	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=utf-8", text},
		{"text/html; charset=utf-8", html},
	} {
		pw, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, err
		}
		qp := quotedprintable.NewWriter(pw)
		if _, err := qp.Write([]byte(part.content)); err != nil {
			return nil, err
		}
		if err := qp.Close(); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	subject := "[Portfolio] " + sanitization.HeaderValue(msg.Subject)

	var out bytes.Buffer
	headers := []string{
		"From: " + s.from,
		"To: " + s.to,
		"Reply-To: " + sanitization.HeaderValue(msg.Email),
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"Date: " + s.now().Format(time.RFC1123Z),
		"Message-ID: <" + msg.ID + "." + strconv.FormatInt(s.now().UnixNano(), 36) + "@" + messageIDHost(s.from) + ">",
		"MIME-Version: 1.0",
		"Content-Type: multipart/alternative; boundary=" + mw.Boundary(),
	}
	for _, h := range headers {
		out.WriteString(h + "\r\n")
	}
	out.WriteString("\r\n")
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func messageIDHost(from string) string {
	if i := strings.LastIndex(from, "@"); i >= 0 && i < len(from)-1 {
		return strings.Trim(from[i+1:], "<> ")
	}
	return "localhost"
}
