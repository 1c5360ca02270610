package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/khoahotran/skillfolio/internal/application/service"
	"github.com/khoahotran/skillfolio/internal/config"
	"github.com/khoahotran/skillfolio/pkg/logger"
)

// sender is satisfied by *gomail.Dialer.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailNotifier struct {
	from   string
	dialer sender
	logger logger.Logger
}

var _ service.Notifier = (*EmailNotifier)(nil)

// NewEmailNotifier returns a notifier that silently skips sending when SMTP is
// not configured.
func NewEmailNotifier(cfg config.Config, log logger.Logger) *EmailNotifier {
	n := &EmailNotifier{from: cfg.SMTP.From, logger: log}
	if cfg.SMTP.Host != "" && cfg.SMTP.User != "" && cfg.SMTP.From != "" {
		n.dialer = gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass)
	}
	return n
}

func (n *EmailNotifier) Send(_ context.Context, to, subject, htmlBody string) error {
	if n.dialer == nil {
		n.logger.Warn("email config missing, skip notification", zap.String("subject", subject))
		return nil
	}
	if strings.TrimSpace(to) == "" {
		n.logger.Warn("email recipient empty, skip notification", zap.String("subject", subject))
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "[Skillfolio] "+subject)
	m.SetBody("text/html", htmlBody)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("email notification sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// VerificationEmail renders the body sent to a verification participant.
func VerificationEmail(heading, skillName, counterpart, detail string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937;">
  <div style="max-width: 560px; margin: 0 auto; padding: 16px;">
    <h2>%s</h2>
    <p><strong>Skill:</strong> %s</p>
    <p><strong>With:</strong> %s</p>
    <p>%s</p>
  </div>
</body>
</html>`, escape(heading), escape(skillName), escape(counterpart), escape(detail))
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")

func escape(s string) string {
	return htmlEscaper.Replace(s)
}
