package providers

import (
	"github.com/samber/do/v2"

	"github.com/ubiquitousdiaries/diaries-server/internal/config"
	"github.com/ubiquitousdiaries/diaries-server/internal/logger"
	"github.com/ubiquitousdiaries/diaries-server/internal/mail"
)

// ProvideMailer provides the outgoing mail transport. Without an SMTP host
// configured, emails are written to the log instead.
func ProvideMailer(i do.Injector) (mail.Mailer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Mail.Host == "" {
		log.Warn("No SMTP host configured - emails will be logged, not delivered")
		return mail.NewLogMailer(log.Logger), nil
	}

	log.Info("SMTP mailer configured", "host", cfg.Mail.Host, "port", cfg.Mail.Port, "from", cfg.Mail.From)

	return mail.NewSMTPMailer(cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.From, cfg.Mail.Username, cfg.Mail.Password), nil
}
