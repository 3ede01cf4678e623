package service

import "net/smtp"

type EmailService interface {
	Send(to, subject, body string) error
}

type SMTPConfig struct {
	Host string
	Port string
	From string
}

type smtpEmail struct {
	cfg SMTPConfig
}

func NewEmailService(cfg SMTPConfig) EmailService { return &smtpEmail{cfg: cfg} }

func (s *smtpEmail) Send(to, subject, body string) error {
	addr := s.cfg.Host + ":" + s.cfg.Port

	msg := "From: " + s.cfg.From + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	// local relay, no auth
	return smtp.SendMail(addr, nil, s.cfg.From, []string{to}, []byte(msg))
}
