package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"tourbase/internal/config"
)

// 測試可覆寫
var smtpSendMail = smtp.SendMail

// Email 為一封待寄出的郵件
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer 定義寄信介面，方便測試時替換 FakeMailer
type Mailer interface {
	Send(email Email) error
}

// SMTPMailer 透過 SMTP 寄出純文字郵件
type SMTPMailer struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTP(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUsername,
		pass: cfg.SMTPPassword,
		from: cfg.SMTPFrom,
	}
}

// Send 寄出郵件，逾時與重試交由呼叫端處理
func (m *SMTPMailer) Send(email Email) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + email.To,
		"Subject: " + email.Subject,
		"",
		email.Body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	if err := smtpSendMail(addr, auth, m.from, []string{email.To}, []byte(msg)); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	return nil
}

// FakeMailer 記錄寄出的郵件供測試斷言
type FakeMailer struct {
	SendFn func(email Email) error
	Sent   []Email
}

// Send 執行 Fake 設定或記錄郵件
func (f *FakeMailer) Send(email Email) error {
	f.Sent = append(f.Sent, email)
	if f.SendFn != nil {
		return f.SendFn(email)
	}
	return nil
}
