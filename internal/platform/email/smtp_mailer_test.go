package email

import (
	"errors"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ferdiebergado/hireloop/internal/config"
)

func writeTemplates(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"layout.html":       `<html><body>{{block "content" .}}{{end}}</body></html>`,
		"verification.html": `{{define "content"}}<a href="{{.Link}}">{{.Title}}</a>{{end}}`,
	}
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestSMTPMailer_SendHTML(t *testing.T) {
	t.Parallel()

	dir := writeTemplates(t)
	mailer, err := NewSMTPMailer(
		&config.SMTP{Host: "smtp.example.com", Port: 2525, User: "mailer", Password: "pw"},
		&config.Email{Templates: dir, Layout: "layout.html", Sender: "Hireloop <no-reply@example.com>"},
	)
	if err != nil {
		t.Fatal(err)
	}

	var gotAddr string
	var gotMsg []byte
	mailer.sendMail = func(addr string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotAddr, gotMsg = addr, msg
		return nil
	}

	data := map[string]string{"Title": "Verify", "Link": "https://example.com/auth/verify?token=abc"}
	if err := mailer.SendHTML([]string{"ana@example.com"}, "Verify\r\nBcc: x@evil.com", "verification", data); err != nil {
		t.Fatal(err)
	}

	if gotAddr != "smtp.example.com:2525" {
		t.Errorf("addr = %q, want: %q", gotAddr, "smtp.example.com:2525")
	}

	msg := string(gotMsg)
	if !strings.Contains(msg, `<a href="https://example.com/auth/verify?token=abc">Verify</a>`) {
		t.Errorf("message body missing rendered link:\n%s", msg)
	}

	if strings.Contains(msg, "\r\nBcc:") {
		t.Errorf("subject header injection was not sanitized:\n%s", msg)
	}
}

func TestSMTPMailer_UnknownTemplate(t *testing.T) {
	t.Parallel()

	mailer, err := NewSMTPMailer(&config.SMTP{}, &config.Email{Templates: writeTemplates(t), Layout: "layout.html"})
	if err != nil {
		t.Fatal(err)
	}

	err = mailer.SendHTML([]string{"ana@example.com"}, "s", "missing", nil)
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("mailer.SendHTML() = %v, want: %v", err, ErrTemplateNotFound)
	}
}
