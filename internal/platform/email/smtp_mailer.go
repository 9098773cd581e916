package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ferdiebergado/hireloop/internal/config"
)

var _ Mailer = (*SMTPMailer)(nil)

var ErrTemplateNotFound = errors.New("email: template not found")

type templateMap map[string]*template.Template

type SMTPMailer struct {
	user      string
	pass      string
	host      string
	port      int
	sender    string
	templates templateMap
	sendMail  func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg *config.SMTP, opts *config.Email) (*SMTPMailer, error) {
	path := opts.Templates
	layoutFile := filepath.Join(path, opts.Layout)
	tmplMap, err := parsePages(path, layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse pages at path %q and layout file %q: %w", path, layoutFile, err)
	}

	return &SMTPMailer{
		user:      cfg.User,
		pass:      cfg.Password,
		host:      cfg.Host,
		port:      cfg.Port,
		sender:    opts.Sender,
		templates: tmplMap,
		sendMail:  smtp.SendMail,
	}, nil
}

// buildMessage renders an RFC 5322 message. Header values are sanitized against CRLF injection.
func buildMessage(sender string, to []string, subject, body, contentType string) []byte {
	clean := strings.NewReplacer("\r", "", "\n", "")

	var b strings.Builder
	b.WriteString("From: " + clean.Replace(sender) + "\r\n")
	b.WriteString("To: " + clean.Replace(strings.Join(to, ", ")) + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", clean.Replace(subject)) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func (e *SMTPMailer) send(to []string, subject, body, contentType string) error {
	var auth smtp.Auth
	if e.user != "" {
		auth = smtp.PlainAuth("", e.user, e.pass, e.host)
	}

	addr := net.JoinHostPort(e.host, strconv.Itoa(e.port))
	from := e.user
	if from == "" {
		from = e.sender
	}

	if err := e.sendMail(addr, auth, from, to, buildMessage(e.sender, to, subject, body, contentType)); err != nil {
		return fmt.Errorf("sending email to %q: %w", to, err)
	}

	slog.Info("Email sent.", "subject", subject, "recipients", len(to))
	return nil
}

func (e *SMTPMailer) SendHTML(to []string, subject, tmplName string, data map[string]string) error {
	tmpl, ok := e.templates[tmplName]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, tmplName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute email template for subject %q: %w", subject, err)
	}

	return e.send(to, subject, buf.String(), "text/html")
}

func (e *SMTPMailer) SendPlain(to []string, subject, body string) error {
	return e.send(to, subject, body, "text/plain")
}

func parsePages(templateDir, layoutFile string) (templateMap, error) {
	layoutTmpl, err := template.New("layout").ParseFiles(layoutFile)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	layoutName := filepath.Base(layoutFile)
	tmplMap := make(templateMap)
	err = fs.WalkDir(os.DirFS(templateDir), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk directory %q at path %q: %w", templateDir, path, err)
		}

		const suffix = ".html"
		if d.IsDir() || !strings.HasSuffix(path, suffix) || filepath.Base(path) == layoutName {
			return nil
		}

		clone, err := layoutTmpl.Clone()
		if err != nil {
			return fmt.Errorf("clone layout: %w", err)
		}

		page, err := clone.ParseFiles(filepath.Join(templateDir, path))
		if err != nil {
			return fmt.Errorf("parse page %q: %w", path, err)
		}

		name := strings.TrimSuffix(path, suffix)
		tmplMap[name] = page.Lookup(layoutName)
		slog.Debug("parsed page", "path", path, "name", name)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("load pages templates: %w", err)
	}

	return tmplMap, nil
}
