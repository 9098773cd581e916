package email

// Mailer sends transactional mail: verification links, password resets and
// new-message notifications. tmplName is a page under the templates directory.
type Mailer interface {
	SendPlain(to []string, subject, body string) error
	SendHTML(to []string, subject, tmplName string, data map[string]string) error
}
