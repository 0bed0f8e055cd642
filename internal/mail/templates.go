package mail

import (
	"fmt"
	"strings"
	"text/template"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(
	`Hi {{.Name}},

Welcome! Please confirm your email address by opening the link below:

{{.Link}}

The link expires in {{.TTL}}. If you did not create this account, you can
ignore this message.
`))

var passwordResetTmpl = template.Must(template.New("passwordReset").Parse(
	`Hi {{.Name}},

We received a request to reset the password for your account. Open the link
below to choose a new password:

{{.Link}}

The link expires in {{.TTL}} and can be used once. If you did not request a
reset, you can ignore this message; your password is unchanged.
`))

var usernameReminderTmpl = template.Must(template.New("usernameReminder").Parse(
	`Hi {{.Name}},

Your username is:

    {{.Username}}

If you did not request this reminder, you can ignore this message.
`))

type linkData struct {
	Name string
	Link string
	TTL  string
}

// ConfirmationEmail renders the signup confirmation message.
func ConfirmationEmail(name, link, ttl string) (subject, body string, err error) {
	body, err = render(confirmationTmpl, linkData{Name: name, Link: link, TTL: ttl})
	return "Confirm your email address", body, err
}

// PasswordResetEmail renders the password reset message.
func PasswordResetEmail(name, link, ttl string) (subject, body string, err error) {
	body, err = render(passwordResetTmpl, linkData{Name: name, Link: link, TTL: ttl})
	return "Reset your password", body, err
}

// UsernameReminderEmail renders the username recovery message.
func UsernameReminderEmail(name, username string) (subject, body string, err error) {
	body, err = render(usernameReminderTmpl, struct {
		Name     string
		Username string
	}{Name: name, Username: username})
	return "Your username", body, err
}

func render(tmpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s template: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
