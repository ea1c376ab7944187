package mailer

import "fmt"

func confirmationTemplate(confirmURL string) (subject, body string) {
	subject = "Confirm your subscription"

	body = fmt.Sprintf(`Hi,

Thanks for your interest in our community energy cooperative.

Please confirm your email address by opening the link below:

%s

If you didn't sign up, you can safely ignore this email.
`, confirmURL)

	return subject, body
}
