package twofactor

import (
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// emailContent pairs a subject line with an HTML body template. Selection is
// a pure purpose -> content lookup; no dynamic dispatch is involved.
type emailContent struct {
	subject string
	body    *template.Template
}

// templateData is what every body template receives.
type templateData struct {
	Username string
	Code     string
	Minutes  int
}

var (
	verificationBody = template.Must(template.New("email_verification").Parse(`
    <h2>Welcome to {{.Issuer}}!</h2>
    <p>Hi <strong>{{.Data.Username}}</strong>,</p>
    <p>Thanks for signing up. To finish creating your account, enter the following code:</p>
    <div style='background-color: #f0f9ff; border-left: 4px solid #3b82f6; padding: 15px; margin: 20px 0;'>
        <p style='font-size: 24px; font-weight: bold; margin: 0; color: #1e40af;'>{{.Data.Code}}</p>
    </div>
    <p>The code expires in <strong>{{.Data.Minutes}} minutes</strong>.</p>
    <p>If you did not create this account, you can safely ignore this email.</p>
    <hr style='margin: 20px 0; border: none; border-top: 1px solid #e5e7eb;'>
    <p style='font-size: 12px; color: #6b7280;'>This email was sent automatically; please do not reply.</p>`))

	loginBody = template.Must(template.New("login").Parse(`
    <h2>{{.Issuer}} sign-in verification</h2>
    <p>Hi <strong>{{.Data.Username}}</strong>,</p>
    <p>We received a request to sign in to your account. To continue, enter the following code:</p>
    <div style='background-color: #f0fdf4; border-left: 4px solid #10b981; padding: 15px; margin: 20px 0;'>
        <p style='font-size: 28px; font-weight: bold; margin: 0; color: #047857; letter-spacing: 4px;'>{{.Data.Code}}</p>
    </div>
    <p>The code expires in <strong>{{.Data.Minutes}} minutes</strong>.</p>
    <p style='color: #dc2626;'><strong>Warning:</strong> if this sign-in was not you, ignore this email and consider changing your password.</p>
    <hr style='margin: 20px 0; border: none; border-top: 1px solid #e5e7eb;'>
    <p style='font-size: 12px; color: #6b7280;'>Sent automatically by {{.Issuer}}. Never share this code with anyone.</p>`))

	genericBody = template.Must(template.New("generic").Parse(`
    <p>Hi {{.Data.Username}},</p>
    <p>Your verification code is: <strong>{{.Data.Code}}</strong></p>
    <p>The code expires in {{.Data.Minutes}} minutes.</p>
    <p>If you did not request this, ignore this email.</p>`))
)

// emailContents maps each purpose to its subject line and body. The subject
// is a fmt pattern taking the issuer name.
var emailContents = map[Purpose]emailContent{
	PurposeEnableTwoFactor:   {subject: "[%s] Two-factor activation code", body: genericBody},
	PurposeDisableTwoFactor:  {subject: "[%s] Two-factor deactivation code", body: genericBody},
	PurposeChangePassword:    {subject: "[%s] Password change confirmation code", body: genericBody},
	PurposeEmailVerification: {subject: "[%s] Verify your email address", body: verificationBody},
	PurposeLogin:             {subject: "[%s] Sign-in verification code", body: loginBody},
}

// renderEmail produces the subject and HTML body for a code notification.
func renderEmail(issuer string, purpose Purpose, data templateData) (subject, body string, err error) {
	content, ok := emailContents[purpose]
	if !ok {
		return "", "", ErrInvalidPurpose
	}

	var sb strings.Builder
	payload := struct {
		Issuer string
		Data   templateData
	}{Issuer: issuer, Data: data}
	if execErr := content.body.Execute(&sb, payload); execErr != nil {
		return "", "", errors.Join(ErrFailedToRenderEmail, execErr)
	}

	return fmt.Sprintf(content.subject, issuer), sb.String(), nil
}
