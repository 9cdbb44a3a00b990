package email

// Config holds email delivery configuration.
// The Postmark tokens are optional so that development environments can run
// on the file-based dev sender instead. SenderEmail establishes the sender
// identity for all outbound mail; SupportEmail is used as the reply-to.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL,required"`
	SupportEmail         string `env:"SUPPORT_EMAIL,required"`
}
