package email

// Email is one outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Provider sends outbound mail. Implementations must be safe for concurrent use.
type Provider interface {
	Send(email *Email) error
	Close() error
}

// SMTPConfig holds SMTP transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	UseTLS   bool
}
