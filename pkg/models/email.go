package models

// EmailRequest is the body of POST /send-email. Address, subject and body
// are required; SMTP settings fall back to the server configuration when
// the override block is absent.
type EmailRequest struct {
	To      string      `json:"to"`
	Subject string      `json:"subject"`
	Body    string      `json:"body"`
	HTML    bool        `json:"html,omitempty"`
	SMTP    *SMTPConfig `json:"smtp,omitempty"`
}

// SMTPConfig carries SMTP connection settings, either from the server
// configuration or from a per-request override.
type SMTPConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Secure   bool   `json:"secure" yaml:"secure"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
}

// EmailResponse is the JSON reply of the mail endpoints.
type EmailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
