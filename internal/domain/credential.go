package domain

// Credential is a login form capture. Only the password digest is kept.
type Credential struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	ClientIP     string `json:"client_ip"`
	UserAgent    string `json:"user_agent"`
	CreatedAt    string `json:"created_at"`
}

// CredentialColumns is the column order shared by the table and the CSV mirror.
var CredentialColumns = []string{
	"id", "username", "password_hash", "client_ip", "user_agent", "created_at",
}

// CSVRow renders the credential in CredentialColumns order.
func (c *Credential) CSVRow() []string {
	return []string{
		formatID(c.ID),
		c.Username,
		c.PasswordHash,
		c.ClientIP,
		c.UserAgent,
		c.CreatedAt,
	}
}
