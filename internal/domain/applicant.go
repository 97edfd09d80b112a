package domain

// Applicant is a job application captured by the apply form.
type Applicant struct {
	ID         int64   `json:"id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Position   string  `json:"position"`
	Experience string  `json:"experience"`
	Skills     string  `json:"skills"`
	ResumePath *string `json:"resume_path"`
	ClientIP   string  `json:"client_ip"`
	UserAgent  string  `json:"user_agent"`
	CreatedAt  string  `json:"created_at"`
}

// ApplicantColumns is the column order shared by the table and the CSV mirror.
var ApplicantColumns = []string{
	"id", "full_name", "email", "phone", "position", "experience", "skills",
	"resume_path", "client_ip", "user_agent", "created_at",
}

// CSVRow renders the applicant in ApplicantColumns order.
func (a *Applicant) CSVRow() []string {
	return []string{
		formatID(a.ID),
		a.FullName,
		a.Email,
		a.Phone,
		a.Position,
		a.Experience,
		a.Skills,
		derefOrEmpty(a.ResumePath),
		a.ClientIP,
		a.UserAgent,
		a.CreatedAt,
	}
}
