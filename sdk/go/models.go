package jobreach

// SendEmailRequest is the payload for SendEmail.
type SendEmailRequest struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// FindContactsRequest is the payload for FindContacts.
type FindContactsRequest struct {
	CompanyType string   `json:"company_type,omitempty"`
	RoleTypes   []string `json:"role_types,omitempty"`
	Location    string   `json:"location,omitempty"`
}

// Contact is a generated hiring-manager contact suggestion.
type Contact struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

// GenerateEmailRequest is the payload for GenerateEmail.
type GenerateEmailRequest struct {
	JobRole           string `json:"job_role,omitempty"`
	Purpose           string `json:"purpose"`
	Tone              string `json:"tone,omitempty"`
	RecipientName     string `json:"recipient_name,omitempty"`
	AdditionalContext string `json:"additional_context,omitempty"`
}

// GeneratedEmail is the GenerateEmail response: the raw model output plus
// the parsed subject/body split.
type GeneratedEmail struct {
	Email string `json:"email"`
	Draft struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	} `json:"draft"`
}

// Profile is the sender profile attached to the session.
type Profile struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	LinkedIn   string `json:"linkedin,omitempty"`
	Phone      string `json:"phone,omitempty"`
	TargetRole string `json:"target_role,omitempty"`
	Location   string `json:"location,omitempty"`
}
