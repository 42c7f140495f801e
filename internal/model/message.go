package model

// ContactSuggestion is a generated hiring-manager contact. Names are
// fictional; companies and titles follow the requested criteria.
type ContactSuggestion struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

// EmailDraft is a generated cold email split into subject and body
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// OutboundMessage is a single outgoing email envelope. It is built per send
// call and never persisted.
type OutboundMessage struct {
	From    string
	To      string
	Subject string
	Body    string
}
