package resend

// DigestRequest is the body of a digest request.
type DigestRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Digest is the content of a completed medal events e-mail.
type Digest struct {
	Date   string
	Events []DigestEvent
}

type DigestEvent struct {
	Discipline string
	Event      string
	Venue      string
	EndedAgo   string
	Results    []DigestResult
}

type DigestResult struct {
	Country string
	Name    string
	Outcome string
	Mark    string
}
