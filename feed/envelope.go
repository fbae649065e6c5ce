package feed

import "time"

// Envelope is the uniform response body of the token endpoint
type Envelope struct {
	Success   bool    `json:"success"`
	Tokens    []Token `json:"tokens"`
	Timestamp int64   `json:"timestamp"`
	Source    string  `json:"source,omitempty"`
	Error     string  `json:"error,omitempty"`
}

func Ok(res Result, now time.Time) Envelope {
	tokens := res.Tokens
	if tokens == nil {
		tokens = []Token{}
	}
	return Envelope{Success: true, Tokens: tokens, Timestamp: now.UnixMilli(), Source: res.Source}
}

func Failure(msg string, now time.Time) Envelope {
	return Envelope{Success: false, Tokens: []Token{}, Timestamp: now.UnixMilli(), Error: msg}
}
