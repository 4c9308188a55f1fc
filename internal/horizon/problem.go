package horizon

import (
	"encoding/json"
	"fmt"
)

// Problem is Horizon's application/problem+json error body.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func (p *Problem) Error() string {
	if p.Title == "" {
		return fmt.Sprintf("horizon error: status %d", p.Status)
	}
	return fmt.Sprintf("horizon error: %s (status %d)", p.Title, p.Status)
}

func problemFromBody(statusCode int, body []byte) *Problem {
	p := &Problem{}
	if err := json.Unmarshal(body, p); err != nil || p.Status == 0 {
		p.Status = statusCode
	}
	return p
}
