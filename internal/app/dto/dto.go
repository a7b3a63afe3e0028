package dto

import (
	"bytes"
	"encoding/json"
)

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// ActivityURI binds the activity name path segment.
type ActivityURI struct {
	ActivityName string `uri:"activity_name" binding:"required"`
}

// EmailQuery binds the participant email query parameter.
type EmailQuery struct {
	Email string `form:"email" binding:"required"`
}

type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type NamedActivity struct {
	Name string
	Activity
}

// ActivityDirectory encodes as a JSON object keyed by activity name with
// keys in slice order.
type ActivityDirectory []NamedActivity

func (d ActivityDirectory) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, a := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(a.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.Activity)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
