package qr

import (
	"bytes"
	"encoding/json"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
)

// Credential is the normalized identity carried by a scanned QR pass.
// EventID may be empty: passes issued before event binding carry only the
// registration code, and the scanner supplies the event from operator
// selection.
type Credential struct {
	RegistrationID string
	EventID        string
}

// payload is the wire shape. Three variants exist across issued passes:
//
//	{"registration_id": "..."}                  legacy
//	{"id": "..."}                               current, registration only
//	{"registration_id": "...", "event_id": ...} current, event-bound
//
// Decode accepts all of them.
type payload struct {
	ID             string `json:"id,omitempty"`
	RegistrationID string `json:"registration_id,omitempty"`
	EventID        string `json:"event_id,omitempty"`
}

// Encode serializes a credential in the current event-bound shape.
func Encode(c Credential) ([]byte, error) {
	if c.RegistrationID == "" {
		return nil, domain.ErrInvalidCredential
	}
	return json.Marshal(payload{
		RegistrationID: c.RegistrationID,
		EventID:        c.EventID,
	})
}

// Decode parses any accepted payload shape into a Credential. Malformed
// input returns domain.ErrInvalidCredential; it never panics, so a garbage
// frame cannot take down the scan loop.
func Decode(data []byte) (Credential, error) {
	var p payload
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&p); err != nil {
		return Credential{}, domain.ErrInvalidCredential
	}

	cred := Credential{EventID: p.EventID}
	switch {
	case p.RegistrationID != "":
		cred.RegistrationID = p.RegistrationID
	case p.ID != "":
		cred.RegistrationID = p.ID
	default:
		return Credential{}, domain.ErrInvalidCredential
	}
	return cred, nil
}
