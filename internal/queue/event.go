// Package queue defines message payloads exchanged over the message broker
// and the background consumer that delivers invites.
package queue

// InviteIssuedEvent is published when a clinician issues an invite token.
// It carries the delivery channel (phone) and the shareable link; neither
// is ever persisted with the token itself, so the event is the only place
// the two meet.  Downstream consumers send the SMS and drop the payload.
type InviteIssuedEvent struct {
	InviteID  uint64 `json:"invite_id"`
	PatientID string `json:"patient_id"`
	Phone     string `json:"phone"`
	Link      string `json:"link"`
	IssuedAt  string `json:"issued_at"`
}
