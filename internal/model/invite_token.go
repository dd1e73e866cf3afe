package model

import "time"

// InviteToken models a row in the `invite_tokens` table.  A token is a
// single-use bearer capability: whoever holds the plaintext secret may
// submit exactly one assessment for the referenced patient.  The plain
// secret exists only at issuance and inside the delivered link; the row
// stores its SHA-256 hash.  No contact channel (phone/email) is stored
// alongside the token, so a leaked row never discloses how to reach the
// patient.
//
// Fields:
//  ID        – primary key identifier.
//  PatientID – patient the token authorizes a submission for.
//  TokenHash – SHA-256 hex digest of the plaintext secret.
//  CreatedBy – clinician who issued the token.
//  ExpiresAt – expiration timestamp.
//  Used      – set exactly once, on first successful redemption.
//  CreatedAt – timestamp of issuance.
type InviteToken struct {
	ID        uint64    // invite_tokens.id
	PatientID string    // invite_tokens.patient_id (UUID)
	TokenHash string    // invite_tokens.token_hash
	CreatedBy uint64    // invite_tokens.created_by (users.id)
	ExpiresAt time.Time // invite_tokens.expires_at
	Used      bool      // invite_tokens.used
	CreatedAt time.Time // invite_tokens.created_at
}

// InviteStatus describes the lifecycle state of a token at a point in
// time.  Expiry is a derived predicate over ExpiresAt, not a stored state.
type InviteStatus string

const (
	InviteValid   InviteStatus = "valid"
	InviteUsed    InviteStatus = "used"
	InviteExpired InviteStatus = "expired"
)

// StatusAt reports the token's lifecycle state at the given instant.  The
// used flag wins over expiry: a token redeemed before expiring stays
// "used" forever, and reporting "used" for a token that is both used and
// expired tells the patient they already completed the assessment.
func (t *InviteToken) StatusAt(now time.Time) InviteStatus {
	if t.Used {
		return InviteUsed
	}
	if now.After(t.ExpiresAt) {
		return InviteExpired
	}
	return InviteValid
}
