package utils

import "fmt"

// inviteSecretBytes is the entropy of an invite secret.  32 random bytes
// (256 bits) hex-encode to a 64 character string carried in the link.
const inviteSecretBytes = 32

// NewInviteSecret generates the plaintext bearer secret for an invite
// token.  The value is returned exactly once at issuance; callers persist
// only HashTokenRaw(secret).
func NewInviteSecret() (string, error) {
	return randomHex(inviteSecretBytes)
}

// InviteLink builds the shareable link a patient follows to open the
// questionnaire with their secret attached.
func InviteLink(baseURL, secret string) string {
	return fmt.Sprintf("%s/invite?token=%s", baseURL, secret)
}
