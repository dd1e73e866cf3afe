package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/alcolens/alcolens-api/internal/model"
)

// InviteRepo provides access to the invite_tokens table.  Only hashes of
// invite secrets are ever written; the plaintext secret never reaches this
// layer except as a hash computed by the caller.
type InviteRepo struct{ DB *sql.DB }

func NewInviteRepo(db *sql.DB) *InviteRepo { return &InviteRepo{DB: db} }

// Create inserts a new invite token row in the valid (unused) state and
// returns its id.
func (r *InviteRepo) Create(ctx context.Context, patientID string, tokenHash string, createdBy uint64, expiresAt time.Time) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO invite_tokens (patient_id, token_hash, created_by, expires_at, used) VALUES (?,?,?,?,0)",
		patientID, tokenHash, createdBy, expiresAt.UTC())
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindByHash looks up a token by the hash of its secret.  An unknown hash
// maps to ErrTokenNotFound; the caller cannot distinguish a never-issued
// secret from a tampered one.
func (r *InviteRepo) FindByHash(ctx context.Context, tokenHash string) (*model.InviteToken, error) {
	var t model.InviteToken
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, patient_id, token_hash, created_by, expires_at, used, created_at FROM invite_tokens WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&t.ID, &t.PatientID, &t.TokenHash, &t.CreatedBy, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Redeem flips the used flag with a single conditional update.  The WHERE
// clause carries the full validity predicate (unused and unexpired), so the
// check and the set are one atomic statement against the database; two
// concurrent redeemers can never both see rows==1.  It returns true when
// this call won the redemption.
func (r *InviteRepo) Redeem(ctx context.Context, tokenHash string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE invite_tokens SET used=1 WHERE token_hash=? AND used=0 AND expires_at > UTC_TIMESTAMP()",
		tokenHash)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}
