package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/alcolens/alcolens-api/internal/model"
)

// PatientRepo provides access to anonymous patient records.  A patient row
// holds no identifying data; it only anchors invite tokens and responses.
type PatientRepo struct{ DB *sql.DB }

func NewPatientRepo(db *sql.DB) *PatientRepo { return &PatientRepo{DB: db} }

// Create inserts an anonymous patient registered by the given clinician
// and returns its UUID.
func (r *PatientRepo) Create(ctx context.Context, createdBy uint64) (string, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO patients (id, created_by) VALUES (?,?)",
		id, createdBy)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetByID fetches a patient record.  Missing rows map to ErrPatientNotFound.
func (r *PatientRepo) GetByID(ctx context.Context, id string) (model.Patient, error) {
	var p model.Patient
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, created_by, created_at FROM patients WHERE id=? LIMIT 1",
		id).Scan(&p.ID, &p.CreatedBy, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Patient{}, ErrPatientNotFound
	}
	return p, err
}
