package model

import "time"

// Patient is an anonymous patient record in the `patients` table.  It
// deliberately carries no identifying data: the row exists only so that
// invite tokens and responses have a stable reference to hang off.  The
// id is a UUID so patient references handed out in links are not
// guessable sequences.
//
// Fields:
//  ID        – UUID primary key.
//  CreatedBy – clinician who registered the patient.
//  CreatedAt – timestamp of creation.
type Patient struct {
	ID        string    // patients.id (UUID)
	CreatedBy uint64    // patients.created_by (users.id)
	CreatedAt time.Time // patients.created_at
}
