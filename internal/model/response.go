package model

import (
	"time"

	"github.com/alcolens/alcolens-api/internal/audit"
)

// Response is the durable artifact of one completed assessment, stored
// across the `responses` table and its `response_answers` child rows
// (one row per question).  A response is inserted exactly once and never
// mutated afterwards; TotalScore is always recomputed server-side from
// Answers before insert, never accepted from a client.
//
// Fields:
//  ID         – primary key identifier.
//  PatientID  – patient reference (invite-derived or freshly generated UUID).
//  Sex        – biological sex used for risk banding.
//  StudyLevel – wording variant the respondent saw.
//  Answers    – question id to answer value, complete over the catalog.
//  TotalScore – sum of Answers (derived).
//  RiskLevel  – classification derived from TotalScore and Sex.
//  Consent    – affirmative consent flag; always true for persisted rows.
//  CreatedAt  – timestamp of creation.
type Response struct {
	ID         uint64           // responses.id
	PatientID  string           // responses.patient_id
	Sex        audit.Sex        // responses.sex
	StudyLevel audit.StudyLevel // responses.study_level
	Answers    map[string]int   // response_answers rows
	TotalScore int              // responses.total_score
	RiskLevel  audit.RiskLevel  // responses.risk_level
	Consent    bool             // responses.consent
	CreatedAt  time.Time        // responses.created_at
}
