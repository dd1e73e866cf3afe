package repository

import (
	"context"
	"database/sql"

	"github.com/alcolens/alcolens-api/internal/audit"
	"github.com/alcolens/alcolens-api/internal/model"
)

// ResponseRepo provides access to the responses table and its
// response_answers child rows.  Responses are insert-only: there are no
// update or delete methods on purpose.
type ResponseRepo struct{ DB *sql.DB }

func NewResponseRepo(db *sql.DB) *ResponseRepo { return &ResponseRepo{DB: db} }

// Insert writes one response and its answer rows in a single transaction
// and returns the new response id.  The caller is expected to have
// computed TotalScore from Answers; this layer stores what it is given.
func (r *ResponseRepo) Insert(ctx context.Context, resp *model.Response) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO responses (patient_id, sex, study_level, total_score, risk_level, consent) VALUES (?,?,?,?,?,?)",
		resp.PatientID, string(resp.Sex), string(resp.StudyLevel), resp.TotalScore, string(resp.RiskLevel), resp.Consent)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	// One row per answered question; multi-value insert like the rest of
	// the codebase's batch writes.
	query := "INSERT INTO response_answers (response_id, question_id, value) VALUES "
	args := make([]interface{}, 0, len(resp.Answers)*3)
	i := 0
	for qid, v := range resp.Answers {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?)"
		args = append(args, id, qid, v)
		i++
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(id), nil
}

// ListRecent returns up to limit responses ordered by creation time
// descending, each with its full answer set attached.
func (r *ResponseRepo) ListRecent(ctx context.Context, limit int) ([]model.Response, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, patient_id, sex, study_level, total_score, risk_level, consent, created_at FROM responses ORDER BY created_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Response
	index := map[uint64]int{}
	for rows.Next() {
		var resp model.Response
		var sex, level, risk string
		if err := rows.Scan(&resp.ID, &resp.PatientID, &sex, &level, &resp.TotalScore, &risk, &resp.Consent, &resp.CreatedAt); err != nil {
			return nil, err
		}
		resp.Sex = audit.Sex(sex)
		resp.StudyLevel = audit.StudyLevel(level)
		resp.RiskLevel = audit.RiskLevel(risk)
		resp.Answers = map[string]int{}
		index[resp.ID] = len(out)
		out = append(out, resp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return []model.Response{}, nil
	}

	ids := make([]interface{}, 0, len(out))
	placeholders := ""
	for i, resp := range out {
		if i > 0 {
			placeholders += ","
		}
		placeholders += "?"
		ids = append(ids, resp.ID)
	}
	ansRows, err := r.DB.QueryContext(ctx,
		"SELECT response_id, question_id, value FROM response_answers WHERE response_id IN ("+placeholders+")",
		ids...)
	if err != nil {
		return nil, err
	}
	defer ansRows.Close()
	for ansRows.Next() {
		var respID uint64
		var qid string
		var v int
		if err := ansRows.Scan(&respID, &qid, &v); err != nil {
			return nil, err
		}
		if i, ok := index[respID]; ok {
			out[i].Answers[qid] = v
		}
	}
	return out, ansRows.Err()
}

// GetByID loads a single response with its answers.
func (r *ResponseRepo) GetByID(ctx context.Context, id uint64) (*model.Response, error) {
	var resp model.Response
	var sex, level, risk string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, patient_id, sex, study_level, total_score, risk_level, consent, created_at FROM responses WHERE id=? LIMIT 1",
		id).Scan(&resp.ID, &resp.PatientID, &sex, &level, &resp.TotalScore, &risk, &resp.Consent, &resp.CreatedAt)
	if err != nil {
		return nil, err
	}
	resp.Sex = audit.Sex(sex)
	resp.StudyLevel = audit.StudyLevel(level)
	resp.RiskLevel = audit.RiskLevel(risk)
	resp.Answers = map[string]int{}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT question_id, value FROM response_answers WHERE response_id=?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var qid string
		var v int
		if err := rows.Scan(&qid, &v); err != nil {
			return nil, err
		}
		resp.Answers[qid] = v
	}
	return &resp, rows.Err()
}
