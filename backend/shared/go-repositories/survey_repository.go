package repositories

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

type SurveyFilter struct {
	BuildingIDs []uuid.UUID
}

type SurveyRepository interface {
	Create(ctx context.Context, s *models.Survey) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Survey, error)
	List(ctx context.Context, f SurveyFilter, opts ListOptions) ([]*models.SurveyListing, error)

	ListAnswerCounts(ctx context.Context, surveyID uuid.UUID) ([]*models.SurveyAnswerCount, error)

	// RecordResponse bumps every answer's count and the response counter in
	// one transaction. When the survey has no count rows yet, baseline (the
	// counts held in its legacy results blob) is written first so the table
	// continues from them. Returns pgx.ErrNoRows when the survey does not
	// exist.
	RecordResponse(ctx context.Context, surveyID uuid.UUID, answers map[string]string, baseline map[string]map[string]int, at time.Time) error

	// ListStaleSnapshots returns surveys whose results blob predates their
	// last response.
	ListStaleSnapshots(ctx context.Context) ([]*models.Survey, error)

	UpdateIfVersion(ctx context.Context, s *models.Survey, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Survey) error) error
}

type surveyRepo struct {
	*BaseVersionedRepo[*models.Survey]
	db DB
}

func NewSurveyRepository(db DB) SurveyRepository {
	r := &surveyRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectSurvey()+" WHERE id=$1", r.scanSurvey)
	return r
}

var surveyOrderColumns = map[string]string{
	"created_at": "s.created_at",
	"start_date": "s.start_date",
	"end_date":   "s.end_date",
}

func (r *surveyRepo) Create(ctx context.Context, s *models.Survey) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO surveys (
			id, building_id, created_by_id, title, description, questions, results,
			total_responses, start_date, end_date, is_active,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,NOW(),1)
	`, s.ID, s.BuildingID, s.CreatedByID, s.Title, s.Description, s.Questions, s.Results,
		s.TotalResponses, s.StartDate, s.EndDate, s.IsActive, s.CreatedAt)
	return err
}

func (r *surveyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *surveyRepo) List(ctx context.Context, f SurveyFilter, opts ListOptions) ([]*models.SurveyListing, error) {
	if f.BuildingIDs != nil && len(f.BuildingIDs) == 0 {
		return nil, nil
	}
	qb := newQueryBuilder()
	qb.addUUIDIn("s.building_id", f.BuildingIDs)
	where, tail, args := qb.build(opts, surveyOrderColumns, "s.created_at DESC, s.id")

	rows, err := r.db.Query(ctx, `
		SELECT `+surveyColumns("s")+`, COALESCE(b.building_name, '')
		FROM surveys s
		LEFT JOIN buildings b ON b.id = s.building_id`+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SurveyListing
	for rows.Next() {
		var l models.SurveyListing
		dest := append(surveyDest(&l.Survey), &l.BuildingName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *surveyRepo) ListAnswerCounts(ctx context.Context, surveyID uuid.UUID) ([]*models.SurveyAnswerCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT survey_id, question_id, answer, count
		FROM survey_answer_counts
		WHERE survey_id=$1
		ORDER BY question_id, answer
	`, surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.SurveyAnswerCount
	for rows.Next() {
		var c models.SurveyAnswerCount
		if err := rows.Scan(&c.SurveyID, &c.QuestionID, &c.Answer, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *surveyRepo) RecordResponse(
	ctx context.Context,
	surveyID uuid.UUID,
	answers map[string]string,
	baseline map[string]map[string]int,
	at time.Time,
) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE surveys
		SET total_responses = total_responses + 1,
			last_response_at = $2,
			updated_at = NOW()
		WHERE id = $1
	`, surveyID, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	// The UPDATE above holds the survey row lock, so only one submitter can
	// observe an empty table here.
	if len(baseline) > 0 {
		if err = carryBaseline(ctx, tx, surveyID, baseline); err != nil {
			return err
		}
	}

	// Fixed key order keeps concurrent submitters from deadlocking on the
	// count rows.
	questionIDs := make([]string, 0, len(answers))
	for q := range answers {
		questionIDs = append(questionIDs, q)
	}
	sort.Strings(questionIDs)

	for _, q := range questionIDs {
		if _, err = tx.Exec(ctx, `
			INSERT INTO survey_answer_counts (survey_id, question_id, answer, count)
			VALUES ($1, $2, $3, 1)
			ON CONFLICT (survey_id, question_id, answer)
			DO UPDATE SET count = survey_answer_counts.count + 1
		`, surveyID, q, answers[q]); err != nil {
			return err
		}
	}
	return nil
}

func carryBaseline(ctx context.Context, tx pgx.Tx, surveyID uuid.UUID, baseline map[string]map[string]int) error {
	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM survey_answer_counts WHERE survey_id = $1)`,
		surveyID,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return nil
	}

	questionIDs := make([]string, 0, len(baseline))
	for q := range baseline {
		questionIDs = append(questionIDs, q)
	}
	sort.Strings(questionIDs)
	for _, q := range questionIDs {
		for answer, n := range baseline[q] {
			if n <= 0 {
				continue
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO survey_answer_counts (survey_id, question_id, answer, count)
				VALUES ($1, $2, $3, $4)
			`, surveyID, q, answer, n); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *surveyRepo) ListStaleSnapshots(ctx context.Context) ([]*models.Survey, error) {
	rows, err := r.db.Query(ctx, baseSelectSurvey()+`
		WHERE last_response_at IS NOT NULL
		AND (results_synced_at IS NULL OR results_synced_at < last_response_at)
		ORDER BY last_response_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Survey
	for rows.Next() {
		s, err := r.scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateIfVersion rewrites the results snapshot only. Counters belong to
// RecordResponse.
func (r *surveyRepo) UpdateIfVersion(ctx context.Context, s *models.Survey, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
		UPDATE surveys
		SET results=$1, results_synced_at=$2, updated_at=NOW(), row_version=row_version+1
		WHERE id=$3 AND row_version=$4
	`, s.Results, s.ResultsSyncedAt, s.ID, expected)
}

func (r *surveyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Survey) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func baseSelectSurvey() string {
	return `
		SELECT ` + surveyColumns("surveys") + `
		FROM surveys`
}

func surveyColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.building_id, %[1]s.created_by_id, %[1]s.title,
		%[1]s.description, %[1]s.questions, %[1]s.results, %[1]s.total_responses,
		%[1]s.start_date, %[1]s.end_date, %[1]s.is_active, %[1]s.last_response_at,
		%[1]s.results_synced_at, %[1]s.created_at, %[1]s.updated_at, %[1]s.row_version`, alias)
}

func surveyDest(s *models.Survey) []any {
	return []any{
		&s.ID, &s.BuildingID, &s.CreatedByID, &s.Title,
		&s.Description, &s.Questions, &s.Results, &s.TotalResponses,
		&s.StartDate, &s.EndDate, &s.IsActive, &s.LastResponseAt,
		&s.ResultsSyncedAt, &s.CreatedAt, &s.UpdatedAt, &s.RowVersion,
	}
}

func (r *surveyRepo) scanSurvey(row pgx.Row) (*models.Survey, error) {
	var s models.Survey
	if err := row.Scan(surveyDest(&s)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
