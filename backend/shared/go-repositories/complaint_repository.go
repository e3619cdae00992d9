package repositories

import (
	"context"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type ComplaintFilter struct {
	BuildingIDs []uuid.UUID
	Statuses    []models.ComplaintStatusType
}

type ComplaintRepository interface {
	Create(ctx context.Context, c *models.Complaint) error
	GetDetail(ctx context.Context, id uuid.UUID) (*models.ComplaintDetail, error)
	List(ctx context.Context, f ComplaintFilter, opts ListOptions) ([]*models.ComplaintDetail, error)
	CountByBuilding(ctx context.Context, buildingIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type complaintRepo struct {
	db DB
}

func NewComplaintRepository(db DB) ComplaintRepository {
	return &complaintRepo{db: db}
}

var complaintOrderColumns = map[string]string{
	"created_at":  "c.created_at",
	"resolved_at": "c.resolved_at",
	"status":      "c.status",
}

func (r *complaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	status := c.Status
	if status == "" {
		status = models.ComplaintStatusOpen
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO complaints (
			id, building_id, user_id, title, description, status,
			submitter_name, created_at, resolved_at, resolved_by_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, c.ID, c.BuildingID, c.UserID, c.Title, c.Description, string(status),
		c.SubmitterName, c.CreatedAt, c.ResolvedAt, c.ResolvedByID)
	return err
}

func (r *complaintRepo) GetDetail(ctx context.Context, id uuid.UUID) (*models.ComplaintDetail, error) {
	row := r.db.QueryRow(ctx, baseSelectComplaintDetail()+" WHERE c.id=$1", id)
	d, err := scanComplaintDetail(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return d, err
}

func (r *complaintRepo) List(ctx context.Context, f ComplaintFilter, opts ListOptions) ([]*models.ComplaintDetail, error) {
	if f.BuildingIDs != nil && len(f.BuildingIDs) == 0 {
		return nil, nil
	}
	qb := newQueryBuilder()
	qb.addUUIDIn("c.building_id", f.BuildingIDs)
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = string(s)
		}
		qb.addCondition("%s = ANY($%d)", "c.status", statuses)
	}
	where, tail, args := qb.build(opts, complaintOrderColumns, "c.created_at DESC, c.id")

	rows, err := r.db.Query(ctx, baseSelectComplaintDetail()+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ComplaintDetail
	for rows.Next() {
		d, err := scanComplaintDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *complaintRepo) CountByBuilding(ctx context.Context, buildingIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(buildingIDs))
	if len(buildingIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT building_id, COUNT(*)
		FROM complaints
		WHERE building_id = ANY($1::uuid[])
		GROUP BY building_id
	`, uuidStrings(buildingIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id uuid.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

// The user join is LEFT so complaints whose submitter was removed still list.
func baseSelectComplaintDetail() string {
	return `
		SELECT c.id, c.building_id, c.user_id, c.title, c.description, c.status,
		c.submitter_name, c.created_at, c.resolved_at, c.resolved_by_id,
		COALESCE(b.building_name, ''), COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
		FROM complaints c
		LEFT JOIN buildings b ON b.id = c.building_id
		LEFT JOIN users u ON u.id = c.user_id`
}

func scanComplaintDetail(row pgx.Row) (*models.ComplaintDetail, error) {
	var (
		d      models.ComplaintDetail
		status string
	)
	if err := row.Scan(
		&d.ID, &d.BuildingID, &d.UserID, &d.Title, &d.Description, &status,
		&d.SubmitterName, &d.CreatedAt, &d.ResolvedAt, &d.ResolvedByID,
		&d.BuildingName, &d.SubmitterFirstName, &d.SubmitterLastName,
	); err != nil {
		return nil, err
	}
	d.Status = models.ComplaintStatusType(status)
	return &d, nil
}
