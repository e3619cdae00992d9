package repositories

import (
	"context"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

// MeetingFilter with nil BuildingIDs lists meetings across every building.
type MeetingFilter struct {
	BuildingIDs []uuid.UUID
}

type MeetingRepository interface {
	Create(ctx context.Context, m *models.Meeting) error
	List(ctx context.Context, f MeetingFilter, opts ListOptions) ([]*models.MeetingListing, error)
}

type meetingRepo struct {
	db DB
}

func NewMeetingRepository(db DB) MeetingRepository {
	return &meetingRepo{db: db}
}

var meetingOrderColumns = map[string]string{
	"meeting_date": "m.meeting_date",
	"created_at":   "m.created_at",
}

func (r *meetingRepo) Create(ctx context.Context, m *models.Meeting) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO meetings (
			id, building_id, organized_by_id, title, description, location,
			meeting_date, is_cancelled, attendance_rate, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NOW())
	`, m.ID, m.BuildingID, m.OrganizedByID, m.Title, m.Description, m.Location,
		m.MeetingDate, m.IsCancelled, m.AttendanceRate)
	return err
}

func (r *meetingRepo) List(ctx context.Context, f MeetingFilter, opts ListOptions) ([]*models.MeetingListing, error) {
	if f.BuildingIDs != nil && len(f.BuildingIDs) == 0 {
		return nil, nil
	}
	qb := newQueryBuilder()
	qb.addUUIDIn("m.building_id", f.BuildingIDs)
	where, tail, args := qb.build(opts, meetingOrderColumns, "m.meeting_date DESC, m.id")

	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.building_id, m.organized_by_id, m.title, m.description, m.location,
		m.meeting_date, m.is_cancelled, m.attendance_rate, m.created_at,
		COALESCE(b.building_name, '')
		FROM meetings m
		LEFT JOIN buildings b ON b.id = m.building_id`+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.MeetingListing
	for rows.Next() {
		m, err := scanMeetingListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMeetingListing(row pgx.Row) (*models.MeetingListing, error) {
	var m models.MeetingListing
	if err := row.Scan(
		&m.ID, &m.BuildingID, &m.OrganizedByID, &m.Title, &m.Description, &m.Location,
		&m.MeetingDate, &m.IsCancelled, &m.AttendanceRate, &m.CreatedAt,
		&m.BuildingName,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
