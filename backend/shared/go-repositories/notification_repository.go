package repositories

import (
	"context"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByCreator(ctx context.Context, createdByID uuid.UUID, opts ListOptions) ([]*models.Notification, error)
}

type notificationRepo struct {
	db DB
}

func NewNotificationRepository(db DB) NotificationRepository {
	return &notificationRepo{db: db}
}

var notificationOrderColumns = map[string]string{
	"created_at": "created_at",
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (
			id, created_by_id, building_id, title, message, type, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, n.ID, n.CreatedByID, n.BuildingID, n.Title, n.Message, string(n.Type), n.CreatedAt)
	return err
}

func (r *notificationRepo) ListByCreator(ctx context.Context, createdByID uuid.UUID, opts ListOptions) ([]*models.Notification, error) {
	qb := newQueryBuilder()
	qb.addCondition("%s = $%d", "created_by_id", createdByID)
	where, tail, args := qb.build(opts, notificationOrderColumns, "created_at DESC, id")

	rows, err := r.db.Query(ctx, `
		SELECT id, created_by_id, building_id, title, message, type, created_at
		FROM notifications`+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var (
		n   models.Notification
		typ string
	)
	if err := row.Scan(
		&n.ID, &n.CreatedByID, &n.BuildingID, &n.Title, &n.Message, &typ, &n.CreatedAt,
	); err != nil {
		return nil, err
	}
	n.Type = models.NotificationType(typ)
	return &n, nil
}
