package messaging

import (
	"context"
	"fmt"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, tenant_id, application_id, sender_id, sender_role, body, read_at, created_at"

type CreateParams struct {
	TenantID      string
	ApplicationID string
	SenderID      *string
	SenderRole    string
	Body          string
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (*Message, error) {
	const query = `
	INSERT INTO messages (tenant_id, application_id, sender_id, sender_role, body)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + columns

	var m Message
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.ApplicationID, params.SenderID, params.SenderRole, params.Body)
	if err := row.Scan(&m.ID, &m.TenantID, &m.ApplicationID, &m.SenderID, &m.SenderRole, &m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("create message on application %s: %w", params.ApplicationID, db.Classify(err))
	}
	return &m, nil
}

// List returns the thread of an application, oldest first.
func (r *SQLRepository) List(ctx context.Context, tenantID, appID string) ([]Message, error) {
	const query = `
	SELECT ` + columns + `
	FROM messages
	WHERE tenant_id = $1 AND application_id = $2
	ORDER BY created_at, id`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, tenantID, appID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	msgs := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ApplicationID, &m.SenderID, &m.SenderRole, &m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over messages: %w", err)
	}
	return msgs, nil
}

// MarkRead marks the unread messages of a thread that were not sent by readerID.
func (r *SQLRepository) MarkRead(ctx context.Context, tenantID, appID, readerID string) (int64, error) {
	const query = `
	UPDATE messages SET read_at = NOW()
	WHERE tenant_id = $1 AND application_id = $2 AND read_at IS NULL
	AND sender_id IS DISTINCT FROM $3::uuid`

	res, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, tenantID, appID, readerID)
	if err != nil {
		return 0, fmt.Errorf("mark messages of application %s read: %w", appID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return n, nil
}
