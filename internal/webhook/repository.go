package webhook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/hireloop/internal/platform/db"
)

var (
	ErrNotFound         = errors.New("webhook endpoint not found")
	ErrDeliveryNotFound = errors.New("webhook delivery not found")
	ErrSourceNotFound   = errors.New("inbound webhook source not found")
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const (
	endpointColumns = "id, tenant_id, url, secret, events, active, created_at"
	deliveryColumns = `id, endpoint_id, event_id, event_type, payload, status, attempts, next_attempt_at,
	last_error, last_status_code, delivered_at, created_at`
)

type EndpointParams struct {
	TenantID string
	URL      string
	Secret   string
	Events   []string
}

func (r *SQLRepository) CreateEndpoint(ctx context.Context, params EndpointParams) (*Endpoint, error) {
	const query = `
	INSERT INTO webhook_endpoints (tenant_id, url, secret, events)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + endpointColumns

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query,
		params.TenantID, params.URL, params.Secret, params.Events)
	e, err := scanEndpoint(row)
	if err != nil {
		return nil, fmt.Errorf("create webhook endpoint: %w", db.Classify(err))
	}
	return e, nil
}

func (r *SQLRepository) FindEndpoint(ctx context.Context, tenantID, endpointID string) (*Endpoint, error) {
	const query = "SELECT " + endpointColumns + " FROM webhook_endpoints WHERE tenant_id = $1 AND id = $2"

	e, err := scanEndpoint(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, endpointID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find webhook endpoint %s: %w", endpointID, err)
	}
	return e, nil
}

func (r *SQLRepository) ListEndpoints(ctx context.Context, tenantID string) ([]Endpoint, error) {
	const query = `
	SELECT ` + endpointColumns + `
	FROM webhook_endpoints
	WHERE tenant_id = $1
	ORDER BY created_at, id`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("query webhook endpoints: %w", err)
	}
	defer rows.Close()

	endpoints := make([]Endpoint, 0)
	for rows.Next() {
		e, err := scanEndpoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webhook endpoint: %w", err)
		}
		endpoints = append(endpoints, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over webhook endpoints: %w", err)
	}
	return endpoints, nil
}

func (r *SQLRepository) DeleteEndpoint(ctx context.Context, tenantID, endpointID string) error {
	const query = "DELETE FROM webhook_endpoints WHERE tenant_id = $1 AND id = $2"

	res, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, tenantID, endpointID)
	if err != nil {
		return fmt.Errorf("delete webhook endpoint %s: %w", endpointID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateEndpoint stops deliveries to the endpoint. Its pending deliveries fail.
func (r *SQLRepository) DeactivateEndpoint(ctx context.Context, endpointID string) error {
	const query = `
	WITH endpoint AS (
		UPDATE webhook_endpoints SET active = FALSE WHERE id = $1 RETURNING id
	)
	UPDATE webhook_deliveries d
	SET status = 'failed', last_error = 'endpoint deactivated'
	FROM endpoint
	WHERE d.endpoint_id = endpoint.id AND d.status = 'pending'`

	if _, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, endpointID); err != nil {
		return fmt.Errorf("deactivate webhook endpoint %s: %w", endpointID, err)
	}
	return nil
}

// Enqueue creates a pending delivery of payload for every active endpoint of
// the tenant subscribed to eventType, and returns how many were created.
func (r *SQLRepository) Enqueue(ctx context.Context, tenantID, eventType, eventID string, payload []byte) (int64, error) {
	const query = `
	INSERT INTO webhook_deliveries (endpoint_id, event_id, event_type, payload)
	SELECT id, $3, $2, $4::jsonb
	FROM webhook_endpoints
	WHERE tenant_id = $1 AND active AND ($2 = ANY(events) OR '*' = ANY(events))`

	res, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, tenantID, eventType, eventID, string(payload))
	if err != nil {
		return 0, fmt.Errorf("enqueue %s deliveries: %w", eventType, err)
	}
	return res.RowsAffected()
}

func (r *SQLRepository) Deliveries(ctx context.Context, endpointID string, limit int) ([]Delivery, error) {
	const query = `
	SELECT ` + deliveryColumns + `
	FROM webhook_deliveries
	WHERE endpoint_id = $1
	ORDER BY created_at DESC, id
	LIMIT $2`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, endpointID, limit)
	if err != nil {
		return nil, fmt.Errorf("query deliveries of endpoint %s: %w", endpointID, err)
	}
	defer rows.Close()

	deliveries := make([]Delivery, 0)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan webhook delivery: %w", err)
		}
		deliveries = append(deliveries, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over webhook deliveries: %w", err)
	}
	return deliveries, nil
}

func (r *SQLRepository) FindDelivery(ctx context.Context, tenantID, deliveryID string) (*Delivery, error) {
	const query = `
	SELECT d.id, d.endpoint_id, d.event_id, d.event_type, d.payload, d.status, d.attempts, d.next_attempt_at,
		d.last_error, d.last_status_code, d.delivered_at, d.created_at
	FROM webhook_deliveries d
	JOIN webhook_endpoints e ON e.id = d.endpoint_id
	WHERE e.tenant_id = $1 AND d.id = $2`

	d, err := scanDelivery(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, deliveryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("find webhook delivery %s: %w", deliveryID, err)
	}
	return d, nil
}

// Redeliver puts a failed delivery back in the queue. It returns
// ErrDeliveryNotFound when the delivery is not failed anymore.
func (r *SQLRepository) Redeliver(ctx context.Context, deliveryID string) (*Delivery, error) {
	const query = `
	UPDATE webhook_deliveries
	SET status = 'pending', attempts = 0, next_attempt_at = NOW(), last_error = NULL, last_status_code = NULL
	WHERE id = $1 AND status = 'failed'
	AND EXISTS (SELECT 1 FROM webhook_endpoints e WHERE e.id = endpoint_id AND e.active)
	RETURNING ` + deliveryColumns

	d, err := scanDelivery(db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, deliveryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("redeliver %s: %w", deliveryID, err)
	}
	return d, nil
}

// Claim leases up to limit due deliveries of active endpoints by marking them in_flight.
// Rows locked by another dispatcher are skipped.
func (r *SQLRepository) Claim(ctx context.Context, limit int) ([]Claim, error) {
	const query = `
	WITH due AS (
		SELECT wd.id
		FROM webhook_deliveries wd
		JOIN webhook_endpoints we ON we.id = wd.endpoint_id
		WHERE wd.status = 'pending' AND wd.next_attempt_at <= NOW() AND we.active
		ORDER BY wd.next_attempt_at, wd.id
		LIMIT $1
		FOR UPDATE OF wd SKIP LOCKED
	)
	UPDATE webhook_deliveries d
	SET status = 'in_flight', claimed_at = NOW()
	FROM due, webhook_endpoints e
	WHERE d.id = due.id AND e.id = d.endpoint_id
	RETURNING d.id, d.endpoint_id, d.event_id, d.event_type, d.payload, d.attempts, e.url, e.secret`

	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("claim deliveries: %w", err)
	}
	defer rows.Close()

	claims := make([]Claim, 0)
	for rows.Next() {
		var c Claim
		if err := rows.Scan(&c.DeliveryID, &c.EndpointID, &c.EventID, &c.EventType, &c.Payload,
			&c.Attempts, &c.URL, &c.Secret); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over claims: %w", err)
	}
	return claims, nil
}

// Reclaim returns in_flight deliveries leased before now-lease to the queue.
func (r *SQLRepository) Reclaim(ctx context.Context, lease time.Duration) (int64, error) {
	const query = `
	UPDATE webhook_deliveries
	SET status = 'pending', claimed_at = NULL
	WHERE status = 'in_flight' AND claimed_at < NOW() - make_interval(secs => $1)`

	res, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, lease.Seconds())
	if err != nil {
		return 0, fmt.Errorf("reclaim deliveries: %w", err)
	}
	return res.RowsAffected()
}

type AttemptParams struct {
	DeliveryID    string
	Status        string
	Attempts      int
	NextAttemptAt time.Time
	StatusCode    *int
	Error         *string
}

// RecordAttempt stores the outcome of a send and releases the lease.
func (r *SQLRepository) RecordAttempt(ctx context.Context, params AttemptParams) error {
	const query = `
	UPDATE webhook_deliveries
	SET status = $2,
		attempts = $3,
		next_attempt_at = $4,
		last_status_code = $5,
		last_error = $6,
		delivered_at = CASE WHEN $2 = 'delivered' THEN NOW() ELSE delivered_at END,
		claimed_at = NULL
	WHERE id = $1`

	_, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, params.DeliveryID, params.Status,
		params.Attempts, params.NextAttemptAt, params.StatusCode, params.Error)
	if err != nil {
		return fmt.Errorf("record attempt of delivery %s: %w", params.DeliveryID, err)
	}
	return nil
}

func (r *SQLRepository) UpsertSource(ctx context.Context, tenantID, source, secret string) error {
	const query = `
	INSERT INTO inbound_webhook_sources (tenant_id, source, secret)
	VALUES ($1, $2, $3)
	ON CONFLICT (tenant_id, source) DO UPDATE SET secret = EXCLUDED.secret`

	if _, err := db.ExecutorFromContext(ctx, r.db).ExecContext(ctx, query, tenantID, source, secret); err != nil {
		return fmt.Errorf("upsert webhook source %s: %w", source, err)
	}
	return nil
}

// FindSource resolves the tenant and secret of an inbound source.
func (r *SQLRepository) FindSource(ctx context.Context, tenantSlug, source string) (tenantID, secret string, err error) {
	const query = `
	SELECT s.tenant_id, s.secret
	FROM inbound_webhook_sources s
	JOIN tenants t ON t.id = s.tenant_id
	WHERE t.slug = $1 AND s.source = $2`

	err = db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantSlug, source).Scan(&tenantID, &secret)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", ErrSourceNotFound
		}
		return "", "", fmt.Errorf("find webhook source %s/%s: %w", tenantSlug, source, err)
	}
	return tenantID, secret, nil
}

// RecordInbound stores an inbound event once. It reports false when the event
// was already received.
func (r *SQLRepository) RecordInbound(ctx context.Context, tenantID, source, externalID string, payload []byte) (bool, error) {
	const query = `
	INSERT INTO inbound_webhook_events (tenant_id, source, external_id, payload)
	VALUES ($1, $2, $3, $4::jsonb)
	ON CONFLICT (tenant_id, source, external_id) DO NOTHING
	RETURNING id`

	var id string
	err := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, query, tenantID, source, externalID, string(payload)).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("record inbound event %s: %w", externalID, err)
	}
	return true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEndpoint(row scanner) (*Endpoint, error) {
	var (
		e      Endpoint
		events db.TextArray
	)
	if err := row.Scan(&e.ID, &e.TenantID, &e.URL, &e.Secret, &events, &e.Active, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Events = events
	return &e, nil
}

func scanDelivery(row scanner) (*Delivery, error) {
	var (
		d       Delivery
		payload []byte
	)
	if err := row.Scan(&d.ID, &d.EndpointID, &d.EventID, &d.EventType, &payload, &d.Status, &d.Attempts,
		&d.NextAttemptAt, &d.LastError, &d.LastStatusCode, &d.DeliveredAt, &d.CreatedAt); err != nil {
		return nil, err
	}
	d.Payload = payload
	return &d, nil
}
