// ABOUTME: Audit log persistence for administrative mutations
// ABOUTME: Implements AppendAudit and row scanning for the audit_log table

package engine

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/2389/bncctl/internal/registry"
)

// AppendAudit records an administrative mutation. ID and CreatedAt are
// filled in when absent.
func (e *Engine) AppendAudit(ctx context.Context, entry *registry.Audit) error {
	if entry == nil {
		return errors.New("nil audit entry")
	}

	id := entry.ID
	if id == "" {
		id = uuid.NewString()
	}
	ts := entry.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var detailJSON sql.NullString
	if len(entry.Detail) > 0 {
		data, err := json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("marshaling audit detail: %w", err)
		}
		detailJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `
		INSERT INTO audit_log (audit_id, actor, action, target_type, target_id, ts, detail_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := e.db.ExecContext(ctx, query,
		id,
		entry.Actor,
		entry.Action,
		entry.TargetType,
		entry.TargetID,
		ts.Format(time.RFC3339Nano),
		detailJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}

// scanAudit reads one audit_log row.
func scanAudit(rows *sql.Rows) (*registry.Audit, error) {
	var entry registry.Audit
	var tsStr string
	var detailJSON sql.NullString

	err := rows.Scan(
		&entry.ID,
		&entry.Actor,
		&entry.Action,
		&entry.TargetType,
		&entry.TargetID,
		&tsStr,
		&detailJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning audit entry: %w", err)
	}

	entry.CreatedAt, err = time.Parse(time.RFC3339Nano, tsStr)
	if err != nil {
		return nil, fmt.Errorf("parsing audit timestamp: %w", err)
	}

	if detailJSON.Valid {
		if err := json.Unmarshal([]byte(detailJSON.String), &entry.Detail); err != nil {
			return nil, fmt.Errorf("unmarshaling audit detail: %w", err)
		}
	}

	return &entry, nil
}
