package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"fabricfwd/internal/domain"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanHost reads a (mac, device, port) row. sql.ErrNoRows is returned
// unwrapped so callers can detect a missing host.
func scanHost(row rowScanner) (*domain.Host, error) {
	var (
		mac, device string
		port        int64
	)
	if err := row.Scan(&mac, &device, &port); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan host: %w", err)
	}
	addr, err := domain.ParseMAC(mac)
	if err != nil {
		return nil, fmt.Errorf("stored host has invalid address %q: %w", mac, err)
	}
	host := domain.NewHost(addr, domain.NewConnectPoint(domain.DeviceID(device), domain.PortNumber(port)))
	return &host, nil
}

// nullToString safely converts sql.NullString to string
func nullToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// getMetadata returns the value stored under key, or "" when absent
func (r *Repository) getMetadata(ctx context.Context, key string) (string, error) {
	var value sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %s: %w", key, err)
	}
	return nullToString(value), nil
}

func setMetadata(ctx context.Context, tx *sql.Tx, key, value string) error {
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO metadata (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value); err != nil {
		return fmt.Errorf("failed to store metadata %s: %w", key, err)
	}
	return nil
}
