package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fabricfwd/internal/domain"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

// New creates a new SQLite repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath+
		"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer at a time; this also keeps ":memory:" on a single database.
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS devices (
		id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS links (
		src_device TEXT NOT NULL,
		src_port INTEGER NOT NULL,
		dst_device TEXT NOT NULL,
		dst_port INTEGER NOT NULL,
		PRIMARY KEY (src_device, src_port),
		FOREIGN KEY (src_device) REFERENCES devices(id) ON DELETE CASCADE,
		FOREIGN KEY (dst_device) REFERENCES devices(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS hosts (
		mac TEXT PRIMARY KEY,
		device TEXT NOT NULL,
		port INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (device) REFERENCES devices(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS metadata (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_links_dst ON links(dst_device);
	CREATE INDEX IF NOT EXISTS idx_hosts_device ON hosts(device);
	`

	_, err := r.db.Exec(schema)
	return err
}

// GetFabric loads the complete fabric from the database
func (r *Repository) GetFabric(ctx context.Context) (*domain.Fabric, error) {
	fabric := domain.NewFabric()

	version, err := r.getMetadata(ctx, "version")
	if err != nil {
		return nil, err
	}
	fabric.Version = version

	// Load devices
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM devices ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		fabric.AddDevice(domain.DeviceID(id))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating devices: %w", err)
	}

	// Load links
	linkRows, err := r.db.QueryContext(ctx, `
		SELECT src_device, src_port, dst_device, dst_port
		FROM links ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var link domain.Link
		if err := linkRows.Scan(&link.Src.Device, &link.Src.Port, &link.Dst.Device, &link.Dst.Port); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		fabric.Links = append(fabric.Links, link)
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating links: %w", err)
	}

	// Load hosts
	hostRows, err := r.db.QueryContext(ctx, `SELECT mac, device, port FROM hosts ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hosts: %w", err)
	}
	defer hostRows.Close()

	for hostRows.Next() {
		host, err := scanHost(hostRows)
		if err != nil {
			return nil, err
		}
		fabric.AddHost(*host)
	}
	if err := hostRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hosts: %w", err)
	}

	return fabric, nil
}

// GetHost retrieves a single host by address. It returns nil, nil when the
// host is unknown.
func (r *Repository) GetHost(ctx context.Context, mac domain.MAC) (*domain.Host, error) {
	row := r.db.QueryRowContext(ctx, `SELECT mac, device, port FROM hosts WHERE mac = ?`, mac.String())
	host, err := scanHost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return host, nil
}

// UpsertHost inserts a host or moves it to a new attachment point
func (r *Repository) UpsertHost(ctx context.Context, host domain.Host) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO hosts (mac, device, port, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(mac) DO UPDATE SET
			device = excluded.device,
			port = excluded.port,
			updated_at = CURRENT_TIMESTAMP
	`, host.MAC.String(), string(host.Location.Device), int64(host.Location.Port))

	if err != nil {
		return fmt.Errorf("failed to upsert host: %w", err)
	}
	return nil
}

// DeleteHost removes a host
func (r *Repository) DeleteHost(ctx context.Context, mac domain.MAC) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM hosts WHERE mac = ?`, mac.String())
	if err != nil {
		return fmt.Errorf("failed to delete host: %w", err)
	}
	return nil
}

// ImportFabric replaces all data with the provided fabric
func (r *Repository) ImportFabric(ctx context.Context, fabric *domain.Fabric) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Clear existing data (order matters due to foreign keys)
	for _, table := range []string{"hosts", "links", "devices"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	deviceStmt, err := tx.PrepareContext(ctx, `INSERT INTO devices (id) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare device statement: %w", err)
	}
	defer deviceStmt.Close()

	for _, d := range fabric.Devices {
		if _, err := deviceStmt.ExecContext(ctx, string(d)); err != nil {
			return fmt.Errorf("failed to insert device %s: %w", d, err)
		}
	}

	linkStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO links (src_device, src_port, dst_device, dst_port)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare link statement: %w", err)
	}
	defer linkStmt.Close()

	for _, l := range fabric.Links {
		if _, err := linkStmt.ExecContext(ctx, string(l.Src.Device), int64(l.Src.Port),
			string(l.Dst.Device), int64(l.Dst.Port)); err != nil {
			return fmt.Errorf("failed to insert link %s: %w", l, err)
		}
	}

	hostStmt, err := tx.PrepareContext(ctx, `INSERT INTO hosts (mac, device, port) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare host statement: %w", err)
	}
	defer hostStmt.Close()

	for _, h := range fabric.Hosts {
		if _, err := hostStmt.ExecContext(ctx, h.MAC.String(), string(h.Location.Device),
			int64(h.Location.Port)); err != nil {
			return fmt.Errorf("failed to insert host %s: %w", h.MAC, err)
		}
	}

	if err := setMetadata(ctx, tx, "version", fabric.Version); err != nil {
		return err
	}
	if err := setMetadata(ctx, tx, "last_import", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LastImport returns when the fabric was last imported, or the zero time.
func (r *Repository) LastImport(ctx context.Context) (time.Time, error) {
	v, err := r.getMetadata(ctx, "last_import")
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse import timestamp: %w", err)
	}
	return t, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
