package repository

import (
	"context"

	"fabricfwd/internal/domain"
)

// Repository defines the interface for fabric data access
type Repository interface {
	// Read operations
	GetFabric(ctx context.Context) (*domain.Fabric, error)
	GetHost(ctx context.Context, mac domain.MAC) (*domain.Host, error)

	// Write operations
	UpsertHost(ctx context.Context, host domain.Host) error
	DeleteHost(ctx context.Context, mac domain.MAC) error

	// Bulk operations
	ImportFabric(ctx context.Context, fabric *domain.Fabric) error

	// Close releases resources
	Close() error
}
