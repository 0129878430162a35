package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/craftledger/internal/config"
	"github.com/andresuchdata/craftledger/internal/drive"
	"github.com/andresuchdata/craftledger/internal/repository/postgres"
)

// Open builds the BlobStore named by cfg.Storage.Backend.
func Open(ctx context.Context, cfg *config.Config) (BlobStore, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	log.Info().Str("backend", backend).Str("key", cfg.Storage.Key).Msg("opening ledger storage")

	switch backend {
	case "memory":
		return NewMemoryStore(), nil
	case "", "local":
		s, err := NewLocalStore(cfg.Storage.LocalDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "s3":
		s, err := NewS3Store(cfg.S3)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "redis":
		s, err := NewRedisStore(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		repo, err := postgres.NewBlobRepository(db, cfg.Database.Table)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return repo, nil
	case "drive":
		s, err := drive.NewService(ctx, cfg.Drive.CredentialsJSON, cfg.Drive.FolderPath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

