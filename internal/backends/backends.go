// Package backends turns configuration into concrete storage and archive
// implementations. Both cmd/server and cmd/seed go through it.
package backends

import (
	"context"
	"fmt"

	"github.com/kiwari-pos/qrcounter/internal/archive"
	fsarchive "github.com/kiwari-pos/qrcounter/internal/archive/fs"
	s3archive "github.com/kiwari-pos/qrcounter/internal/archive/s3"
	"github.com/kiwari-pos/qrcounter/internal/config"
	"github.com/kiwari-pos/qrcounter/internal/enum"
	"github.com/kiwari-pos/qrcounter/internal/store"
	"github.com/kiwari-pos/qrcounter/internal/store/flatfile"
	"github.com/kiwari-pos/qrcounter/internal/store/postgres"
	"github.com/kiwari-pos/qrcounter/internal/store/sqlstore"
)

const defaultSQLitePath = "data/pos.db"

// OpenStore opens the catalog and history backend named by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case enum.StoreDriverFile, "":
		return flatfile.Open(cfg.ItemsFile, cfg.TxnFile)
	case enum.StoreDriverSQLite:
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		return sqlstore.Open(ctx, sqlstore.SQLite, dsn)
	case enum.StoreDriverMySQL:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the mysql store")
		}
		return sqlstore.Open(ctx, sqlstore.MySQL, cfg.DatabaseURL)
	case enum.StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		return postgres.Open(ctx, cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// OpenArchive returns the receipt archive named by cfg.ArchiveDriver,
// or nil when archiving is off.
func OpenArchive(ctx context.Context, cfg *config.Config) (archive.Archive, error) {
	switch cfg.ArchiveDriver {
	case enum.ArchiveDriverNone, "":
		return nil, nil
	case enum.ArchiveDriverFS:
		return fsarchive.New(cfg.ArchiveDir)
	case enum.ArchiveDriverS3:
		return s3archive.New(ctx, s3archive.Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			PathStyle:       cfg.S3PathStyle,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown ARCHIVE_DRIVER %q", cfg.ArchiveDriver)
	}
}
