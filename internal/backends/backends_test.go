package backends

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/kiwari-pos/qrcounter/internal/config"
	"github.com/kiwari-pos/qrcounter/internal/enum"
	"github.com/kiwari-pos/qrcounter/internal/store/flatfile"
	"github.com/kiwari-pos/qrcounter/internal/store/sqlstore"
	"github.com/shopspring/decimal"
)

func TestOpenStore_File(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		StoreDriver: enum.StoreDriverFile,
		ItemsFile:   filepath.Join(dir, "items.xlsx"),
		TxnFile:     filepath.Join(dir, "transactions.xlsx"),
	}

	st, err := OpenStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()
	if _, ok := st.(*flatfile.Store); !ok {
		t.Fatalf("got %T, want *flatfile.Store", st)
	}
}

func TestOpenStore_SQLite(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: enum.StoreDriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "nested", "pos.db"),
	}

	st, err := OpenStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer st.Close()
	if _, ok := st.(*sqlstore.Store); !ok {
		t.Fatalf("got %T, want *sqlstore.Store", st)
	}
	if _, err := st.AddItem(context.Background(), "Tea", decimal.NewFromInt(20)); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestOpenStore_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
	}{
		{"unknown driver", config.Config{StoreDriver: "redis"}},
		{"mysql without dsn", config.Config{StoreDriver: enum.StoreDriverMySQL}},
		{"postgres without dsn", config.Config{StoreDriver: enum.StoreDriverPostgres}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := OpenStore(context.Background(), &tc.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestOpenArchive(t *testing.T) {
	a, err := OpenArchive(context.Background(), &config.Config{ArchiveDriver: enum.ArchiveDriverNone})
	if err != nil || a != nil {
		t.Fatalf("none: got %v, %v", a, err)
	}

	a, err = OpenArchive(context.Background(), &config.Config{ArchiveDriver: enum.ArchiveDriverFS, ArchiveDir: t.TempDir()})
	if err != nil || a == nil {
		t.Fatalf("fs: got %v, %v", a, err)
	}

	if _, err := OpenArchive(context.Background(), &config.Config{ArchiveDriver: enum.ArchiveDriverS3}); err == nil {
		t.Fatal("s3 without bucket should fail")
	}
	if _, err := OpenArchive(context.Background(), &config.Config{ArchiveDriver: "ftp"}); err == nil {
		t.Fatal("unknown driver should fail")
	}
}
