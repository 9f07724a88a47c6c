package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/config"
)

func TestBuildGatewaySQLite(t *testing.T) {
	cfg := &config.Config{
		Store:  config.StoreSQLite,
		Table:  comment.DefaultTable,
		DBPath: filepath.Join(t.TempDir(), "golden.db"),
	}

	g, closeStore, err := buildGateway(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer closeStore()

	if _, ok := g.(*comment.SQLiteStore); !ok {
		t.Fatalf("gateway = %T, want *comment.SQLiteStore", g)
	}

	ctx := context.Background()
	if _, err := g.Insert(ctx, comment.Input{Name: "Ana", Message: "so fluffy"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	comments, err := g.QueryAll(ctx)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(comments) != 1 {
		t.Errorf("len = %d, want 1", len(comments))
	}
}

func TestBuildGatewayUnconfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"postgres without url", &config.Config{Store: config.StorePostgres, Table: comment.DefaultTable}},
		{"rest without key", &config.Config{Store: config.StoreREST, Table: comment.DefaultTable, SupabaseURL: "https://x.supabase.co"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, closeStore, err := buildGateway(context.Background(), tt.cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			defer closeStore()
			if _, ok := g.(comment.Unconfigured); !ok {
				t.Errorf("gateway = %T, want comment.Unconfigured", g)
			}
		})
	}
}

func TestBuildGatewayREST(t *testing.T) {
	cfg := &config.Config{
		Store:       config.StoreREST,
		Table:       comment.DefaultTable,
		SupabaseURL: "https://x.supabase.co",
		SupabaseKey: "anon",
		HTTPTimeout: time.Second,
	}

	g, closeStore, err := buildGateway(context.Background(), cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer closeStore()
	if _, ok := g.(*comment.RESTStore); !ok {
		t.Errorf("gateway = %T, want *comment.RESTStore", g)
	}
}

func TestBuildGatewayBadTable(t *testing.T) {
	cfg := &config.Config{
		Store:  config.StoreSQLite,
		Table:  "Comments; DROP TABLE x",
		DBPath: filepath.Join(t.TempDir(), "golden.db"),
	}

	if _, _, err := buildGateway(context.Background(), cfg, zerolog.Nop()); err == nil {
		t.Fatal("expected error for invalid table name")
	}
}

func TestRunServeRejectsBadConfig(t *testing.T) {
	t.Setenv("GOLDEN_STORE", "mongo")

	err := runServe(context.Background(), 0, filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Fatal("expected config error")
	}
}
