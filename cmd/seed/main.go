package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kiwari-pos/qrcounter/internal/auth"
	"github.com/kiwari-pos/qrcounter/internal/backends"
	"github.com/kiwari-pos/qrcounter/internal/config"
	"github.com/kiwari-pos/qrcounter/internal/pos"
	"github.com/kiwari-pos/qrcounter/internal/service"
)

const defaultItems = "Tea:20,Coffee:30"

func main() {
	// CLI flags
	items := flag.String("items", "", `Catalog items as "name:cost,name:cost"`)
	pin := flag.String("pin", "", "Operator PIN to hash for OPERATOR_PIN_HASH")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("WARNING: load .env: %v", err)
	}

	// Fall back to environment variables
	if *items == "" {
		*items = os.Getenv("SEED_ITEMS")
	}
	if *pin == "" {
		*pin = os.Getenv("SEED_PIN")
	}

	// Fall back to defaults
	if *items == "" {
		*items = defaultItems
	}

	specs, err := parseItems(*items)
	if err != nil {
		log.Fatalf("Invalid -items: %v", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	st, err := backends.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("Unable to open %s store: %v", cfg.StoreDriver, err)
	}
	defer st.Close()
	log.Printf("Connected to %s store", cfg.StoreDriver)

	added, err := seedItems(ctx, service.NewCatalogService(st, nil), specs)
	if err != nil {
		log.Fatalf("Failed to seed items: %v", err)
	}
	log.Printf("Seed completed successfully, %d item(s) added", added)

	if *pin != "" {
		hash, err := auth.HashPIN(*pin)
		if err != nil {
			log.Fatalf("Failed to hash pin: %v", err)
		}
		fmt.Printf("OPERATOR_PIN_HASH=%s\n", hash)
	}
}

type itemSpec struct {
	Name string
	Cost string
}

// parseItems reads "Tea:20,Coffee:30". Costs are validated by the catalog.
func parseItems(s string) ([]itemSpec, error) {
	var out []itemSpec
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i := strings.LastIndex(part, ":")
		if i <= 0 || i == len(part)-1 {
			return nil, fmt.Errorf("%q: want name:cost", part)
		}
		out = append(out, itemSpec{Name: strings.TrimSpace(part[:i]), Cost: strings.TrimSpace(part[i+1:])})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no items given")
	}
	return out, nil
}

// catalog is the slice of *service.CatalogService the seeder uses.
type catalog interface {
	ListItems(ctx context.Context) ([]pos.Item, error)
	AddItem(ctx context.Context, name, cost string) (pos.Item, error)
}

// seedItems adds every spec whose name is not already in the catalog.
func seedItems(ctx context.Context, c catalog, specs []itemSpec) (int, error) {
	existing, err := c.ListItems(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, it := range existing {
		have[strings.ToLower(it.Name)] = true
	}

	added := 0
	for _, s := range specs {
		if have[strings.ToLower(s.Name)] {
			log.Printf("Item '%s' already exists, skipping", s.Name)
			continue
		}
		it, err := c.AddItem(ctx, s.Name, s.Cost)
		if err != nil {
			return added, fmt.Errorf("add %q: %w", s.Name, err)
		}
		have[strings.ToLower(s.Name)] = true
		added++
		log.Printf("Created item '%s' (ID: %d, cost: %s)", it.Name, it.ID, it.Cost)
	}
	return added, nil
}
