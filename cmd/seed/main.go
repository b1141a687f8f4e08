// Package main seeds a development database with sample relief data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"bayanihan/internal/core/id"
	"bayanihan/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalw("failed to connect", "error", err)
	}
	defer pool.Close()

	seedInventory(ctx, pool, log)
	seedBeneficiaries(ctx, pool, log)
	seedCalamities(ctx, pool, log)

	log.Info("seed complete")
}

func seedInventory(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) {
	items := []struct {
		name      string
		category  string
		quantity  int64
		unit      string
		threshold int64
	}{
		{"Rice", "Food", 500, "sack", 50},
		{"Canned Goods", "Food", 1200, "can", 100},
		{"Instant Noodles", "Food", 800, "pack", 100},
		{"Bottled Water", "Water", 2000, "bottle", 200},
		{"Blankets", "Shelter", 300, "piece", 30},
		{"Hygiene Kits", "Hygiene", 400, "kit", 40},
		{"Medicine Kits", "Medical", 150, "kit", 20},
	}

	for _, item := range items {
		_, err := pool.Exec(ctx, `
			INSERT INTO inventory (id, item_name, category, quantity, unit, low_stock_threshold)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (item_name) DO NOTHING
		`, id.New(), item.name, item.category, item.quantity, item.unit, item.threshold)
		if err != nil {
			log.Warnw("failed to seed item", "name", item.name, "error", err)
		}
	}
	log.Infow("inventory seeded", "items", len(items))
}

func seedBeneficiaries(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) {
	beneficiaries := []struct {
		name       string
		barangay   string
		purok      string
		familySize int
	}{
		{"Maria Santos", "San Isidro", "Purok 1", 5},
		{"Jose Reyes", "San Isidro", "Purok 2", 3},
		{"Ana Cruz", "Poblacion", "Purok 1", 6},
		{"Pedro Garcia", "Poblacion", "Purok 3", 4},
		{"Luz Mendoza", "Bagong Silang", "Purok 2", 7},
	}

	for _, b := range beneficiaries {
		_, err := pool.Exec(ctx, `
			INSERT INTO beneficiaries (id, full_name, barangay, purok, family_size)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (full_name, barangay, purok) DO NOTHING
		`, id.New(), b.name, b.barangay, b.purok, b.familySize)
		if err != nil {
			log.Warnw("failed to seed beneficiary", "name", b.name, "error", err)
		}
	}
	log.Infow("beneficiaries seeded", "count", len(beneficiaries))
}

func seedCalamities(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) {
	calamityID := id.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO calamities (id, name, description, status)
		VALUES ($1, 'Typhoon Odette Relief', 'Relief operations for typhoon-affected barangays', 'Active')
		ON CONFLICT (name) DO NOTHING
	`, calamityID)
	if err != nil {
		log.Warnw("failed to seed calamity", "error", err)
		return
	}

	template := []struct {
		itemName string
		quantity int64
	}{
		{"Rice", 2},
		{"Canned Goods", 10},
		{"Bottled Water", 12},
		{"Blankets", 2},
	}

	for _, t := range template {
		_, err := pool.Exec(ctx, `
			INSERT INTO calamity_items (id, calamity_id, inventory_id, standard_quantity)
			SELECT $1, c.id, i.id, $2
			FROM calamities c, inventory i
			WHERE c.name = 'Typhoon Odette Relief' AND i.item_name = $3
			ON CONFLICT (calamity_id, inventory_id) DO NOTHING
		`, id.New(), t.quantity, t.itemName)
		if err != nil {
			log.Warnw("failed to seed template item", "item", t.itemName, "error", err)
		}
	}
	log.Info("calamity template seeded")
}
