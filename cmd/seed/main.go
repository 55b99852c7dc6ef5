package main

import (
	"context"
	"errors"
	"os"
	"time"

	"portcall/internal/berths/catalog"
	"portcall/pkg/client"
	"portcall/pkg/config"
)

const (
	JobName = "berth-seed"

	EnvSeedFile  = "SEED_FILE"
	EnvBerthsURL = "BERTHS_URL"

	defaultBerthsURL = "http://localhost:8080"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg := config.Load(JobName)

	path := os.Getenv(EnvSeedFile)
	berthsURL := os.Getenv(EnvBerthsURL)
	if berthsURL == "" {
		berthsURL = defaultBerthsURL
	}

	c, err := catalog.Load(path)
	if err != nil {
		cfg.Log.Fatal("Failed to load berth catalog", "error", err)
	}

	berths := client.NewBerthClient(berthsURL).WithClientID(JobName)
	if err := berths.WaitForHealthy(ctx); err != nil {
		cfg.Log.Fatal("Berths service is not reachable", "url", berthsURL, "error", err)
	}

	var created, existing, failed int
	for _, b := range c.Models() {
		err := berths.CreateBerth(ctx, b)
		switch {
		case err == nil:
			created++
			cfg.Log.Info("Berth created", "name", b.Name, "cargo_category", b.CargoCategory)
		case errors.Is(err, client.ErrBerthExists):
			existing++
			stored, getErr := berths.GetBerth(ctx, b.Name)
			if getErr != nil {
				cfg.Log.Warn("Could not compare seeded berth", "name", b.Name, "error", getErr)
				continue
			}
			if drift := catalog.Drift(b, stored); len(drift) > 0 {
				cfg.Log.Warn("Seeded berth differs from catalog", "name", b.Name, "fields", drift)
				continue
			}
			cfg.Log.Info("Berth already seeded", "name", b.Name)
		default:
			failed++
			cfg.Log.Error("Failed to seed berth", "name", b.Name, "error", err)
		}
	}

	cfg.Log.Info("Seeding finished", "created", created, "existing", existing, "failed", failed)
	if failed > 0 {
		cfg.Log.Fatal("Seeding incomplete", "failed", failed)
	}
}
