// Command seed copies a file dataset into the SQL or Redis store that the
// server reads when DATA_SOURCE is sqlite, postgres or redis.
package main

import (
	"context"
	"flag"
	"log"

	"studentapi/internal/config"
	"studentapi/internal/database"
	"studentapi/internal/dataset"
)

func main() {
	var (
		from      = flag.String("from", config.SourceJSON, "input format: json, csv or xlsx")
		file      = flag.String("file", "", "input file (defaults to DATA_FILE)")
		to        = flag.String("to", config.SourceSQLite, "target store: sqlite, postgres or redis; existing students are replaced")
		batchSize = flag.Int("batch", dataset.DefaultBatchSize, "rows per INSERT for SQL targets")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *file == "" {
		*file = cfg.DataFile
	}

	ds, err := dataset.LoadFile(*from, *file)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *file, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout)
	defer cancel()

	cfg.DataSource = *to
	switch *to {
	case config.SourceSQLite, config.SourcePostgres:
		db, err := database.InitDB(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		_, err = dataset.SeedDB(ctx, db, ds.Records(), *batchSize)
		database.Close(db)
		if err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case config.SourceRedis:
		client, err := dataset.NewRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer client.Close()
		if err := dataset.SeedRedis(ctx, client, ds.Records()); err != nil {
			log.Fatalf("Failed to seed Redis: %v", err)
		}
	default:
		log.Fatalf("Unsupported target %q", *to)
	}

	log.Printf("Seeded %d students from %s into %s", ds.Len(), *file, *to)
}
