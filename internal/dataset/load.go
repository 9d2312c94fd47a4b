package dataset

import (
	"context"
	"fmt"
	"log"

	"studentapi/internal/config"
	"studentapi/internal/database"
)

// LoadFile reads a file dataset in the given format (json, csv or xlsx).
func LoadFile(format, path string) (*Dataset, error) {
	switch format {
	case config.SourceJSON:
		return LoadJSONFile(path)
	case config.SourceCSV:
		return LoadCSVFile(path)
	case config.SourceXLSX:
		return LoadXLSXFile(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q", format)
	}
}

// Load builds the dataset from the source configured in cfg. It is called
// once at startup; any error means the server must not start.
func Load(ctx context.Context, cfg *config.Config) (*Dataset, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	var (
		ds  *Dataset
		err error
	)
	switch cfg.DataSource {
	case config.SourceJSON, config.SourceCSV, config.SourceXLSX:
		ds, err = LoadFile(cfg.DataSource, cfg.DataFile)
	case config.SourceSQLite, config.SourcePostgres:
		db, dbErr := database.Connect(ctx, cfg)
		if dbErr != nil {
			return nil, fmt.Errorf("failed to load %s dataset: %w", cfg.DataSource, dbErr)
		}
		ds, err = LoadDB(ctx, db)
		database.Close(db)
	case config.SourceRedis:
		client, rErr := NewRedisClient(ctx, cfg)
		if rErr != nil {
			return nil, rErr
		}
		ds, err = LoadRedis(ctx, client)
		client.Close()
	default:
		return nil, fmt.Errorf("unsupported data source %q", cfg.DataSource)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s dataset: %w", cfg.DataSource, err)
	}

	log.Printf("Loaded %d students from %s source", ds.Len(), cfg.DataSource)
	return ds, nil
}
