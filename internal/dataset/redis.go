package dataset

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/go-redis/redis/v8"

	"studentapi/internal/config"
	"studentapi/internal/model"
)

const (
	studentsKey       = "students" // List: student IDs in dataset order
	studentInfoPrefix = "student:" // Hash prefix: student:{id} -> name, total
)

func getStudentInfoKey(studentID string) string {
	return studentInfoPrefix + studentID
}

// NewRedisClient creates a client from cfg and checks the connection.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("could not connect to Redis at %s: %w", cfg.RedisAddr, err)
	}

	log.Printf("Successfully connected to Redis DB %d", cfg.RedisDB)
	return rdb, nil
}

// LoadRedis reads the students list and the hash of every listed ID in
// one pipeline.
func LoadRedis(ctx context.Context, client redis.Cmdable) (*Dataset, error) {
	ids, err := client.LRange(ctx, studentsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get student IDs from Redis: %w", err)
	}

	pipe := client.Pipeline()
	cmds := make([]*redis.StringStringMapCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, getStudentInfoKey(id))
	}
	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, fmt.Errorf("failed to get students from Redis: %w", err)
		}
	}

	records := make([]model.Student, 0, len(ids))
	for i, cmd := range cmds {
		data := cmd.Val()
		if len(data) == 0 {
			return nil, fmt.Errorf("student %s: %w: hash is missing", ids[i], ErrMalformed)
		}
		total, err := strconv.ParseFloat(data["total"], 64)
		if err != nil {
			return nil, fmt.Errorf("student %s: %w: total %q", ids[i], ErrMalformed, data["total"])
		}
		records = append(records, model.Student{Name: data["name"], Total: total})
	}
	return New(records)
}

// SeedRedis replaces the stored dataset with records.
func SeedRedis(ctx context.Context, client redis.Cmdable, records []model.Student) error {
	oldIDs, err := client.LRange(ctx, studentsKey, 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to get student IDs from Redis: %w", err)
	}

	_, err = client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range oldIDs {
			pipe.Del(ctx, getStudentInfoKey(id))
		}
		pipe.Del(ctx, studentsKey)

		for i, s := range records {
			id := strconv.Itoa(i + 1)
			pipe.HSet(ctx, getStudentInfoKey(id), map[string]interface{}{
				"name":  s.Name,
				"total": strconv.FormatFloat(s.Total, 'g', -1, 64),
			})
			pipe.RPush(ctx, studentsKey, id)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write students to Redis: %w", err)
	}

	log.Printf("Seeded %d students into Redis", len(records))
	return nil
}
