package dataset

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"studentapi/internal/model"
)

// DefaultBatchSize is the number of rows written per INSERT by SeedDB.
const DefaultBatchSize = 1000

// LoadDB reads the students table ordered by primary key.
func LoadDB(ctx context.Context, db *gorm.DB) (*Dataset, error) {
	var students []model.Student
	if err := db.WithContext(ctx).Order("id").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to read students table: %w", err)
	}
	return New(students)
}

// SeedDB replaces the contents of the students table with records.
// Record i gets primary key i+1, so LoadDB returns them in the same order.
// Rows past len(records) are deleted and the rest are upserted, all in one
// transaction.
func SeedDB(ctx context.Context, db *gorm.DB, records []model.Student, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var written int64
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id > ?", len(records)).Delete(&model.Student{}).Error; err != nil {
			return fmt.Errorf("failed to delete stale students: %w", err)
		}
		for start := 0; start < len(records); start += batchSize {
			end := min(start+batchSize, len(records))
			n, err := saveBatch(tx, records[start:end], start)
			if err != nil {
				return err
			}
			written += n
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Printf("Seeded %d students into the database", len(records))
	return written, nil
}

func saveBatch(tx *gorm.DB, students []model.Student, offset int) (int64, error) {
	if len(students) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	values := make([]interface{}, 0, len(students)*3)
	sb.WriteString("INSERT INTO students (id, name, total) VALUES ")
	for i, student := range students {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?, ?, ?)")
		values = append(values, offset+i+1, student.Name, student.Total)
	}
	sb.WriteString(" ON CONFLICT (id) DO UPDATE SET name = excluded.name, total = excluded.total")

	res := tx.Exec(sb.String(), values...)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to insert batch into database: %w", res.Error)
	}
	return res.RowsAffected, nil
}
