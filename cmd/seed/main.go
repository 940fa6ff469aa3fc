package main

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gamassss/brevly/internal/config"
	"github.com/gamassss/brevly/internal/repository/postgres"
	"github.com/gamassss/brevly/pkg/generator"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	HOT_COUNT  = 100
	WARM_COUNT = 10000
	COLD_COUNT = 190000

	BATCH_SIZE  = 5000
	NUM_WORKERS = 4
)

const insertQuery = `
	INSERT INTO shortened_links (id, url, shortened_url, visits, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $5)
	ON CONFLICT (shortened_url) DO NOTHING
`

type DataGenerator struct {
	pool *pgxpool.Pool
	now  time.Time
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Unable to ping database: %v\n", err)
	}

	if err := postgres.NewShortenedLinkRepository(pool).Migrate(ctx); err != nil {
		log.Fatalf("Failed to apply schema: %v\n", err)
	}

	gen := &DataGenerator{pool: pool, now: time.Now().UTC()}

	if err := gen.clearData(ctx); err != nil {
		log.Fatalf("Failed to clear data: %v\n", err)
	}

	if err := gen.insertRange(ctx, 1, HOT_COUNT, gen.hotRow); err != nil {
		log.Fatalf("Failed to insert hot links: %v\n", err)
	}

	if err := gen.insertRange(ctx, 1, WARM_COUNT, gen.warmRow); err != nil {
		log.Fatalf("Failed to insert warm links: %v\n", err)
	}

	if err := gen.insertColdParallel(ctx); err != nil {
		log.Fatalf("Failed to insert cold links: %v\n", err)
	}

	if _, err := pool.Exec(ctx, "ANALYZE shortened_links"); err != nil {
		log.Printf("Warning: ANALYZE failed: %v\n", err)
	}

	if err := gen.verifyData(ctx); err != nil {
		log.Printf("Warning: Data verification failed: %v\n", err)
	}
}

type row struct {
	url       string
	alias     string
	visits    int
	createdAt time.Time
}

type rowFunc func(i int) (row, error)

func (g *DataGenerator) hotRow(i int) (row, error) {
	return row{
		url:       fmt.Sprintf("https://youtube.com/watch?v=%06d", i),
		alias:     fmt.Sprintf("hot_%06d", i),
		visits:    10000 - i,
		createdAt: g.now.Add(-time.Duration(i) * time.Minute),
	}, nil
}

func (g *DataGenerator) warmRow(i int) (row, error) {
	return row{
		url:       fmt.Sprintf("https://github.com/repo/%06d", i),
		alias:     fmt.Sprintf("warm_%06d", i),
		visits:    i % 100,
		createdAt: g.now.Add(-time.Duration(i) * time.Hour),
	}, nil
}

func (g *DataGenerator) coldRow(i int) (row, error) {
	code, err := generator.GenerateShortCodeN(10)
	if err != nil {
		return row{}, err
	}
	return row{
		url:       fmt.Sprintf("https://example.com/page/%07d", i),
		alias:     "cold_" + code,
		createdAt: g.now.Add(-time.Duration(i) * time.Second),
	}, nil
}

func (g *DataGenerator) clearData(ctx context.Context) error {
	_, err := g.pool.Exec(ctx, "TRUNCATE shortened_links")
	return err
}

func (g *DataGenerator) insertRange(ctx context.Context, start, end int, next rowFunc) error {
	for i := start; i <= end; i += BATCH_SIZE {
		batchEnd := i + BATCH_SIZE - 1
		if batchEnd > end {
			batchEnd = end
		}

		batch := &pgx.Batch{}
		for j := i; j <= batchEnd; j++ {
			r, err := next(j)
			if err != nil {
				return err
			}
			batch.Queue(insertQuery, uuid.NewString(), r.url, r.alias, r.visits, r.createdAt)
		}

		br := g.pool.SendBatch(ctx, batch)
		for k := 0; k < batch.Len(); k++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("batch exec failed: %w", err)
			}
		}
		br.Close()
	}

	return nil
}

func (g *DataGenerator) insertColdParallel(ctx context.Context) error {
	var wg sync.WaitGroup
	errChan := make(chan error, NUM_WORKERS)

	rowsPerWorker := COLD_COUNT / NUM_WORKERS

	for workerID := 0; workerID < NUM_WORKERS; workerID++ {
		wg.Add(1)

		start := workerID*rowsPerWorker + 1
		end := start + rowsPerWorker - 1
		if workerID == NUM_WORKERS-1 {
			end = COLD_COUNT
		}

		go func(id, start, end int) {
			defer wg.Done()

			if err := g.insertRange(ctx, start, end, g.coldRow); err != nil {
				errChan <- fmt.Errorf("worker %d failed: %w", id, err)
			}
		}(workerID, start, end)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		return err
	}

	return nil
}

// verifyData tolerates missing cold rows, whose random aliases may collide.
func (g *DataGenerator) verifyData(ctx context.Context) error {
	var count int64
	if err := g.pool.QueryRow(ctx, "SELECT COUNT(*) FROM shortened_links").Scan(&count); err != nil {
		return err
	}

	minimum := int64(HOT_COUNT + WARM_COUNT)
	expected := minimum + COLD_COUNT
	if count < minimum || count > expected {
		return fmt.Errorf("expected between %d and %d rows but got %d", minimum, expected, count)
	}

	log.Printf("Seeded %d shortened links\n", count)
	return nil
}
