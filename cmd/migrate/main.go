package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/checkout/internal/domain"
	"github.com/vladislavdragonenkov/checkout/internal/service/catalog"
	"github.com/vladislavdragonenkov/checkout/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
)

type options struct {
	direction string
	steps     int
	dsn       string
	seedFile  string
}

// seedCatalog - формат файла для -direction seed.
type seedCatalog struct {
	Customers []struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"customers"`
	Products []struct {
		Name       string `json:"name"`
		PriceMinor int64  `json:"price_minor"`
		Quantity   int32  `json:"quantity"`
	} `json:"products"`
}

func parseFlags(args []string, lookupEnv func(string) string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.direction, "direction", "up", "migration direction: up|down|status|seed")
	fs.IntVar(&opts.steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	fs.StringVar(&opts.dsn, "dsn", "", "PostgreSQL DSN (fallback: OMS_POSTGRES_DSN)")
	fs.StringVar(&opts.seedFile, "seed-file", "", "JSON catalog with customers and products for -direction seed")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	opts.direction = strings.ToLower(strings.TrimSpace(opts.direction))
	if strings.TrimSpace(opts.dsn) == "" {
		opts.dsn = strings.TrimSpace(lookupEnv("OMS_POSTGRES_DSN"))
	}
	if opts.dsn == "" {
		return options{}, errors.New("OMS_POSTGRES_DSN (or -dsn) is required")
	}

	switch opts.direction {
	case "up", "down", "status":
	case "seed":
		if opts.seedFile == "" {
			return options{}, errors.New("-seed-file is required for seed")
		}
	default:
		return options{}, fmt.Errorf("unsupported direction: %s (use up|down|status|seed)", opts.direction)
	}
	return opts, nil
}

func readSeed(r io.Reader) (seedCatalog, error) {
	var seed seedCatalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return seedCatalog{}, fmt.Errorf("decode seed catalog: %w", err)
	}
	return seed, nil
}

// applySeed создаёт клиентов и товары через каталог. Уже существующие записи пропускаются.
func applySeed(ctx context.Context, svc *catalog.Service, seed seedCatalog, out io.Writer) error {
	var created, skipped int
	for _, c := range seed.Customers {
		customer, err := svc.CreateCustomer(ctx, c.Name, c.Email)
		switch {
		case domain.IsAlreadyExists(err):
			skipped++
		case err != nil:
			return fmt.Errorf("seed customer %q: %w", c.Email, err)
		default:
			created++
			_, _ = fmt.Fprintf(out, "customer %s %s\n", customer.ID, customer.Email)
		}
	}
	for _, p := range seed.Products {
		product, err := svc.CreateProduct(ctx, p.Name, p.PriceMinor, p.Quantity)
		switch {
		case domain.IsAlreadyExists(err):
			skipped++
		case err != nil:
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		default:
			created++
			_, _ = fmt.Fprintf(out, "product %s %s qty=%d\n", product.ID, product.Name, product.Quantity)
		}
	}
	_, _ = fmt.Fprintf(out, "seed ok: created=%d skipped=%d\n", created, skipped)
	return nil
}

func run(ctx context.Context, opts options, out io.Writer) error {
	store, err := postgres.Open(ctx, opts.dsn)
	if err != nil {
		return fmt.Errorf("open postgres store: %w", err)
	}
	defer store.Close()

	switch opts.direction {
	case "up":
		if err := store.MigrateUp(ctx, opts.steps); err != nil {
			return fmt.Errorf("migrate up failed: %w", err)
		}
	case "down":
		if err := store.MigrateDown(ctx, opts.steps); err != nil {
			return fmt.Errorf("migrate down failed: %w", err)
		}
	case "seed":
		f, err := os.Open(opts.seedFile)
		if err != nil {
			return err
		}
		defer f.Close()

		seed, err := readSeed(f)
		if err != nil {
			return err
		}
		svc := catalog.NewService(
			postgres.NewCustomerRepository(store),
			postgres.NewProductRepository(store),
			log.WithField("component", "seed"),
		)
		return applySeed(ctx, svc, seed, out)
	}

	state, err := store.MigrationStatus(ctx)
	if err != nil {
		return fmt.Errorf("migration status failed: %w", err)
	}
	_, _ = fmt.Fprintf(out, "migrate %s ok: version=%d applied=%d pending=%d\n",
		opts.direction, state.Version, state.Applied, state.Pending())
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Getenv)
	if err != nil {
		fail("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fail("%v", err)
	}
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
