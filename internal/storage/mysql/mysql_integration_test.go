//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"hotel_ops/internal/domain"
	mysqlrepo "hotel_ops/internal/storage/mysql"
)

func migrationsDir(t *testing.T) string {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = filepath.Join("..", "..", "..", "migrations")
	}
	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("MIGRATIONS_DIR=%s is not a directory or missing", dir)
	}
	return dir
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)

	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// startMySQL runs an isolated MySQL container and returns a migrated repo.
func startMySQL(t *testing.T) *mysqlrepo.Repo {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env:        []string{"MYSQL_ROOT_PASSWORD=root", "MYSQL_DATABASE=hotel_ops"},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/hotel_ops?parseTime=true&multiStatements=true&charset=utf8mb4&loc=UTC",
		resource.GetPort("3306/tcp"))

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	applyMigrations(t, db)
	return mysqlrepo.New(db)
}

func TestRepo_MySQL(t *testing.T) {
	repo := startMySQL(t)
	ctx := context.Background()

	a := domain.Hotel{Code: "BRU-1", Name: "Brussels Centre", Timezone: "Europe/Brussels"}
	b := domain.Hotel{Code: "GNT-1", Name: "Ghent Docks", Timezone: "Europe/Brussels"}
	if err := repo.CreateHotel(ctx, &a); err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	if err := repo.CreateHotel(ctx, &b); err != nil {
		t.Fatalf("CreateHotel: %v", err)
	}
	dup := domain.Hotel{Code: "BRU-1", Name: "Copy", Timezone: "UTC"}
	if err := repo.CreateHotel(ctx, &dup); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("duplicate code: want conflict, got %v", err)
	}

	t.Run("orders keep their lines and stay in their tenant", func(t *testing.T) {
		o := domain.Order{
			HotelID: a.ID, Supplier: "Linen Co", Status: domain.OrderPending,
			Lines:      []domain.OrderLine{{Name: "Towels", Quantity: 40, Unit: "pcs"}},
			ExpectedOn: domain.NewDate(2026, 3, 12),
		}
		if err := repo.CreateOrder(ctx, &o); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		got, err := repo.GetOrder(ctx, a.ID, o.ID)
		if err != nil {
			t.Fatalf("GetOrder: %v", err)
		}
		if len(got.Lines) != 1 || got.Lines[0].Quantity != 40 || got.ExpectedOn.String() != "2026-03-12" {
			t.Fatalf("unexpected order: %+v", got)
		}
		if _, err := repo.GetOrder(ctx, b.ID, o.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("cross-tenant read: want not found, got %v", err)
		}
		if err := repo.DeleteOrder(ctx, b.ID, o.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("cross-tenant delete: want not found, got %v", err)
		}
	})

	t.Run("order pages and counts", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			o := domain.Order{HotelID: a.ID, Supplier: "Metro", Status: domain.OrderPending, Lines: []domain.OrderLine{{Name: "Milk", Quantity: 1}}}
			if err := repo.CreateOrder(ctx, &o); err != nil {
				t.Fatalf("CreateOrder: %v", err)
			}
		}
		page, err := repo.ListOrders(ctx, domain.OrderFilter{HotelID: a.ID, Page: domain.Page{Limit: 2, Offset: 3}})
		if err != nil || len(page) != 1 {
			t.Fatalf("ListOrders past the first page: %v %+v", err, page)
		}
		n, err := repo.CountOrders(ctx, a.ID, domain.OrderPending)
		if err != nil || n != 4 {
			t.Fatalf("CountOrders: %v %d", err, n)
		}
		if n, _ := repo.CountOrders(ctx, b.ID, domain.OrderPending); n != 0 {
			t.Fatalf("other tenant should have no orders, got %d", n)
		}
	})

	t.Run("lead totals group by stage", func(t *testing.T) {
		for _, l := range []domain.Lead{
			{HotelID: a.ID, Company: "Acme", Stage: domain.StageNew, ValueCents: 1000},
			{HotelID: a.ID, Company: "Globex", Stage: domain.StageNew, ValueCents: 500},
			{HotelID: a.ID, Company: "Initech", Stage: domain.StageWon, ValueCents: 200},
		} {
			if err := repo.CreateLead(ctx, &l); err != nil {
				t.Fatalf("CreateLead: %v", err)
			}
		}
		totals, err := repo.StageTotals(ctx, a.ID)
		if err != nil {
			t.Fatalf("StageTotals: %v", err)
		}
		got := map[domain.LeadStage]domain.StageSummary{}
		for _, st := range totals {
			got[st.Stage] = st
		}
		if len(got) != 2 || got[domain.StageNew].Count != 2 || got[domain.StageNew].ValueCents != 1500 || got[domain.StageWon].Count != 1 {
			t.Fatalf("unexpected totals %+v", totals)
		}
	})

	t.Run("loyalty balance never drops below zero", func(t *testing.T) {
		c := domain.LoyaltyCard{HotelID: a.ID, Number: "LC-00000001", HolderName: "Marie Dubois"}
		if err := repo.CreateCard(ctx, &c); err != nil {
			t.Fatalf("CreateCard: %v", err)
		}
		card, tx, err := repo.AddPoints(ctx, a.ID, c.ID, 600, "stay")
		if err != nil {
			t.Fatalf("AddPoints: %v", err)
		}
		if card.Points != 600 || tx.Balance != 600 || card.Tier != domain.TierSilver {
			t.Fatalf("unexpected card/tx: %+v %+v", card, tx)
		}
		if _, _, err := repo.AddPoints(ctx, a.ID, c.ID, -601, "redeem"); !errors.Is(err, domain.ErrInvalid) {
			t.Fatalf("overdraw: want invalid, got %v", err)
		}
		txs, err := repo.ListTransactions(ctx, a.ID, c.ID)
		if err != nil || len(txs) != 1 {
			t.Fatalf("ListTransactions: %v %+v", err, txs)
		}
	})

	t.Run("parking range filter is inclusive", func(t *testing.T) {
		s := domain.ParkingSpot{HotelID: a.ID, Label: "P1"}
		if err := repo.CreateSpot(ctx, &s); err != nil {
			t.Fatalf("CreateSpot: %v", err)
		}
		r := domain.ParkingReservation{
			HotelID: a.ID, SpotID: s.ID, Code: "P-ABC123", GuestName: "Jan",
			StartDate: domain.NewDate(2026, 3, 10), EndDate: domain.NewDate(2026, 3, 12),
		}
		if err := repo.CreateReservation(ctx, &r); err != nil {
			t.Fatalf("CreateReservation: %v", err)
		}
		hit, err := repo.ListReservations(ctx, domain.ParkingFilter{HotelID: a.ID, From: domain.NewDate(2026, 3, 12), To: domain.NewDate(2026, 3, 14)})
		if err != nil || len(hit) != 1 {
			t.Fatalf("touching range should match: %v %+v", err, hit)
		}
		miss, err := repo.ListReservations(ctx, domain.ParkingFilter{HotelID: a.ID, From: domain.NewDate(2026, 3, 13), To: domain.NewDate(2026, 3, 14)})
		if err != nil || len(miss) != 0 {
			t.Fatalf("later range should not match: %v %+v", err, miss)
		}
		if err := repo.DeleteSpot(ctx, a.ID, s.ID); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("spot with reservations: want conflict, got %v", err)
		}
	})

	t.Run("document updates keep revisions", func(t *testing.T) {
		d := domain.Document{HotelID: a.ID, Slug: "check-in", Title: "Check-in", Body: "v1", Version: 1}
		if err := repo.CreateDocument(ctx, &d); err != nil {
			t.Fatalf("CreateDocument: %v", err)
		}
		prev := domain.Revision{DocumentID: d.ID, Version: d.Version, Title: d.Title, Body: d.Body}
		d.Body, d.Version = "v2", 2
		if err := repo.UpdateDocument(ctx, d, prev); err != nil {
			t.Fatalf("UpdateDocument: %v", err)
		}
		got, err := repo.GetDocument(ctx, a.ID, "check-in")
		if err != nil || got.Body != "v2" || got.Version != 2 {
			t.Fatalf("GetDocument: %v %+v", err, got)
		}
		revs, err := repo.ListRevisions(ctx, a.ID, d.ID)
		if err != nil || len(revs) != 1 || revs[0].Body != "v1" {
			t.Fatalf("ListRevisions: %v %+v", err, revs)
		}
		slugs, err := repo.SlugsWithPrefix(ctx, a.ID, "check-in")
		if err != nil || len(slugs) != 1 {
			t.Fatalf("SlugsWithPrefix: %v %v", err, slugs)
		}
		slugs, err = repo.SlugsWithPrefix(ctx, a.ID, "check-i")
		if err != nil || len(slugs) != 0 {
			t.Fatalf("prefix must stop at a dash boundary: %v %v", err, slugs)
		}
	})

	t.Run("shift batches apply atomically", func(t *testing.T) {
		e := domain.Employee{HotelID: a.ID, Name: "Ana", Active: true}
		if err := repo.CreateEmployee(ctx, &e); err != nil {
			t.Fatalf("CreateEmployee: %v", err)
		}
		day := domain.NewDate(2026, 3, 9)
		now := time.Now().UTC().Truncate(time.Millisecond)
		draft := domain.Shift{HotelID: a.ID, EmployeeID: e.ID, Date: day, Start: "07:00", End: "15:00", Status: domain.ShiftDraft, UpdatedAt: now}
		if err := repo.CreateShift(ctx, &draft); err != nil {
			t.Fatalf("CreateShift: %v", err)
		}

		draft.Status = domain.ShiftPublished
		batch := domain.ShiftBatch{
			Update: []domain.Shift{draft},
			Insert: []domain.Shift{{EmployeeID: 999999, Date: day, Start: "08:00", End: "09:00", Status: domain.ShiftDraft, UpdatedAt: now}},
		}
		if err := repo.ApplyShifts(ctx, a.ID, batch); err == nil {
			t.Fatalf("expected failure for unknown employee")
		}
		got, err := repo.GetShift(ctx, a.ID, draft.ID)
		if err != nil || got.Status != domain.ShiftDraft {
			t.Fatalf("failed batch must roll back: %v %+v", err, got)
		}

		batch.Insert = nil
		if err := repo.ApplyShifts(ctx, a.ID, batch); err != nil {
			t.Fatalf("ApplyShifts: %v", err)
		}
		published := domain.ShiftPublished
		rows, err := repo.ListShifts(ctx, domain.ShiftFilter{HotelID: a.ID, From: day, To: day.AddDays(6), Status: &published})
		if err != nil || len(rows) != 1 || rows[0].Start != "07:00" {
			t.Fatalf("ListShifts: %v %+v", err, rows)
		}
	})
}
