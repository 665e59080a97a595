//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"travel_guide/internal/app"
	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
	mysqlrepo "travel_guide/internal/storage/mysql"
)

// ---------- small helpers ----------
func mustEnv(t *testing.T, k string) string {
	t.Helper()
	v := os.Getenv(k)
	if v == "" {
		t.Fatalf("%s not set; export it (e.g. MIGRATIONS_DIR=/path/to/sql)", k)
	}
	return v
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := mustEnv(t, "MIGRATIONS_DIR")

	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir %s: %v", dir, err)
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

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=travel",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/travel?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
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
	return db
}

// ---------- the tests ----------
func TestRepo_MySQL_SeedAndList(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	def, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	want := def.Places()
	for _, p := range want {
		if err := repo.UpsertPlace(ctx, p); err != nil {
			t.Fatalf("UpsertPlace %s: %v", p.Name, err)
		}
	}

	got, err := repo.ListPlaces(ctx)
	if err != nil {
		t.Fatalf("ListPlaces: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("want %d places, got %d", len(want), len(got))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.ID != w.ID || g.Name != w.Name || g.Info != w.Info || g.Address != w.Address {
			t.Fatalf("record %d mismatch:\nwant %+v\ngot  %+v", i, w, g)
		}
		if len(g.Hours) != len(w.Hours) || len(g.Categories) != len(w.Categories) {
			t.Fatalf("%s: hours/categories lost: %+v", w.Name, g)
		}
		if fmt.Sprint(g.AvailableAmenities()) != fmt.Sprint(w.AvailableAmenities()) {
			t.Fatalf("%s: amenities %v vs %v", w.Name, g.AvailableAmenities(), w.AvailableAmenities())
		}
		if (g.MapLink == nil) != (w.MapLink == nil) {
			t.Fatalf("%s: map link presence differs", w.Name)
		}
	}

	c, err := app.LoadCatalog(ctx, repo)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if p := app.Retrieve("taj mahal", c); p == nil || p.Name != "Taj Mahal" {
		t.Fatalf("retrieve from stored catalog: %+v", p)
	}
}

func TestRepo_MySQL_UpsertOverwrites(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	p := domain.Place{
		ID:         900,
		Name:       "Lotus Temple",
		Categories: []string{"Temple"},
		Info:       "Bahá'í House of Worship.",
		Address:    domain.Address{City: "New Delhi", Country: "India"},
		Hours:      []domain.HourInterval{{Days: "Tue-Sun", Open: "09:00", Close: "17:00"}},
	}
	if err := repo.UpsertPlace(ctx, p); err != nil {
		t.Fatal(err)
	}
	p.Info = "Lotus-shaped house of worship."
	p.Hours = nil
	if err := repo.UpsertPlace(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := repo.ListPlaces(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("upsert should not duplicate: %d rows", len(got))
	}
	if got[0].Info != p.Info || len(got[0].Hours) != 0 || got[0].Address.City != "New Delhi" {
		t.Fatalf("unexpected row: %+v", got[0])
	}
}

func TestLoadCatalog_EmptyStore(t *testing.T) {
	db := startMySQL(t)
	_, err := app.LoadCatalog(context.Background(), mysqlrepo.New(db))
	if err == nil {
		t.Fatal("empty store must not produce a catalog")
	}
}
