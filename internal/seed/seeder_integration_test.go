//go:build integration

package seed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/placekeeper/placekeeper/internal/fixture"
	"github.com/placekeeper/placekeeper/internal/metrics"
	"github.com/placekeeper/placekeeper/internal/repository"
	"github.com/placekeeper/placekeeper/internal/testutil"
)

// newFixtureServer serves a small dataset: 3 users, one post per user,
// one comment per post.
func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"name":"Leanne Graham","username":"Bret","email":"leanne@example.com"},
			{"id":2,"name":"Ervin Howell","username":"Antonette","email":"ervin@example.com"},
			{"id":3,"name":"Clementine Bauch","username":"Samantha","email":"clementine@example.com"}
		]`))
	})
	mux.HandleFunc("/posts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":10,"userId":1,"title":"first","body":"a"},
			{"id":11,"userId":2,"title":"second","body":"b"},
			{"id":12,"userId":3,"title":"third","body":"c"}
		]`))
	})
	mux.HandleFunc("/comments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":100,"postId":10,"name":"c1","email":"c1@example.com","body":"x"},
			{"id":101,"postId":11,"name":"c2","email":"c2@example.com","body":"y"},
			{"id":102,"postId":12,"name":"c3","email":"c3@example.com","body":"z"}
		]`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSeederTestEnv(t *testing.T, userLimit int) (context.Context, *repository.Repository, *Seeder, *metrics.InMemoryRecorder) {
	t.Helper()

	ctx := context.Background()
	mongoURI := testutil.RequireEnv(t, "MONGODB_URI")

	repo, err := repository.New(ctx, mongoURI, "placekeeper_test")
	if err != nil {
		t.Fatalf("connect mongodb: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close(context.Background())
	})

	if err := testutil.ResetCollections(ctx, repo); err != nil {
		t.Fatalf("reset collections: %v", err)
	}

	srv := newFixtureServer(t)
	recorder := metrics.NewInMemory()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	seeder := New(fixture.NewClient(srv.URL), repo, nil, logger, recorder, userLimit)

	return ctx, repo, seeder, recorder
}

// Running the seeder twice inserts data only once.
func TestIntegrationSeeder_RunIsCountGuarded(t *testing.T) {
	ctx, repo, seeder, recorder := newSeederTestEnv(t, 10)

	seeder.Run(ctx)

	users, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 3 {
		t.Fatalf("users after first run = %d, want 3", users)
	}

	seeder.Run(ctx)

	users, err = repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 3 {
		t.Errorf("users after second run = %d, want 3", users)
	}

	posts, err := repo.CountPosts(ctx)
	if err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if posts != 3 {
		t.Errorf("posts after second run = %d, want 3", posts)
	}

	snap := recorder.Snapshot()
	if snap.SeedRuns["inserted"] != 1 || snap.SeedRuns["skipped"] != 1 {
		t.Errorf("seed run counters = %v", snap.SeedRuns)
	}
}

// A collection that already holds documents is left alone while empty
// ones are still filled.
func TestIntegrationSeeder_RunGuardsPerCollection(t *testing.T) {
	ctx, repo, seeder, _ := newSeederTestEnv(t, 10)

	existing := testutil.NewTestUser(t, testutil.UniqueID())
	if err := repo.CreateUser(ctx, existing); err != nil {
		t.Fatalf("create user: %v", err)
	}

	seeder.Run(ctx)

	users, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 1 {
		t.Errorf("users = %d, want 1 (seed must skip non-empty collection)", users)
	}

	posts, err := repo.CountPosts(ctx)
	if err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if posts != 3 {
		t.Errorf("posts = %d, want 3", posts)
	}
}

// Reload wipes existing data and loads the limited variant.
func TestIntegrationSeeder_ReloadLimitsAndEnriches(t *testing.T) {
	ctx, repo, seeder, _ := newSeederTestEnv(t, 2)

	// Pre-existing data that the reload must replace
	stale := testutil.NewTestUser(t, testutil.UniqueID())
	if err := repo.CreateUser(ctx, stale); err != nil {
		t.Fatalf("create user: %v", err)
	}

	enriched, err := seeder.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	if len(enriched) != 2 {
		t.Fatalf("expected 2 users in response, got %d", len(enriched))
	}

	for _, u := range enriched {
		if len(u.Posts) != 1 {
			t.Errorf("user %d has %d posts, want 1", u.ID, len(u.Posts))
			continue
		}
		if len(u.Posts[0].Comments) != 1 {
			t.Errorf("post %d has %d comments, want 1", u.Posts[0].ID, len(u.Posts[0].Comments))
		}
	}

	// Collections stay normalized and limited
	users, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if users != 2 {
		t.Errorf("users = %d, want 2", users)
	}

	posts, err := repo.CountPosts(ctx)
	if err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if posts != 2 {
		t.Errorf("posts = %d, want 2", posts)
	}

	comments, err := repo.CountComments(ctx)
	if err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if comments != 2 {
		t.Errorf("comments = %d, want 2", comments)
	}

	// The stale user is gone
	if _, err := repo.GetUserByID(ctx, stale.ID); err == nil {
		t.Error("pre-existing user survived the reload")
	}
}
