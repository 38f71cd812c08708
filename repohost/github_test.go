package repohost

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newTestGitHub wires a GitHub host to an httptest server.
func newTestGitHub(t *testing.T, mux *http.ServeMux) *GitHub {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	host, err := NewGitHub(GitHubConfig{
		Token:   "ghp_test",
		Owner:   "arclabs",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatalf("NewGitHub failed: %v", err)
	}
	return host
}

func TestGitHub_Repository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/arclabs/favres", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"name":           "favres",
			"full_name":      "arclabs/favres",
			"default_branch": "main",
			"private":        true,
			"html_url":       "https://github.com/arclabs/favres",
		})
	})
	host := newTestGitHub(t, mux)

	repo, err := host.Repository(context.Background(), "favres")
	if err != nil {
		t.Fatalf("Repository failed: %v", err)
	}
	if repo.FullName != "arclabs/favres" {
		t.Errorf("FullName = %q, want arclabs/favres", repo.FullName)
	}
	if repo.DefaultBranch != "main" {
		t.Errorf("DefaultBranch = %q, want main", repo.DefaultBranch)
	}
}

func TestGitHub_Repository_QualifiedName(t *testing.T) {
	called := false
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/other/tool", func(w http.ResponseWriter, r *http.Request) {
		called = true
		json.NewEncoder(w).Encode(map[string]any{"name": "tool"})
	})
	host := newTestGitHub(t, mux)

	if _, err := host.Repository(context.Background(), "other/tool"); err != nil {
		t.Fatalf("Repository failed: %v", err)
	}
	if !called {
		t.Error("qualified name should bypass the default owner")
	}
}

func TestGitHub_Branch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/arclabs/favres/branches/main", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"name":      "main",
			"commit":    map[string]any{"sha": "abc123"},
			"protected": true,
		})
	})
	mux.HandleFunc("/repos/arclabs/favres/branches/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Branch not found"}`))
	})
	host := newTestGitHub(t, mux)

	branch, err := host.Branch(context.Background(), "favres", "main")
	if err != nil {
		t.Fatalf("Branch failed: %v", err)
	}
	if branch == nil || branch.SHA != "abc123" {
		t.Errorf("branch = %+v, want SHA abc123", branch)
	}
	if !branch.Protected {
		t.Error("Protected = false, want true")
	}

	branch, err = host.Branch(context.Background(), "favres", "feature/nope")
	if err != nil {
		t.Fatalf("Branch failed: %v", err)
	}
	if branch != nil {
		t.Errorf("branch = %+v, want nil for missing branch", branch)
	}
}

func TestGitHub_CreateBranch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/arclabs/favres", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"default_branch": "main"})
	})
	mux.HandleFunc("/repos/arclabs/favres/branches/main", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"name":   "main",
			"commit": map[string]any{"sha": "abc123"},
		})
	})
	mux.HandleFunc("/repos/arclabs/favres/git/refs", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode ref body: %v", err)
		}
		if body.Ref != "refs/heads/feature/FAVRES-123-restaurant-search" {
			t.Errorf("ref = %q", body.Ref)
		}
		if body.SHA != "abc123" {
			t.Errorf("sha = %q, want base branch head abc123", body.SHA)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"ref":    body.Ref,
			"object": map[string]any{"sha": body.SHA},
		})
	})
	host := newTestGitHub(t, mux)

	branch, err := host.CreateBranch(context.Background(), "favres", "feature/FAVRES-123-restaurant-search", "")
	if err != nil {
		t.Fatalf("CreateBranch failed: %v", err)
	}
	if branch.Name != "feature/FAVRES-123-restaurant-search" {
		t.Errorf("Name = %q", branch.Name)
	}
	if branch.SHA != "abc123" {
		t.Errorf("SHA = %q, want abc123", branch.SHA)
	}
}

func TestGitHub_CreateBranch_BaseMissing(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/arclabs/favres/branches/ghost", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Branch not found"}`))
	})
	host := newTestGitHub(t, mux)

	_, err := host.CreateBranch(context.Background(), "favres", "feature/x", "ghost")
	if !errors.Is(err, ErrBaseBranchNotFound) {
		t.Errorf("error = %v, want ErrBaseBranchNotFound", err)
	}
}

func TestGitHub_CreateBranch_AlreadyExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/arclabs/favres/branches/main", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"name":   "main",
			"commit": map[string]any{"sha": "abc123"},
		})
	})
	mux.HandleFunc("/repos/arclabs/favres/git/refs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message":"Reference already exists"}`))
	})
	host := newTestGitHub(t, mux)

	_, err := host.CreateBranch(context.Background(), "favres", "feature/dup", "main")
	if !errors.Is(err, ErrBranchExists) {
		t.Errorf("error = %v, want ErrBranchExists", err)
	}
}

func TestGitHub_PullRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/arclabs/favres/pulls", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("state"); got != "open" {
			t.Errorf("state = %q, want open", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "5" {
			t.Errorf("per_page = %q, want 5", got)
		}
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"number":   7,
				"title":    "Feature/FAVRES-123: Add restaurant search",
				"state":    "open",
				"html_url": "https://github.com/arclabs/favres/pull/7",
				"head":     map[string]any{"ref": "feature/FAVRES-123-restaurant-search", "sha": "def456"},
				"base":     map[string]any{"ref": "main"},
				"user":     map[string]any{"login": "casey"},
			},
		})
	})
	host := newTestGitHub(t, mux)

	prs, err := host.PullRequests(context.Background(), "favres", PRStateOpen, 5)
	if err != nil {
		t.Fatalf("PullRequests failed: %v", err)
	}
	if len(prs) != 1 {
		t.Fatalf("len(prs) = %d, want 1", len(prs))
	}
	pr := prs[0]
	if pr.Number != 7 || pr.Head != "feature/FAVRES-123-restaurant-search" {
		t.Errorf("pr = %+v", pr)
	}
	if pr.Author != "casey" {
		t.Errorf("Author = %q, want casey", pr.Author)
	}
}

func TestGitHub_CreatePullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/arclabs/favres", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"default_branch": "main"})
	})
	mux.HandleFunc("/repos/arclabs/favres/pulls", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title string `json:"title"`
			Head  string `json:"head"`
			Base  string `json:"base"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode PR body: %v", err)
		}
		if body.Base != "main" {
			t.Errorf("base = %q, want repository default main", body.Base)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"number":   8,
			"title":    body.Title,
			"state":    "open",
			"html_url": "https://github.com/arclabs/favres/pull/8",
			"head":     map[string]any{"ref": body.Head},
			"base":     map[string]any{"ref": body.Base},
		})
	})
	host := newTestGitHub(t, mux)

	pr, err := host.CreatePullRequest(context.Background(), "favres", PROptions{
		Title: "Feature/FAVRES-123: Add restaurant search",
		Head:  "feature/FAVRES-123-restaurant-search",
	})
	if err != nil {
		t.Fatalf("CreatePullRequest failed: %v", err)
	}
	if pr.Number != 8 || pr.Base != "main" {
		t.Errorf("pr = %+v", pr)
	}
}

func TestGitHub_OwnerRequired(t *testing.T) {
	host, err := NewGitHub(GitHubConfig{Token: "ghp_test"})
	if err != nil {
		t.Fatalf("NewGitHub failed: %v", err)
	}

	if _, err := host.Repository(context.Background(), "favres"); !errors.Is(err, ErrOwnerRequired) {
		t.Errorf("error = %v, want ErrOwnerRequired", err)
	}
}
