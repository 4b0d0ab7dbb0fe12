package service

import (
	"context"
	"testing"
)

func TestSeed_FillsEmptyBoardOnce(t *testing.T) {
	repo := newFakeBoardRepo()
	seeder := NewSeeder(repo, repo, quietLogger())
	ctx := context.Background()

	res, err := seeder.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if !res.Seeded || res.Projects != 3 {
		t.Fatalf("first Seed() = %+v, want seeded 3 projects", res)
	}

	tasks, _ := repo.ListAllTasks(ctx)
	if len(tasks) != 13 {
		t.Errorf("tasks = %d, want 13", len(tasks))
	}
	for _, task := range tasks {
		if task.ProjectID == "" {
			t.Errorf("task %q has no project", task.Title)
		}
	}

	res, err = seeder.Seed(ctx)
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if res.Seeded || res.Projects != 3 || res.Message != "Already seeded" {
		t.Errorf("second Seed() = %+v, want a no-op", res)
	}
	projects, _ := repo.ListProjects(ctx)
	if len(projects) != 3 {
		t.Errorf("projects after reseed = %d, want 3", len(projects))
	}
}

func TestSeed_LeadsCanAssignOnlyByOwnership(t *testing.T) {
	repo := newFakeBoardRepo()
	if _, err := NewSeeder(repo, repo, quietLogger()).Seed(context.Background()); err != nil {
		t.Fatal(err)
	}

	projects, _ := repo.ListProjects(context.Background())
	for _, p := range projects {
		// Demo members have no accounts, so nobody can assign tasks on them.
		if p.CanAssignTasks("") {
			t.Errorf("%s: anonymous caller may assign tasks", p.Name)
		}
		if p.OwnerID != "" {
			t.Errorf("%s: OwnerID = %q, want empty", p.Name, p.OwnerID)
		}
	}
}
