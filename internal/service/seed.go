package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/collabspace/internal/model"
	"github.com/sakif/collabspace/internal/repository"
)

// SeedResult reports what Seed did. Seeded is false when projects already
// existed and nothing was written.
type SeedResult struct {
	Seeded   bool   `json:"seeded"`
	Projects int    `json:"projects"`
	Message  string `json:"message"`
}

// Seeder fills an empty board with demo projects and tasks.
type Seeder struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	logger   *slog.Logger
}

func NewSeeder(projects repository.ProjectRepository, tasks repository.TaskRepository, logger *slog.Logger) *Seeder {
	return &Seeder{projects: projects, tasks: tasks, logger: logger}
}

type demoProject struct {
	project model.Project
	tasks   []model.Task
}

func member(name, email string, role model.MemberRole, initials, status string) model.Member {
	return model.Member{Name: name, Email: email, Role: role, Initials: initials, Status: status}
}

func demoTask(title string, status model.TaskStatus, priority model.TaskPriority, assignee, initials string) model.Task {
	return model.Task{Title: title, Status: status, Priority: priority, AssigneeName: assignee, AssigneeInitials: initials}
}

func demoBoard() []demoProject {
	return []demoProject{
		{
			project: model.Project{
				Name:        "AI Research Portal",
				Description: "A machine learning platform for collaborative research with real-time data analysis and visualization.",
				TechStack:   []string{"Python", "TensorFlow", "Next.js", "FastAPI"},
				Status:      model.ProjectActive,
				TeamSize:    4,
				Progress:    65,
				Category:    "AI / ML",
				Members: []model.Member{
					member("Arjun Sharma", "arjun@demo.com", model.MemberLead, "AS", "active"),
					member("Priya Patel", "priya@demo.com", model.MemberDeveloper, "PP", "active"),
					member("Rohan Verma", "rohan@demo.com", model.MemberDesigner, "RV", "away"),
					member("Sneha Gupta", "sneha@demo.com", model.MemberTester, "SG", "active"),
				},
			},
			tasks: []model.Task{
				demoTask("Set up ML pipeline", model.TaskDone, model.PriorityHigh, "Arjun Sharma", "AS"),
				demoTask("Build data visualization dashboard", model.TaskInProgress, model.PriorityHigh, "Priya Patel", "PP"),
				demoTask("Integrate TensorFlow model", model.TaskInProgress, model.PriorityMedium, "Arjun Sharma", "AS"),
				demoTask("UI for model results", model.TaskTodo, model.PriorityMedium, "Rohan Verma", "RV"),
				demoTask("Write API documentation", model.TaskTodo, model.PriorityLow, "Sneha Gupta", "SG"),
			},
		},
		{
			project: model.Project{
				Name:        "EcoTrack Mobile App",
				Description: "Sustainability tracking application allowing users to monitor their carbon footprint and eco-friendly habits.",
				TechStack:   []string{"React Native", "Node.js", "MongoDB", "Firebase"},
				Status:      model.ProjectActive,
				TeamSize:    3,
				Progress:    42,
				Category:    "Mobile",
				Members: []model.Member{
					member("Karan Singh", "karan@demo.com", model.MemberLead, "KS", "active"),
					member("Priya Patel", "priya@demo.com", model.MemberDeveloper, "PP", "active"),
					member("Rohan Verma", "rohan@demo.com", model.MemberDesigner, "RV", "active"),
				},
			},
			tasks: []model.Task{
				demoTask("Design onboarding screen", model.TaskDone, model.PriorityHigh, "Rohan Verma", "RV"),
				demoTask("Carbon calculator logic", model.TaskInProgress, model.PriorityHigh, "Karan Singh", "KS"),
				demoTask("Push notification setup", model.TaskTodo, model.PriorityMedium, "Priya Patel", "PP"),
				demoTask("Firebase auth integration", model.TaskDone, model.PriorityHigh, "Priya Patel", "PP"),
			},
		},
		{
			project: model.Project{
				Name:        "Campus Event Hub",
				Description: "Centralized platform for discovering, organizing, and managing university events and student activities.",
				TechStack:   []string{"Next.js", "PostgreSQL", "Tailwind CSS", "Prisma"},
				Status:      model.ProjectActive,
				TeamSize:    5,
				Progress:    80,
				Category:    "Web",
				Members: []model.Member{
					member("Arjun Sharma", "arjun@demo.com", model.MemberDeveloper, "AS", "active"),
					member("Sneha Gupta", "sneha@demo.com", model.MemberLead, "SG", "active"),
					member("Karan Singh", "karan@demo.com", model.MemberDesigner, "KS", "away"),
				},
			},
			tasks: []model.Task{
				demoTask("Event creation form", model.TaskDone, model.PriorityHigh, "Sneha Gupta", "SG"),
				demoTask("RSVP feature", model.TaskDone, model.PriorityMedium, "Arjun Sharma", "AS"),
				demoTask("Email notification system", model.TaskInProgress, model.PriorityHigh, "Sneha Gupta", "SG"),
				demoTask("Calendar view", model.TaskTodo, model.PriorityMedium, "Karan Singh", "KS"),
			},
		},
	}
}

// Seed writes the demo board unless any project exists. It is not atomic: a
// failure part-way leaves the projects created so far, and the next call
// will see them and skip.
func (s *Seeder) Seed(ctx context.Context) (*SeedResult, error) {
	existing, err := s.projects.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/seed: listing projects: %w", err)
	}
	if len(existing) > 0 {
		return &SeedResult{Projects: len(existing), Message: "Already seeded"}, nil
	}

	board := demoBoard()
	for _, d := range board {
		p := d.project
		if err := s.projects.CreateProject(ctx, &p); err != nil {
			return nil, fmt.Errorf("service/seed: creating %q: %w", p.Name, err)
		}
		for _, t := range d.tasks {
			t.ProjectID = p.ID
			if err := s.tasks.CreateTask(ctx, &t); err != nil {
				return nil, fmt.Errorf("service/seed: creating task %q: %w", t.Title, err)
			}
		}
	}

	s.logger.Info("demo board seeded", slog.Int("projects", len(board)))
	return &SeedResult{Seeded: true, Projects: len(board), Message: "Database seeded successfully"}, nil
}
