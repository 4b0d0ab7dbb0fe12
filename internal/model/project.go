package model

import "time"

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectCompleted ProjectStatus = "completed"
	ProjectPaused    ProjectStatus = "paused"
	ProjectPlanning  ProjectStatus = "planning"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectActive, ProjectCompleted, ProjectPaused, ProjectPlanning:
		return true
	}
	return false
}

type MemberRole string

const (
	MemberLead      MemberRole = "Lead"
	MemberDeveloper MemberRole = "Developer"
	MemberDesigner  MemberRole = "Designer"
	MemberTester    MemberRole = "Tester"
	MemberManager   MemberRole = "Manager"
)

// Member is a person on a project team. UserID is empty for members that were
// added by name only and have no account yet.
type Member struct {
	UserID   string     `json:"userId,omitempty"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Role     MemberRole `json:"role"`
	Initials string     `json:"initials"`
	Status   string     `json:"status"`
}

// Project is a team project. Tasks is only populated on detail reads.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	TechStack   []string      `json:"techStack"`
	Status      ProjectStatus `json:"status"`
	TeamSize    int           `json:"teamSize"`
	Progress    int           `json:"progress"`
	Category    string        `json:"category"`
	OwnerID     string        `json:"ownerId"`
	Members     []Member      `json:"members"`
	Tasks       []Task        `json:"tasks,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// CanAssignTasks reports whether userID may create tasks on the project:
// the owner or any member with the Lead role.
func (p *Project) CanAssignTasks(userID string) bool {
	if userID == "" {
		return false
	}
	if p.OwnerID == userID {
		return true
	}
	for _, m := range p.Members {
		if m.UserID == userID && m.Role == MemberLead {
			return true
		}
	}
	return false
}
