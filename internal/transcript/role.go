package transcript

// Role is the contributor classification, ordered from strongest to weakest.
type Role string

const (
	RoleLeader          Role = "Leader"
	RoleCoreContributor Role = "Core Contributor"
	RoleContributor     Role = "Contributor"
	RolePassiveMember   Role = "Passive Member"
)

var roleDescriptions = map[Role]string{
	RoleLeader:          "Drives technical direction. High-impact commits and strong task ownership.",
	RoleCoreContributor: "Consistently delivers quality work. Reliable technical backbone of the team.",
	RoleContributor:     "Active participant with meaningful contributions to the project.",
	RolePassiveMember:   "Limited activity recorded. Contribution level needs improvement.",
}

// Description returns the fixed one-sentence explanation of the role.
func (r Role) Description() string { return roleDescriptions[r] }

// Rank orders roles for comparison: Leader is 3, Passive Member is 0.
func (r Role) Rank() int {
	switch r {
	case RoleLeader:
		return 3
	case RoleCoreContributor:
		return 2
	case RoleContributor:
		return 1
	default:
		return 0
	}
}

type RoleResult struct {
	Role        Role   `json:"role"`
	Description string `json:"description"`
}

// DetectRole applies the role rules in order; the first match wins.
func DetectRole(commitCount, avgImpact, doneTasks int) RoleResult {
	var r Role
	switch {
	case commitCount >= 10 && avgImpact >= 70:
		r = RoleLeader
	case commitCount >= 5 && avgImpact >= 50 && doneTasks >= 3:
		r = RoleCoreContributor
	case commitCount >= 2 || doneTasks >= 2:
		r = RoleContributor
	default:
		r = RolePassiveMember
	}
	return RoleResult{Role: r, Description: r.Description()}
}
