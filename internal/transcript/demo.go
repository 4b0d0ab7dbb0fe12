package transcript

// Demo returns the fixed sample transcript shown before a team has synced any
// commits, and whenever the commit store cannot be read.
func Demo() Data {
	skills := SkillScores{Backend: 38, Frontend: 28, Database: 22, AI: 12}
	role := DetectRole(14, 76, 8)
	const score = 84

	return Data{
		StudentName:       defaultStudentName,
		StudentEmail:      defaultStudentEmail,
		TeamID:            "demo",
		ContributionScore: score,
		ImpactScore:       76,
		ConsistencyScore:  82,
		TaskScore:         88,
		Skills:            skills,
		Role:              role.Role,
		RoleDescription:   role.Description,
		Summary:           GenerateSummary(defaultStudentName, role.Role, skills, score),
		TotalCommits:      14,
		TotalTasks:        12,
		DoneTasks:         10,
		HighImpactCommits: 6,
		ConsistencyTimeline: []TimelinePoint{
			{"Feb 07", 70}, {"Feb 08", 55}, {"Feb 09", 80}, {"Feb 10", 90},
			{"Feb 11", 65}, {"Feb 12", 85}, {"Feb 13", 75}, {"Feb 14", 95},
			{"Feb 15", 78}, {"Feb 16", 88}, {"Feb 17", 60}, {"Feb 18", 82},
			{"Feb 19", 91}, {"Feb 20", 84},
		},
		Leaderboard: demoLeaderboard(),
	}
}

func demoLeaderboard() []LeaderboardEntry {
	return []LeaderboardEntry{
		{Rank: 1, Name: "Arjun Sharma", Initials: "AS", Role: RoleLeader, ContributionScore: 84, Commits: 14, Color: leaderColors[0]},
		{Rank: 2, Name: "Priya Nair", Initials: "PN", Role: RoleCoreContributor, ContributionScore: 76, Commits: 11, Color: leaderColors[1]},
		{Rank: 3, Name: "Rohit Gupta", Initials: "RG", Role: RoleCoreContributor, ContributionScore: 71, Commits: 9, Color: leaderColors[2]},
		{Rank: 4, Name: "Sneha Patel", Initials: "SP", Role: RoleContributor, ContributionScore: 58, Commits: 6, Color: leaderColors[3]},
		{Rank: 5, Name: "Dev Kapoor", Initials: "DK", Role: RoleContributor, ContributionScore: 43, Commits: 3, Color: leaderColors[4]},
	}
}

// Personalize rewrites the identity fields of d for a signed-in user and
// regenerates the summary with their name.
func Personalize(d Data, name, email string) Data {
	if name == "" {
		return d
	}
	d.StudentName = name
	d.StudentEmail = email
	d.Summary = GenerateSummary(name, d.Role, d.Skills, d.ContributionScore)
	return d
}
