package transcript

import (
	"fmt"
	"strings"
)

// GenerateSummary writes the transcript's narrative paragraph from a fixed
// template per role. It addresses the person by the first token of name.
func GenerateSummary(name string, role Role, skills SkillScores, contributionScore int) string {
	first, _, _ := strings.Cut(name, " ")
	strength := skills.top()

	switch role {
	case RoleLeader:
		return fmt.Sprintf("%s demonstrates exceptional technical leadership with a contribution score of %d/100. "+
			"Specialising in %s, they consistently push high-impact code and take ownership of critical features. "+
			"A standout engineering contributor ready for industry-scale responsibilities.",
			first, contributionScore, strength)
	case RoleCoreContributor:
		return fmt.Sprintf("%s is a reliable core contributor with a contribution score of %d/100, showing strong proficiency in %s. "+
			"Their consistent delivery and quality commits make them a valued member of the engineering team.",
			first, contributionScore, strength)
	case RoleContributor:
		return fmt.Sprintf("%s actively participates in project development with a contribution score of %d/100. "+
			"With a focus on %s, they show growing technical capabilities and increasing project engagement.",
			first, contributionScore, strength)
	default:
		return fmt.Sprintf("%s has a contribution score of %d/100. "+
			"Increased engagement in %s is recommended to build a stronger technical profile.",
			first, contributionScore, strength)
	}
}
