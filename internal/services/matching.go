package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/lifeconnect/backend/internal/models"
)

// Score weights and result cap for project matching.
const (
	skillMatchPoints    = 10
	resourceMatchPoints = 8
	locationMatchPoints = 15
	categoryMatchPoints = 5
	maxMatches          = 10
)

// MatchProfileRepo is the minimal profile interface required for matching.
// GetByID returns (nil, nil) when the profile does not exist.
type MatchProfileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
}

// MatchProjectRepo lists the active projects a user can be matched against.
type MatchProjectRepo interface {
	ListActiveExcluding(ctx context.Context, creatorID uuid.UUID) ([]*models.Project, error)
}

// Matcher scores a user's profile against open projects.
type Matcher struct {
	ProfileRepo MatchProfileRepo
	ProjectRepo MatchProjectRepo
}

// NewMatcher returns a new Matcher.
func NewMatcher(profileRepo MatchProfileRepo, projectRepo MatchProjectRepo) *Matcher {
	return &Matcher{ProfileRepo: profileRepo, ProjectRepo: projectRepo}
}

// ProjectMatch is a project annotated with its compatibility score and the
// human-readable reasons behind it.
type ProjectMatch struct {
	*models.Project
	MatchScore   int      `json:"match_score"`
	MatchReasons []string `json:"match_reasons"`
}

// MatchProjects scores every active project (excluding the user's own)
// against the user's profile and returns the top matches, best first. A user
// with no profile row matches nothing.
func (m *Matcher) MatchProjects(ctx context.Context, userID uuid.UUID) ([]*ProjectMatch, error) {
	profile, err := m.ProfileRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.Profile{}
	}

	projects, err := m.ProjectRepo.ListActiveExcluding(ctx, userID)
	if err != nil {
		return nil, err
	}

	var matches []*ProjectMatch
	for _, project := range projects {
		score, reasons := scoreProject(profile, project)
		if score <= 0 {
			continue
		}
		matches = append(matches, &ProjectMatch{Project: project, MatchScore: score, MatchReasons: reasons})
	}

	// Score descending; ties break on project id so ranking is deterministic.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchScore != matches[j].MatchScore {
			return matches[i].MatchScore > matches[j].MatchScore
		}
		return matches[i].ID.String() < matches[j].ID.String()
	})
	if len(matches) > maxMatches {
		matches = matches[:maxMatches]
	}
	return matches, nil
}

// scoreProject computes the additive compatibility score of one profile
// against one project, with a reason string per matched criterion.
func scoreProject(profile *models.Profile, project *models.Project) (int, []string) {
	score := 0
	var reasons []string

	if matched := intersect(profile.Skills, project.RequiredSkills); len(matched) > 0 {
		score += len(matched) * skillMatchPoints
		reasons = append(reasons, "Skills match: "+strings.Join(matched, ", "))
	}

	if matched := intersect(profile.Resources, project.RequiredResources); len(matched) > 0 {
		score += len(matched) * resourceMatchPoints
		reasons = append(reasons, "Resources match: "+strings.Join(matched, ", "))
	}

	if profile.Location != "" && project.Location != "" && strings.EqualFold(profile.Location, project.Location) {
		score += locationMatchPoints
		reasons = append(reasons, "Same location")
	}

	if profile.Bio != "" && project.Category != "" &&
		strings.Contains(strings.ToLower(profile.Bio), strings.ToLower(project.Category)) {
		score += categoryMatchPoints
		reasons = append(reasons, "Related to your interests")
	}

	return score, reasons
}

// intersect returns the elements of a that also appear in b, preserving a's
// order.
func intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]bool, len(b))
	for _, s := range b {
		set[s] = true
	}
	var out []string
	for _, s := range a {
		if set[s] {
			out = append(out, s)
		}
	}
	return out
}
