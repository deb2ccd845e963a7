package directory

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/strrl/mentorlink/pkg/models"
)

// DefaultMentors returns the built-in mentor directory
func DefaultMentors() []models.Mentor {
	return []models.Mentor{
		{
			ID:             "m1",
			Name:           "Dr. Sarah Chen",
			Email:          "sarah.chen@tech.com",
			Specialization: "Artificial Intelligence & Ethics",
			Avatar:         "https://picsum.photos/seed/sarah/200",
			Skills:         []string{"Python", "PyTorch", "Ethics in AI", "Strategic Planning"},
			Rating:         4.9,
			TotalSessions:  124,
			Availability:   []string{"Mon 9-11 AM", "Wed 2-4 PM", "Fri 10-12 AM"},
		},
		{
			ID:             "m2",
			Name:           "Marcus Rodriguez",
			Email:          "marcus.r@design.io",
			Specialization: "UX/UI & Product Management",
			Avatar:         "https://picsum.photos/seed/marcus/200",
			Skills:         []string{"Figma", "User Research", "Product Strategy", "Agile"},
			Rating:         4.8,
			TotalSessions:  89,
			Availability:   []string{"Tue 1-3 PM", "Thu 4-6 PM"},
		},
		{
			ID:             "m3",
			Name:           "Elena Volkov",
			Email:          "elena.v@cloud.net",
			Specialization: "Cloud Architecture & DevOps",
			Avatar:         "https://picsum.photos/seed/elena/200",
			Skills:         []string{"AWS", "Kubernetes", "Docker", "Go"},
			Rating:         5.0,
			TotalSessions:  210,
			Availability:   []string{"Mon 4-6 PM", "Sat 10-12 AM"},
		},
		{
			ID:             "m4",
			Name:           "James Wilson",
			Email:          "james.w@finance.com",
			Specialization: "FinTech & Blockchain",
			Avatar:         "https://picsum.photos/seed/james/200",
			Skills:         []string{"Solidity", "Financial Modeling", "Venture Capital"},
			Rating:         4.7,
			TotalSessions:  56,
			Availability:   []string{"Wed 9-11 AM", "Fri 2-4 PM"},
		},
	}
}

type mentorsFile struct {
	Mentors []models.Mentor `yaml:"mentors"`
}

// Load reads the directory from a YAML file with a top-level "mentors" list.
// An empty path returns the built-in directory.
func Load(path string) ([]models.Mentor, error) {
	if path == "" {
		return DefaultMentors(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mentors file: %w", err)
	}

	var file mentorsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse mentors file %s: %w", path, err)
	}

	for i, m := range file.Mentors {
		if m.Name == "" {
			return nil, fmt.Errorf("mentor #%d in %s has no name", i+1, path)
		}
		if m.ID == "" {
			file.Mentors[i].ID = fmt.Sprintf("m%d", i+1)
		}
	}

	return file.Mentors, nil
}

// Filter keeps mentors whose name, specialization or any skill contains term,
// ignoring case. The term is matched as typed, surrounding spaces included.
func Filter(mentors []models.Mentor, term string) []models.Mentor {
	term = strings.ToLower(term)
	if term == "" {
		return mentors
	}

	var matched []models.Mentor
	for _, m := range mentors {
		if matches(m, term) {
			matched = append(matched, m)
		}
	}
	return matched
}

func matches(m models.Mentor, term string) bool {
	if strings.Contains(strings.ToLower(m.Name), term) ||
		strings.Contains(strings.ToLower(m.Specialization), term) {
		return true
	}
	for _, skill := range m.Skills {
		if strings.Contains(strings.ToLower(skill), term) {
			return true
		}
	}
	return false
}

// Find looks a mentor up by ID or exact name, ignoring case
func Find(mentors []models.Mentor, idOrName string) (*models.Mentor, bool) {
	for i := range mentors {
		if mentors[i].ID == idOrName || strings.EqualFold(mentors[i].Name, idOrName) {
			return &mentors[i], true
		}
	}
	return nil, false
}

// FirstName returns the first word of a display name
func FirstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
