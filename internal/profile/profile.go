package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the read-only resume record the assistant answers from. Every field is
// optional; missing sections simply render empty in the system instruction.
type Profile struct {
	Personal       Personal        `yaml:"personal"`
	Socials        Socials         `yaml:"socials"`
	Authorization  Authorization   `yaml:"authorization"`
	Skills         []SkillGroup    `yaml:"skills"`
	Experience     []Experience    `yaml:"experience"`
	Education      []Education     `yaml:"education"`
	Projects       []Project       `yaml:"projects"`
	Certifications []Certification `yaml:"certifications"`
}

// Personal holds the identity block of the resume.
type Personal struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Tagline  string `yaml:"tagline"`
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
	Bio      string `yaml:"bio"`
}

// Socials holds public profile links.
type Socials struct {
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Website  string `yaml:"website"`
}

// Authorization holds the work authorization facts surfaced to recruiter-style
// questions, the keywords that should trigger the short formal answer style, and the
// canned short answer itself.
type Authorization struct {
	Facts       []string `yaml:"facts"`
	Keywords    []string `yaml:"keywords"`
	ShortAnswer string   `yaml:"shortAnswer"`
}

// SkillGroup is one named category of skills.
type SkillGroup struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

// Experience is one employment entry.
type Experience struct {
	Company      string   `yaml:"company"`
	Position     string   `yaml:"position"`
	Location     string   `yaml:"location"`
	StartDate    string   `yaml:"startDate"`
	EndDate      string   `yaml:"endDate"`
	Description  []string `yaml:"description"`
	Technologies []string `yaml:"technologies"`
}

// Education is one degree entry.
type Education struct {
	Institution string `yaml:"institution"`
	Degree      string `yaml:"degree"`
	Field       string `yaml:"field"`
	StartDate   string `yaml:"startDate"`
	EndDate     string `yaml:"endDate"`
	GPA         string `yaml:"gpa"`
}

// Project is one portfolio project entry.
type Project struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Link         string   `yaml:"link"`
	GitHub       string   `yaml:"github"`
}

// Certification is one certification entry.
type Certification struct {
	Name   string `yaml:"name"`
	Issuer string `yaml:"issuer"`
	Date   string `yaml:"date"`
}

// Load reads a profile document from the given YAML file.
func Load(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, fmt.Errorf("error opening profile file: %w", err)
	}
	defer f.Close()

	var p Profile
	if err := yaml.NewDecoder(f).Decode(&p); err != nil {
		return Profile{}, fmt.Errorf("error decoding profile file: %w", err)
	}
	return p, nil
}
