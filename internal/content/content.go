package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalidProfile = errors.New("invalid profile")

//go:embed profile.yaml
var defaultProfile []byte

type Experience struct {
	Title       string   `yaml:"title" json:"title"`
	Company     string   `yaml:"company" json:"company"`
	Timeframe   string   `yaml:"timeframe" json:"timeframe"`
	Description string   `yaml:"description" json:"description"`
	Skills      []string `yaml:"skills" json:"skills"`
}

type Skill struct {
	Name        string  `yaml:"name" json:"name"`
	Proficiency float64 `yaml:"proficiency" json:"proficiency"`
}

type Project struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	TechStack   []string `yaml:"tech_stack" json:"tech_stack"`
	DemoLink    string   `yaml:"demo_link" json:"demo_link"`
}

type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	University  string `yaml:"university" json:"university"`
	Timeframe   string `yaml:"timeframe" json:"timeframe"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Contact struct {
	Email    string `yaml:"email" json:"email"`
	Phone    string `yaml:"phone,omitempty" json:"phone,omitempty"`
	LinkedIn string `yaml:"linkedin,omitempty" json:"linkedin,omitempty"`
	GitHub   string `yaml:"github,omitempty" json:"github,omitempty"`
}

// Profile is everything the portfolio page shows around the field.
type Profile struct {
	Name       string       `yaml:"name" json:"name"`
	Titles     []string     `yaml:"titles" json:"titles"`
	About      []string     `yaml:"about" json:"about"`
	Experience []Experience `yaml:"experience" json:"experience"`
	Skills     []Skill      `yaml:"skills" json:"skills"`
	Projects   []Project    `yaml:"projects" json:"projects"`
	Education  []Education  `yaml:"education" json:"education"`
	Contact    Contact      `yaml:"contact" json:"contact"`
}

// Default returns the built-in profile.
func Default() *Profile {
	p, err := Parse(defaultProfile)
	if err != nil {
		panic(fmt.Sprintf("embedded profile: %v", err))
	}
	return p
}

func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(data)
}

func (p *Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	for _, s := range p.Skills {
		if s.Proficiency < 0 || s.Proficiency > 1 {
			return fmt.Errorf("%w: skill %q proficiency %.2f outside [0, 1]", ErrInvalidProfile, s.Name, s.Proficiency)
		}
	}
	return nil
}
