package content

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := Default()
	if p.Name == "" {
		t.Fatal("expected name")
	}
	if len(p.Titles) != 4 {
		t.Errorf("expected 4 titles, got %d", len(p.Titles))
	}
	if len(p.About) == 0 || len(p.Skills) == 0 || len(p.Projects) == 0 {
		t.Error("expected about, skills and projects")
	}
	if p.Projects[0].TechStack[0] != "Python" {
		t.Errorf("unexpected tech stack %v", p.Projects[0].TechStack)
	}
}

func TestValidate(t *testing.T) {
	p := &Profile{}
	if err := p.Validate(); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for missing name, got %v", err)
	}

	p.Name = "x"
	p.Skills = []Skill{{Name: "go", Proficiency: 1.2}}
	if err := p.Validate(); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile for proficiency, got %v", err)
	}

	p.Skills[0].Proficiency = 1
	if err := p.Validate(); err != nil {
		t.Errorf("unexpected error %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	p := Default()
	p.Name = "Someone Else"
	if err := p.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Name != "Someone Else" {
		t.Errorf("expected saved name, got %q", got.Name)
	}
	if len(got.Skills) != len(p.Skills) {
		t.Errorf("expected %d skills, got %d", len(p.Skills), len(got.Skills))
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("name: [")); err == nil {
		t.Error("expected parse error")
	}
}
