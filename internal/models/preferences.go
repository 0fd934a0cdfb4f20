package models

import (
	"fmt"
	"strings"
)

// Experience tiers offered by the preferences form.
const (
	ExperienceNone    = "Sin experiencia"
	ExperienceOneYear = "1 año exp."
	ExperienceTwoPlus = "2 a + años exp."
)

// Schedules.
const (
	SchedulePartTime = "Part time"
	ScheduleFullTime = "Full time"
	ScheduleVariable = "Variable"
)

// Work modalities.
const (
	ModalityOnSite = "Presencial"
	ModalityRemote = "Remoto"
	ModalityHybrid = "Mixto"
)

// Salary slider bounds. MaxSalary means "MaxSalary or more".
const (
	MaxSalary  = 5000
	SalaryStep = 100
)

// Preferences is the search criteria a student edits before searching.
// A value is treated as immutable for the duration of one search; use Clone
// before handing it to another goroutine.
type Preferences struct {
	SectorGeneral string   `json:"sectorGeneral"`
	SectorSub     string   `json:"sectorSub"`
	LocationDept  string   `json:"locationDept"`
	LocationDist  string   `json:"locationDist"`
	Experience    string   `json:"experience" binding:"omitempty,oneof='Sin experiencia' '1 año exp.' '2 a + años exp.'"`
	Salary        int      `json:"salary" binding:"min=0,max=5000"`
	Schedule      string   `json:"schedule" binding:"omitempty,oneof='Part time' 'Full time' 'Variable'"`
	Modality      string   `json:"modality" binding:"omitempty,oneof=Presencial Remoto Mixto"`
	Career        string   `json:"career"`
	Skills        []string `json:"skills"`
}

// DefaultPreferences is what a fresh session starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		SectorGeneral: "Tecnología",
		SectorSub:     "Desarrollo Web",
		LocationDept:  "Lima",
		LocationDist:  "Lima",
		Experience:    ExperienceNone,
		Salary:        1200,
		Schedule:      ScheduleFullTime,
		Modality:      ModalityRemote,
		Career:        "Ingeniería de Software",
		Skills:        []string{"React", "TypeScript"},
	}
}

// Clone returns a copy that shares no slices with p.
func (p Preferences) Clone() Preferences {
	c := p
	c.Skills = append([]string(nil), p.Skills...)
	return c
}

// AddSkill appends skill unless it is blank or already present.
// Reports whether the list changed.
func (p *Preferences) AddSkill(skill string) bool {
	skill = strings.TrimSpace(skill)
	if skill == "" || p.HasSkill(skill) {
		return false
	}
	p.Skills = append(p.Skills, skill)
	return true
}

// RemoveSkill drops skill from the list, keeping the order of the rest.
func (p *Preferences) RemoveSkill(skill string) bool {
	for i, s := range p.Skills {
		if s == skill {
			p.Skills = append(p.Skills[:i:i], p.Skills[i+1:]...)
			return true
		}
	}
	return false
}

// HasSkill reports whether skill is already in the list.
func (p Preferences) HasSkill(skill string) bool {
	for _, s := range p.Skills {
		if s == skill {
			return true
		}
	}
	return false
}

// Normalize trims the free-text fields and rebuilds Skills as an ordered set.
func (p *Preferences) Normalize() {
	p.Career = strings.TrimSpace(p.Career)
	p.SectorGeneral = strings.TrimSpace(p.SectorGeneral)
	p.SectorSub = strings.TrimSpace(p.SectorSub)
	p.LocationDept = strings.TrimSpace(p.LocationDept)
	p.LocationDist = strings.TrimSpace(p.LocationDist)

	skills := p.Skills
	p.Skills = make([]string, 0, len(skills))
	for _, s := range skills {
		p.AddSkill(s)
	}
}

// Validate checks the rules binding tags cannot express.
func (p Preferences) Validate() error {
	if p.Salary < 0 || p.Salary > MaxSalary {
		return fmt.Errorf("salary must be between 0 and %d", MaxSalary)
	}
	if p.Salary%SalaryStep != 0 {
		return fmt.Errorf("salary must be a multiple of %d", SalaryStep)
	}
	return nil
}

// SearchRole is the role used to phrase a search: the career, or the sector
// sub-category when no career was entered.
func (p Preferences) SearchRole() string {
	if strings.TrimSpace(p.Career) != "" {
		return p.Career
	}
	return p.SectorSub
}

// Location formats the district and department for prompts.
func (p Preferences) Location() string {
	switch {
	case p.LocationDist == "":
		return p.LocationDept
	case p.LocationDept == "":
		return p.LocationDist
	}
	return p.LocationDist + ", " + p.LocationDept
}
