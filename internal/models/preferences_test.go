package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkills(t *testing.T) {
	p := DefaultPreferences()

	assert.True(t, p.AddSkill("Go"))
	assert.False(t, p.AddSkill("Go"))
	assert.False(t, p.AddSkill("  "))
	assert.True(t, p.HasSkill("Go"))
	assert.Equal(t, []string{"React", "TypeScript", "Go"}, p.Skills)

	assert.True(t, p.RemoveSkill("React"))
	assert.False(t, p.RemoveSkill("React"))
	assert.Equal(t, []string{"TypeScript", "Go"}, p.Skills)
}

func TestCloneDoesNotAlias(t *testing.T) {
	p := DefaultPreferences()
	c := p.Clone()
	c.Skills[0] = "Vue"
	assert.Equal(t, "React", p.Skills[0])

	// Removing from the clone must not shift the original's backing array.
	c = p.Clone()
	c.RemoveSkill("React")
	assert.Equal(t, []string{"React", "TypeScript"}, p.Skills)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		salary int
		ok     bool
	}{
		{0, true},
		{1200, true},
		{5000, true},
		{5100, false},
		{-100, false},
		{1250, false},
	}
	for _, tt := range tests {
		p := DefaultPreferences()
		p.Salary = tt.salary
		if tt.ok {
			assert.NoError(t, p.Validate(), tt.salary)
		} else {
			assert.Error(t, p.Validate(), tt.salary)
		}
	}
}

func TestSearchRoleAndLocation(t *testing.T) {
	p := DefaultPreferences()
	assert.Equal(t, "Ingeniería de Software", p.SearchRole())
	assert.Equal(t, "Lima, Lima", p.Location())

	p.Career = "  "
	assert.Equal(t, "Desarrollo Web", p.SearchRole())

	p.LocationDist = ""
	assert.Equal(t, "Lima", p.Location())
	p.LocationDept, p.LocationDist = "", "Cayma"
	assert.Equal(t, "Cayma", p.Location())
}

func TestNormalize(t *testing.T) {
	p := Preferences{Career: " Derecho ", Skills: []string{"Excel", " Excel ", "", "Word"}}
	p.Normalize()
	assert.Equal(t, "Derecho", p.Career)
	assert.Equal(t, []string{"Excel", "Word"}, p.Skills)
}

func TestSavedJobConversion(t *testing.T) {
	j := Job{ID: "ai-job-1-0", Title: "Dev", Company: "Acme", Tags: []string{"Go"}, IsNew: true, URL: "https://x"}
	saved := NewSavedJob("a@b.pe", j)
	j.Tags[0] = "changed"

	back := saved.Job()
	assert.Equal(t, "Go", back.Tags[0])
	assert.Equal(t, "a@b.pe", saved.OwnerEmail)
	assert.False(t, back.IsNew)
	assert.Equal(t, "https://x", back.URL)
}
