package services

import "github.com/justsurfingit/chamba-match/internal/models"

var fallbackCatalog = []models.Job{
	{
		ID:       "1",
		Title:    "UX/UI Designer Intern",
		Company:  "TechFlow Inc.",
		Salary:   "S/1.2K/Mo",
		Type:     "Part-time",
		Location: "Remoto",
		Logo:     "https://picsum.photos/id/1/50/50",
		Tags:     []string{"Remote", "Design", "Figma"},
	},
	{
		ID:       "2",
		Title:    "Frontend Developer Trainee",
		Company:  "Innovate Peru",
		Salary:   "S/1.5K/Mo",
		Type:     "Full-time",
		Location: "Lima",
		Logo:     "https://picsum.photos/id/2/50/50",
		Tags:     []string{"React", "Tailwind", "Hybrid"},
	},
	{
		ID:       "3",
		Title:    "Marketing Digital Assistant",
		Company:  "Creative Studio",
		Salary:   "S/1.0K/Mo",
		Type:     "Practicas",
		Location: "Arequipa",
		Logo:     "https://picsum.photos/id/3/50/50",
		Tags:     []string{"Social Media", "Ads"},
	},
	{
		ID:       "4",
		Title:    "Backend Developer Intern",
		Company:  "BankSecure",
		Salary:   "S/1.8K/Mo",
		Type:     "Full-time",
		Location: "Lima",
		Logo:     "https://picsum.photos/id/4/50/50",
		Tags:     []string{"Node.js", "Security", "On-site"},
	},
}

// FallbackCatalog returns a fresh copy of the generic postings shown when
// discovery yields nothing.
func FallbackCatalog() []models.Job {
	jobs := make([]models.Job, len(fallbackCatalog))
	for i, j := range fallbackCatalog {
		jobs[i] = j.Clone()
	}
	return jobs
}
