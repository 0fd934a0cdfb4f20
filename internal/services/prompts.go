package services

import (
	"fmt"
	"strings"

	"github.com/justsurfingit/chamba-match/internal/models"
)

const searchPrompt = `
Actúa como un headhunter experto en Perú.
Objetivo: encontrar 10 ofertas de trabajo para este perfil.

Perfil del candidato:
- Rol: %s
- Habilidades: %s
- Ubicación: %s

Instrucciones de búsqueda:
1. Busca en LinkedIn, Computrabajo, Bumeran y GetOnBoard.
2. Prioriza ofertas publicadas hoy o ayer. Si no hay 10 recientes, completa con ofertas de esta semana.
3. Reúne información suficiente para listar 10 puestos distintos.
4. Obtén los enlaces para postular.
`

func buildSearchPrompt(prefs models.Preferences) string {
	return fmt.Sprintf(searchPrompt, prefs.SearchRole(), strings.Join(prefs.Skills, ", "), prefs.Location())
}

const analysisPrompt = `
Actúa como un coach de carrera senior.
Analiza la compatibilidad entre este perfil y la oferta.

OFERTA: %s en %s
DESC: %s

PERFIL:
%s

Responde en Markdown conciso:
1. **%% Match**: (0-100%%).
2. **Puntos Fuertes**: 2 bullets.
3. **Gap**: 1 punto a mejorar.
4. **Tip**: consejo rápido.
`

// syntheticResume stands in for a real CV, built from the preferences.
func syntheticResume(prefs models.Preferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Candidato: Estudiante de %s\n", prefs.Career)
	fmt.Fprintf(&b, "Experiencia: %s\n", prefs.Experience)
	fmt.Fprintf(&b, "Habilidades Técnicas: %s\n", strings.Join(prefs.Skills, ", "))
	fmt.Fprintf(&b, "Interés: Sector %s - %s", prefs.SectorGeneral, prefs.SectorSub)
	return b.String()
}

func buildAnalysisPrompt(job models.Job, prefs models.Preferences) string {
	return fmt.Sprintf(analysisPrompt, job.Title, job.Company, job.Description, syntheticResume(prefs))
}

const agentPrompt = `Configura un agente de búsqueda de empleo para %s en %s. Las alertas se enviarán por %s.`

func buildAgentPrompt(prefs models.Preferences, platform models.NotificationPlatform) string {
	return fmt.Sprintf(agentPrompt, prefs.SearchRole(), prefs.LocationDist, platform)
}
