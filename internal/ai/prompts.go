package ai

import (
	"encoding/json"
	"fmt"

	"github.com/justsurfingit/chamba-match/internal/models"
)

const structurePrompt = `
Analiza el texto de búsqueda y las fuentes.
Tu tarea es generar un JSON con UNA LISTA DE 10 OFERTAS DE TRABAJO.

FUENTES DETECTADAS:
%s

TEXTO:
%s

Instrucciones:
1. Devuelve un array con 10 objetos.
2. Si el texto trae menos de 10 ofertas, completa la lista con empresas en Perú que suelen contratar %s, usando tu conocimiento general y marcándolas con fecha estimada.
3. Usa las URLs reales de las fuentes cuando existan. Si no hay una, deja el campo vacío.
4. Escribe una descripción atractiva para cada oferta.
5. Si la oferta no indica salario, usa "%s".
6. title, company, location y description son obligatorios.
`

func buildStructurePrompt(result SearchResult, prefs models.Preferences) string {
	sources := result.Sources
	if sources == nil {
		sources = []models.Source{}
	}
	// Marshal of a []Source cannot fail.
	encoded, _ := json.MarshalIndent(sources, "", "  ")
	return fmt.Sprintf(structurePrompt, encoded, result.RawText, prefs.SearchRole(), models.SalaryToNegotiate)
}
