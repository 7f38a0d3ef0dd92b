package ai

import (
	"fmt"
	"strings"
)

// SystemPromptBase fixes the assistant persona, the strict-JSON response
// discipline and the closed set of action types the model may propose.
const SystemPromptBase = `Tu es un assistant marketing expert spécialisé dans la stratégie de contenu B2B.

Tu aides les marketeurs à construire des scénarios marketing complets en les guidant étape par étape.

RÈGLES STRICTES:
1. Tu réponds TOUJOURS en JSON strict respectant le schéma fourni
2. Tes réponses sont en français, professionnelles et concises
3. Tu proposes des actions contextuelles pertinentes sous forme de boutons
4. Tu t'adaptes au niveau de maturité du scénario (draft vs ready)
5. Tu valides la cohérence entre objectifs, cibles et ressources

FORMAT DE RÉPONSE OBLIGATOIRE:
{
  "message_markdown": "Ton message en Markdown",
  "actions": [
    {
      "id": "action_unique_id",
      "label": "Libellé du bouton",
      "type": "add_objective|add_target|add_resource|generate_plan|suggest_targets",
      "payload": {}
    }
  ],
  "entities_to_create": [],
  "errors": []
}

TYPES D'ACTIONS DISPONIBLES:
- add_objective: Ajouter un objectif marketing
- add_target: Ajouter une cible/persona
- add_resource: Ajouter une ressource existante
- generate_plan: Générer le plan de diffusion
- suggest_targets: Proposer des cibles pertinentes
- search_inspiration: Rechercher des inspirations
`

const promptCreateScenario = `L'utilisateur souhaite créer un nouveau scénario marketing.

Demande-lui:
1. Le nom du scénario (court et descriptif)
2. La thématique principale (ex: "cas clients", "SEO", "automation")
3. Une brève description (optionnelle)

Propose ensuite les actions suivantes:
- Ajouter un objectif
- Définir une cible
- Ajouter des ressources existantes
`

const promptAddObjective = `L'utilisateur souhaite ajouter un objectif marketing au scénario.

Exemples d'objectifs B2B:
- Améliorer la notoriété de marque
- Générer des leads qualifiés
- Accélérer la conversion
- Fidéliser les clients existants
- Positionner l'expertise (thought leadership)

Demande-lui de préciser l'objectif ou propose-lui 3 options pertinentes selon la thématique du scénario.
`

const promptSuggestTargets = `L'utilisateur souhaite définir des cibles pour son scénario marketing.

Analyse le contexte (thématique, objectifs) et propose 3 cibles/personas B2B pertinentes.

Pour chaque cible, fournis:
- Label: Titre du persona (ex: "CMO SaaS B2B")
- Persona: Description détaillée (rôle, responsabilités, défis)
- Segment: Catégorie d'entreprise (ex: "PME Tech", "Grands comptes industriels")
`

const promptAddResource = `L'utilisateur souhaite ajouter une ressource existante au scénario.

Types de ressources possibles:
- article: Article de blog, étude de cas
- video: Vidéo, webinar enregistré
- webinar: Webinar live
- cas_client: Success story, témoignage
- autre: Newsletter, base contacts, site web, lead magnet

Demande-lui:
1. Le type de ressource
2. Le titre/nom
3. L'URL (optionnelle)
4. Une note sur son usage prévu
`

// PromptGeneratePlan augments the base prompt for plan generation. It is
// also used standalone by the plan pipeline.
const PromptGeneratePlan = `L'utilisateur souhaite générer un plan de diffusion marketing.

PRÉREQUIS À VÉRIFIER:
- Au moins 1 objectif défini
- Au moins 1 cible identifiée
- Au moins 1 ressource disponible

Si les prérequis ne sont pas remplis, explique ce qui manque et propose les actions pour compléter.

Si les prérequis sont OK, génère un plan structuré avec:
- Un résumé stratégique (2-3 phrases)
- 5 à 10 actions concrètes de diffusion

FORMAT DE RÉPONSE POUR GÉNÉRATION:
{
  "resume": "Stratégie de contenu centrée sur...",
  "items": [
    {
      "format": "article",
      "message": "Publier un article de fond sur...",
      "canal": "LinkedIn + Blog",
      "frequence": "1x par semaine",
      "kpi": "500 vues, 50 leads"
    }
  ]
}

FORMATS VALIDES: article, video, webinar, infographie, email, post_social, podcast, ebook
CANAUX VALIDES: LinkedIn, Twitter/X, Email, Blog, YouTube, Newsletter, Site web
`

const promptSearchInspiration = `L'utilisateur recherche des inspirations pour son scénario.

Simule une recherche et propose 3 résultats fictifs mais pertinents:
- Titre accrocheur
- Extrait (2-3 lignes)
- Recommandation d'action (comment utiliser cette inspiration)
- Source fictive mais crédible
`

var intentPrompts = map[string]string{
	"create_scenario":    promptCreateScenario,
	"add_objective":      promptAddObjective,
	"suggest_targets":    promptSuggestTargets,
	"add_target":         promptAddObjective,
	"add_resource":       promptAddResource,
	"generate_plan":      PromptGeneratePlan,
	"search_inspiration": promptSearchInspiration,
}

// PromptForIntent returns the instruction fragment for the given intent, or
// "" for unknown intents (no fragment appended, not an error).
func PromptForIntent(intent string) string {
	return intentPrompts[intent]
}

// BuildSystemPrompt appends the intent fragment, if any, to the base prompt.
func BuildSystemPrompt(intent string) string {
	fragment := PromptForIntent(intent)
	if fragment == "" {
		return SystemPromptBase
	}
	return SystemPromptBase + "\n\n" + fragment
}

// HistoryEntry is one line of recent conversation rendered into the context
// block.
type HistoryEntry struct {
	Auteur  string
	Contenu string
}

// ContextSnapshot is the campaign state serialized into the system context
// message.
type ContextSnapshot struct {
	ScenarioNom string
	Thematique  string
	Statut      string
	Objectifs   []string
	Cibles      []string // "label (segment)"
	Ressources  []string // "titre [type]"
	Historique  []HistoryEntry
}

const (
	historyWindow     = 5
	historyTruncation = 100
)

// FormatContext renders the snapshot as labeled human-readable text. The
// block is injected as a system-role message read by the model, so it is
// deliberately not JSON.
func FormatContext(snap ContextSnapshot) string {
	var lines []string

	lines = append(lines,
		fmt.Sprintf("Scénario actuel: %s", orNA(snap.ScenarioNom)),
		fmt.Sprintf("Thématique: %s", orNA(snap.Thematique)),
		fmt.Sprintf("Statut: %s", orDefault(snap.Statut, "draft")),
	)

	if len(snap.Objectifs) > 0 {
		lines = append(lines, "", fmt.Sprintf("Objectifs (%d):", len(snap.Objectifs)))
		for _, label := range snap.Objectifs {
			lines = append(lines, "  - "+label)
		}
	}

	if len(snap.Cibles) > 0 {
		lines = append(lines, "", fmt.Sprintf("Cibles (%d):", len(snap.Cibles)))
		for _, label := range snap.Cibles {
			lines = append(lines, "  - "+label)
		}
	}

	if len(snap.Ressources) > 0 {
		lines = append(lines, "", fmt.Sprintf("Ressources (%d):", len(snap.Ressources)))
		for _, titre := range snap.Ressources {
			lines = append(lines, "  - "+titre)
		}
	}

	if len(snap.Historique) > 0 {
		hist := snap.Historique
		if len(hist) > historyWindow {
			hist = hist[len(hist)-historyWindow:]
		}
		lines = append(lines, "", fmt.Sprintf("Historique récent (%d messages):", len(hist)))
		for _, msg := range hist {
			lines = append(lines, fmt.Sprintf("  [%s] %s", msg.Auteur, truncate(msg.Contenu, historyTruncation)))
		}
	}

	return strings.Join(lines, "\n")
}

// BuildContextSummary renders the scenario state for the plan-generation
// user message, upper-case labeled sections.
func BuildContextSummary(nom, thematique, statut string, objectifs, cibles, ressources []string) string {
	lines := []string{
		fmt.Sprintf("SCÉNARIO: %s", orNA(nom)),
		fmt.Sprintf("Thématique: %s", orNA(thematique)),
		fmt.Sprintf("Statut: %s", orDefault(statut, "draft")),
		"",
	}

	if len(objectifs) > 0 {
		lines = append(lines, fmt.Sprintf("OBJECTIFS (%d):", len(objectifs)))
		for _, o := range objectifs {
			lines = append(lines, "  - "+o)
		}
		lines = append(lines, "")
	}

	if len(cibles) > 0 {
		lines = append(lines, fmt.Sprintf("CIBLES (%d):", len(cibles)))
		for _, c := range cibles {
			lines = append(lines, "  - "+c)
		}
		lines = append(lines, "")
	}

	if len(ressources) > 0 {
		lines = append(lines, fmt.Sprintf("RESSOURCES (%d):", len(ressources)))
		for _, r := range ressources {
			lines = append(lines, "  - "+r)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// BuildObjectifSuggestionPrompt embeds the scenario and the system-wide list
// of labels the model must not repeat.
func BuildObjectifSuggestionPrompt(nom, thematique, description string, existingLabels []string) string {
	existing := ""
	if len(existingLabels) > 0 {
		existing = "\n\nObjectifs DÉJÀ EXISTANTS à NE PAS proposer :\n" + bulletList(existingLabels)
	}

	return fmt.Sprintf(`Vous êtes un expert en stratégie marketing B2B.

Scénario à analyser :
- Nom : %s
- Thématique : %s
- Description : %s%s

Votre mission :
1. Analysez ce scénario marketing
2. Proposez 4 à 6 objectifs marketing SMART et pertinents
3. Chaque objectif doit être :
   - Spécifique au contexte du scénario
   - Mesurable et actionnable
   - DIFFÉRENT des objectifs déjà existants listés ci-dessus
   - INÉDIT et innovant
   - Formulé de manière concise (max 80 caractères)

Répondez UNIQUEMENT au format JSON suivant (sans markdown, juste le JSON) :
{
  "objectifs": [
    {
      "label": "Objectif court et percutant",
      "description": "Description détaillée de l'objectif et de son impact"
    }
  ]
}`, nom, thematique, orDefault(description, "Non spécifiée"), existing)
}

// BuildCibleSuggestionPrompt embeds the scenario, the objectives already
// selected on the configuration if any, and the system-wide exclusion block.
func BuildCibleSuggestionPrompt(nom, thematique, description string, objectifLabels, existingLabels []string) string {
	objectifs := ""
	if len(objectifLabels) > 0 {
		objectifs = "\n\nObjectifs sélectionnés :\n" + bulletList(objectifLabels)
	}
	existing := ""
	if len(existingLabels) > 0 {
		existing = "\n\nCibles DÉJÀ EXISTANTES à NE PAS proposer :\n" + bulletList(existingLabels)
	}
	mission := "Analysez le scénario"
	if objectifs != "" {
		mission = "Analysez le scénario et les objectifs"
	}

	return fmt.Sprintf(`Vous êtes un expert en ciblage marketing B2B.

Scénario :
- Nom : %s
- Thématique : %s
- Description : %s%s%s

Votre mission :
1. %s
2. Proposez 5 à 7 cibles (personas) B2B pertinentes
3. Chaque cible doit avoir :
   - Un label clair (fonction/rôle) - max 60 caractères
   - Une description persona détaillée (responsabilités, défis, motivations)
   - Un segment de marché précis
   - Être DIFFÉRENTE des cibles déjà existantes listées ci-dessus
   - Être INÉDITE et innovante

Répondez UNIQUEMENT au format JSON suivant (sans markdown, juste le JSON) :
{
  "cibles": [
    {
      "label": "Titre du poste / Fonction",
      "persona": "Description détaillée du persona : responsabilités, défis, motivations",
      "segment": "Segment de marché ciblé"
    }
  ]
}`, nom, thematique, orDefault(description, "Non spécifiée"), objectifs, existing, mission)
}

// BuildArticlePlanPrompt asks for a content plan with exactly 5 articles for
// a configuration.
func BuildArticlePlanPrompt(scenarioNom, thematique, description string, objectifLabels, cibleLabels []string) string {
	return fmt.Sprintf(`Vous êtes un expert en content marketing B2B.

Configuration à développer :
- Scénario : %s
- Thématique : %s
- Description : %s

Objectifs :
%s

Cibles :
%s

Votre mission :
1. Créez un plan de contenu stratégique
2. Proposez EXACTEMENT 5 articles/contenus pertinents
3. Chaque article doit :
   - Avoir un titre accrocheur et SEO-friendly (max 100 caractères)
   - Un résumé de 2-3 phrases expliquant l'angle et la valeur (max 200 caractères)
   - Être adapté aux objectifs et cibles
   - Couvrir différents aspects du scénario

Répondez UNIQUEMENT au format JSON suivant (sans markdown, juste le JSON) :
{
  "resume": "Résumé global du plan de contenu en 2-3 phrases",
  "articles": [
    {
      "nom": "Titre de l'article",
      "resume": "Résumé détaillé de l'article et de son angle"
    }
  ]
}`, scenarioNom, thematique, orDefault(description, "Non spécifiée"),
		bulletList(objectifLabels), bulletList(cibleLabels))
}

func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// FormatCible renders a target as "label (segment)". The segment is
// omitted when unknown.
func FormatCible(label, segment string) string {
	if segment == "" {
		return label
	}
	return fmt.Sprintf("%s (%s)", label, segment)
}

// FormatRessource renders a resource as "titre [type]".
func FormatRessource(titre, typ string) string {
	if typ == "" {
		return titre
	}
	return fmt.Sprintf("%s [%s]", titre, typ)
}

func orNA(s string) string {
	return orDefault(s, "N/A")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
