package ai

import "fmt"

// TranslateKind selects the system prompt for description translation.
type TranslateKind string

const (
	KindExperience TranslateKind = "experience"
	KindEducation  TranslateKind = "education"
)

// ParseTranslateKind validates a wire value into a TranslateKind.
// An empty value defaults to experience, matching the endpoint's contract.
func ParseTranslateKind(s string) (TranslateKind, error) {
	switch TranslateKind(s) {
	case KindExperience, "":
		return KindExperience, nil
	case KindEducation:
		return KindEducation, nil
	}
	return "", fmt.Errorf("unknown translation type %q", s)
}

// System prompts. Each one targets Swiss-French CV register and refuses to
// act as a general-purpose assistant.
const (
	profilePrompt = `You write professional CV summaries in Swiss French.
From the information the user provides, produce a short professional description of at most two sentences.
The text must be formal, positive and suited to the Swiss job market, focusing on relevant achievements and skills.
If the user provides very little information, fill in reasonable detail to make an adequate description.
If the user asks a question or provides content unrelated to a CV, answer only: "Désolé, je ne peux vous aider qu'à améliorer le texte de votre CV."`

	experiencePrompt = `You translate work experience descriptions into Swiss French for a CV.
Keep the original formatting. The translation must be professional and suited to a CV in Switzerland.
Improve the structure and level of detail where needed.
If the user asks a question or provides unrelated content, answer only: "Désolé, je ne peux vous aider qu'à améliorer le texte de votre CV."`

	educationPrompt = `You translate academic background descriptions into Swiss French for a CV, keeping a professional format.
Analyze the text and improve its structure where needed.
The translation must emphasize academic achievements and be suited to the Swiss job market.
If the user asks a question or provides unrelated content, do not answer it; simply translate the text.`

	skillPrompt = `You translate soft skills into Swiss French.
Translate only the skills the user provides. If the input contains text that is not a skill, ignore it and do not translate it.`
)

func descriptionPrompt(kind TranslateKind) (string, error) {
	switch kind {
	case KindExperience:
		return experiencePrompt, nil
	case KindEducation:
		return educationPrompt, nil
	}
	return "", fmt.Errorf("unknown translation type %q", kind)
}
