package prompt

import (
	"fmt"
	"strings"

	"github.com/jtbrown6/language-storygen/pkg/model"
)

// levelDescriptions maps a CEFR level to the language guidance embedded
// in the generation prompt.
var levelDescriptions = map[string]string{
	"A1": "very simple language, basic vocabulary, present tense, short sentences, 100-150 words",
	"A2": "simple language, common vocabulary, present and past tense, short-medium sentences, 150-200 words",
	"B1": "intermediate language, expanded vocabulary, varied tenses, medium sentences, 200-250 words",
	"B2": "advanced language, rich vocabulary, all tenses, complex sentences, 250-300 words",
}

var indirectObjectDescriptions = map[int]string{
	1: "minimal indirect objects (only 1-2)",
	2: "moderate indirect objects (3-5)",
	3: "many indirect objects (6+)",
}

var reflexiveVerbDescriptions = map[int]string{
	1: "minimal reflexive verbs (only 1-2)",
	2: "moderate reflexive verbs (3-5)",
	3: "many reflexive verbs (6+)",
}

// Build assembles the user prompt for a generation request. It is fully
// deterministic: the same parameters always produce the same prompt.
func Build(params model.GenerationParameters) string {
	var b strings.Builder

	contentDesc := "story"
	if params.ContentType == model.ContentTypeConversation {
		contentDesc = "conversation between two people"
	}
	fmt.Fprintf(&b, "Generate a Spanish %s about %q. ", contentDesc, params.Scenario)

	fmt.Fprintf(&b, "Use %s appropriate for %s Spanish level. ", levelDescriptions[params.Level], params.Level)

	if len(params.Verbs) > 0 {
		fmt.Fprintf(&b, "Include the following Spanish verbs naturally in the %s: %s. ",
			params.ContentType, strings.Join(params.Verbs, ", "))
	}

	if desc, ok := indirectObjectDescriptions[params.IndirectObjectLevel]; ok {
		fmt.Fprintf(&b, "Use %s. ", desc)
	}

	if desc, ok := reflexiveVerbDescriptions[params.ReflexiveVerbLevel]; ok {
		fmt.Fprintf(&b, "Use %s. ", desc)
	}

	if params.IdiomaticExpressions {
		b.WriteString("Include common Spanish idiomatic expressions with their context. ")
	}

	b.WriteString("Ensure the content is culturally appropriate, engaging, and demonstrates natural Spanish usage. " +
		"The story should be coherent and make sense regardless of the requirements.")

	return b.String()
}

// SystemPrompt returns the system message for a generation request. The
// conversation variant adds "Speaker: line" formatting rules; both carry
// the JSON response-shape instruction the markup parser relies on.
func SystemPrompt(contentType model.ContentType) string {
	var base string
	if contentType == model.ContentTypeConversation {
		base = "You are a helpful assistant that generates Spanish conversations with proper formatting. " +
			"For conversations, use speaker names followed by colons (e.g., 'María: Hola, ¿cómo estás?'). " +
			"Format each speaker's dialogue on a new line."
	} else {
		base = "You are a helpful assistant that generates Spanish stories based on specific requirements."
	}

	return base + " Important: Your response must be a JSON object with the following structure: " +
		"{ 'text': 'the full story/conversation text', " +
		"'markup': [ " +
		"{ 'type': 'selected-verb', 'start': number, 'end': number, 'text': 'verb text' }, " +
		"{ 'type': 'reflexive-verb', 'start': number, 'end': number, 'text': 'verb text' }, " +
		"{ 'type': 'idiom', 'start': number, 'end': number, 'text': 'idiom text' }, " +
		"{ 'type': 'verb', 'start': number, 'end': number, 'text': 'verb text' } " +
		"] }. " +
		"For each verb in the story, add an entry in the markup array. " +
		"For each user-specified verb, add an entry with type 'selected-verb'. " +
		"For reflexive verbs, add entries with type 'reflexive-verb'. " +
		"For idiomatic expressions, add entries with type 'idiom'. " +
		"For other verbs, add entries with type 'verb'. " +
		"The 'start' and 'end' fields should be character indices in the text."
}

// TranslatorSystemPrompt is the system message shared by the translation flows.
const TranslatorSystemPrompt = "You are a helpful assistant that translates Spanish text to English. " +
	"Provide only the translation, no additional explanations."

// PronounceSystemPrompt is the system message for normalizing a word to
// Spanish before synthesis.
const PronounceSystemPrompt = "You are a translator proficient in Spanish."

// InlineTranslation builds the prompt for a word or short phrase, with
// optional surrounding context from the story.
func InlineTranslation(text, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following Spanish word or phrase to English:\n%q\n", text)
	if context != "" {
		fmt.Fprintf(&b, "Context: %q\n", context)
	}
	b.WriteString("Provide just the direct translation, no explanations. " +
		"If the phrase contains multiple words, translate the entire phrase, not just individual words.")
	return b.String()
}

// FullTranslation builds the prompt for translating a complete story.
func FullTranslation(text string) string {
	return fmt.Sprintf("Translate the following Spanish text to English, maintaining the original tone and style:\n%s\nProvide a natural, accurate translation.", text)
}

// PronounceTranslation builds the prompt that normalizes a word to its
// Spanish form ahead of synthesis. Already-Spanish input passes through.
func PronounceTranslation(word string) string {
	return fmt.Sprintf("Translate the word '%s' to Spanish. If it's already Spanish, return it unchanged, "+
		"but ONLY provide the translated word, do not mention that the word is in spanish or not.", word)
}
