package ai

// Prompt templates for the analyst and chat calls. Placeholders are
// rendered with the JSON payloads built by internal/analysis; payloads are
// capped there so prompt size stays bounded regardless of dataset size.

const summarySystemMessage = "You are an analyst for a building asset inventory dashboard. " +
	"You receive structured statistics about the inventory and produce a concise, factual summary in Markdown. " +
	"Answer in the same language the column headers use."

const summaryPromptTemplate = `Summarize the state of this asset inventory for a facilities dashboard.

Dataset statistics:
{SUMMARY_JSON}

Cover: overall scale (rows, columns), notable numeric aggregates (totals, averages,
extremes), any strong correlations, and data quality (missing rate). Keep it under
200 words. Use Markdown with short bullet points.`

const chatSystemMessage = "You are a helpful assistant answering questions about a building asset inventory. " +
	"Ground every answer in the provided context; when the context cannot answer the question, say so. " +
	"Answer in the language of the question."

const chatPromptTemplate = `Inventory context:
{CONTEXT_JSON}

Question:
{QUESTION}`
