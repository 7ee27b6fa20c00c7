package utils

// SummaryLength is the number of characters kept in a feed summary
const SummaryLength = 100

// Summarize truncates content to SummaryLength characters and marks the cut with "..."
func Summarize(content string) string {
	runes := []rune(content) // Count characters, not bytes
	if len(runes) <= SummaryLength {
		return content
	}
	return string(runes[:SummaryLength]) + "..."
}
