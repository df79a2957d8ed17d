package stage

import (
	"fmt"
	"strings"
)

const cleanPromptTemplate = `Please clean and improve the following YouTube video transcript. Remove:
1. Filler words (um, uh, like, you know, etc.)
2. Sponsorship segments and advertisements
3. YouTube-specific phrases (like and subscribe, hit the bell, etc.)
4. Repetitive or redundant content
5. Non-speech elements in brackets

Keep the core content and maintain readability. Return only the cleaned transcript.

Transcript:
%s`

const summaryPromptTemplate = `Please provide a comprehensive summary of the following YouTube video transcript.

Video Title: %s

Please include:
1. Main topics and key points discussed
2. Important insights or takeaways
3. Any actionable advice or recommendations
4. Overall conclusion or main message

Format the summary in clear, well-structured paragraphs.

Transcript:
%s`

const synthesisPromptTemplate = `Create a comprehensive research report based on the following collection of YouTube video transcripts.

Research Topic: %s
Number of Videos: %d

Please structure your report with the following sections:

1. **Introduction**
2. **Key Takeaways**
3. **Detailed Analysis**
4. **Contradictions and Debates**
5. **Actionable Steps**
6. **Conclusion**

Format the output in Markdown with proper headings, bullet points, and emphasis where appropriate.
Use [[WikiLinks]] format for key concepts to enable knowledge graph linking.

Video Transcripts:
%s`

const keywordPromptTemplate = `Extract important concepts, terms, and keywords from the following text that would be valuable as WikiLinks in a knowledge graph.
Focus on:
- Technical terms
- Concepts and theories
- Names of people, places, or organizations
- Important ideas or methodologies

Return only a comma-separated list of keywords, without explanations.

Text:
%s`

func cleanPrompt(transcript string) string {
	return fmt.Sprintf(cleanPromptTemplate, transcript)
}

func summaryPrompt(title, transcript string) string {
	return fmt.Sprintf(summaryPromptTemplate, title, transcript)
}

func synthesisPrompt(topic string, docs []Document) string {
	var combined strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&combined, "Video %d (%s):\n%s\n\n", i+1, doc.VideoId, doc.Content)
	}
	return fmt.Sprintf(synthesisPromptTemplate, topic, len(docs), combined.String())
}

func keywordPrompt(text string) string {
	return fmt.Sprintf(keywordPromptTemplate, text)
}
