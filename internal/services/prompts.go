package services

import (
	"fmt"
	"strings"

	"github.com/prefeitura-rio/app-seo-analyzer/internal/providers/llm"
	"github.com/prefeitura-rio/app-seo-analyzer/internal/utils"
)

// SupplementarySeparator une a análise principal e os insights técnicos
const SupplementarySeparator = "\n\n---\n\n### **🔧 Additional Technical Insights**\n\n"

const analysisSystemPrompt = `You are an SEO expert. Provide detailed SEO analysis in a clear, structured markdown format.

Format your response EXACTLY as follows:

# SEO Analysis for [URL]

[2-3 sentence introduction about the analysis scope]

## Content Depth and Quality
**Analysis:**
- [Point about content comprehensiveness]
- [Point about content freshness]
- [Point about user engagement elements]

**Action Items:**
- ✅ [Specific, actionable recommendation]
- ✅ [Specific, actionable recommendation]
- ✅ [Specific, actionable recommendation]

## URL Structure
**Analysis:**
- [Point about URL format]
- [Point about keyword usage in URLs]

**Action Items:**
- ✅ [Specific, actionable recommendation]
- ✅ [Specific, actionable recommendation]

## H1 Title Tag
**Analysis:**
- [Point about current title tags]
- [Point about keyword optimization]

**Action Items:**
- ✅ [Specific, actionable recommendation]
- ✅ [Specific, actionable recommendation]

## Internal Links
**Analysis:**
- [Point about internal linking structure]
- [Point about navigation hierarchy]

**Action Items:**
- ✅ [Specific, actionable recommendation]
- ✅ [Specific, actionable recommendation]

## Meta Description
**Analysis:**
- [Point about current meta descriptions]
- [Point about click-through potential]

**Action Items:**
- ✅ [Specific, actionable recommendation]
- ✅ [Specific, actionable recommendation]

## Readability
**Analysis:**
- [Point about content structure]
- [Point about reading level]

**Action Items:**
- ✅ [Specific, actionable recommendation]
- ✅ [Specific, actionable recommendation]

## Priority Recommendations
1. 🚀 [High-impact recommendation]
2. 🚀 [High-impact recommendation]
3. 🚀 [High-impact recommendation]

## Semantic Keywords
- [Related keyword or entity worth covering]
- [Related keyword or entity worth covering]

## Final Verdict
[One short paragraph with the overall SEO health of the page]

Each section must:
- Start with clear analysis points
- Include specific, actionable recommendations
- Use bullet points for better readability
- Include relevant emojis for visual hierarchy`

const supplementarySystemPrompt = "You are a technical SEO consultant. Answer in markdown with headers and bullet points."

// criterion descreve uma seção numerada do relatório. Os campos keyword*
// só entram no prompt quando há palavra-chave.
type criterion struct {
	title          string
	assessment     []string
	keywordChecks  []string
	actions        []string
	keywordActions []string
}

func criteria(keyword string) []criterion {
	q := fmt.Sprintf("%q", keyword)
	return []criterion{
		{
			title:          "Content Depth and Quality",
			assessment:     []string{"Analyze content comprehensiveness", "Check for user-generated content", "Evaluate content update frequency"},
			keywordChecks:  []string{"Check keyword usage in main content", "Evaluate semantic relevance to " + q, "Review competitor content for this keyword"},
			actions:        []string{"List specific content improvements", "Suggest content additions", "Recommend content strategy changes"},
			keywordActions: []string{"Suggest keyword-optimized content sections", "Recommend content clusters around " + q},
		},
		{
			title:          "URL Structure",
			assessment:     []string{"Evaluate current URL structure", "Check for keyword inclusion", "Analyze subpage naming conventions"},
			keywordChecks:  []string{"Check keyword presence in URLs", "Analyze URL optimization for " + q},
			actions:        []string{"Suggest URL optimizations", "Recommend structure improvements"},
			keywordActions: []string{"Suggest URL optimizations incorporating " + q, "Recommend URL structure for topic clusters"},
		},
		{
			title:          "H1 Title Tag",
			assessment:     []string{"Review current H1 usage", "Check keyword placement", "Evaluate title effectiveness"},
			actions:        []string{"Provide specific title improvements", "Suggest alternative formats"},
			keywordActions: []string{"Provide title improvements with " + q + " placement", "Suggest H1 variations using keyword modifiers"},
		},
		{
			title:          "Internal Links",
			assessment:     []string{"Analyze internal linking structure", "Check anchor text usage", "Evaluate link relevance"},
			keywordChecks:  []string{"Check keyword usage in anchor text", "Evaluate topic cluster linking"},
			actions:        []string{"Suggest new internal links", "Recommend anchor text improvements"},
			keywordActions: []string{"Suggest internal links for the " + q + " topic cluster", "Recommend anchor text using keyword variations"},
		},
		{
			title:          "Meta Description",
			assessment:     []string{"Review current meta description", "Check for keywords and CTAs", "Evaluate effectiveness"},
			keywordChecks:  []string{"Check keyword placement in meta", "Analyze click-through potential for " + q},
			actions:        []string{"Provide optimized meta description", "Include clear CTAs"},
			keywordActions: []string{"Provide a meta description incorporating " + q, "Suggest compelling CTAs for search intent"},
		},
		{
			title:          "Readability",
			assessment:     []string{"Evaluate content structure", "Check formatting", "Review paragraph length"},
			keywordChecks:  []string{"Check keyword context and flow", "Analyze readability for search intent"},
			actions:        []string{"Suggest structural improvements", "Recommend formatting changes"},
			keywordActions: []string{"Suggest structural improvements for better keyword context"},
		},
	}
}

// BuildMainPrompt monta o prompt da análise principal
func BuildMainPrompt(rawURL, keyword string) llm.Prompt {
	keyword = strings.TrimSpace(keyword)
	display := utils.ExtractDomain(rawURL)
	hasKeyword := keyword != ""

	var b strings.Builder

	b.WriteString("Analyze the website " + rawURL)
	if hasKeyword {
		fmt.Fprintf(&b, " focusing on the keyword %q", keyword)
	}
	b.WriteString(" and provide a detailed SEO analysis in the following format:\n\n")

	fmt.Fprintf(&b, "Here's a detailed SEO analysis for **%s**", display)
	if hasKeyword {
		fmt.Fprintf(&b, " with the keyword **%q**", keyword)
	}
	b.WriteString(":\n\n---\n\n")

	b.WriteString("### **🔍 SEO Analysis Report**\n")
	fmt.Fprintf(&b, "**URL:** [%s](%s)\n", display, rawURL)
	if hasKeyword {
		fmt.Fprintf(&b, "**Target Keyword:** %q\n\n", keyword)
		b.WriteString("**Keyword Optimization Opportunities:**\n")
		writeBullets(&b, "- ", []string{
			"Analyze current keyword density and placement",
			"Check keyword variations and LSI keywords",
			"Evaluate keyword competitiveness",
			"Suggest long-tail keyword opportunities",
		})
	}
	b.WriteString("\n---\n\n")

	for i, c := range criteria(keyword) {
		fmt.Fprintf(&b, "### **%d. %s**\n", i+1, c.title)
		b.WriteString("**Assessment:**\n")
		writeBullets(&b, "- ", c.assessment)
		if hasKeyword {
			writeBullets(&b, "  - ", c.keywordChecks)
		}
		b.WriteString("\n**Action Items:**\n")
		if hasKeyword && len(c.keywordActions) > 0 {
			writeBullets(&b, "✅ ", c.keywordActions)
		}
		writeBullets(&b, "✅ ", c.actions)
		b.WriteString("\n---\n\n")
	}

	if hasKeyword {
		b.WriteString("**Search Intent Analysis:**\n")
		writeBullets(&b, "- ", []string{
			fmt.Sprintf("Identify primary search intent for %q", keyword),
			"Analyze competitor keyword usage",
			"Check keyword difficulty and volume",
		})
		b.WriteString("\n**Content Opportunities:**\n")
		writeBullets(&b, "✅ ", []string{
			"Suggest content types matching search intent",
			"Recommend related keywords to target",
			"Outline topic cluster strategy",
		})
		b.WriteString("\n---\n\n")
	}

	b.WriteString("### **🚀 Top 3 Priority Fixes**\n")
	if hasKeyword {
		fmt.Fprintf(&b, "1. List the most critical fix for %q optimization\n", keyword)
	} else {
		b.WriteString("1. List the most critical fix\n")
	}
	b.WriteString("2. Second most important improvement\n3. Third key optimization\n\n")

	b.WriteString("**Tools to Help:**\n")
	b.WriteString("- Suggest relevant SEO tools\n")
	if hasKeyword {
		writeBullets(&b, "  - ", []string{"Recommend keyword research tools", "Suggest content optimization tools"})
	}
	b.WriteString("- Include specific tool recommendations\n\n")

	b.WriteString("### **🧠 Semantic Keywords**\n")
	b.WriteString("- List related terms and entities the page should cover\n\n")
	b.WriteString("### **🏁 Final Verdict**\n")
	b.WriteString("- Summarize the overall SEO health of the page in one paragraph\n\n")

	b.WriteString("Note: Be specific and actionable in your analysis. Include real examples from the website where possible.")
	if hasKeyword {
		b.WriteString(" Focus on optimizing for the target keyword while maintaining natural content flow.")
	}

	return llm.Prompt{
		System:    analysisSystemPrompt,
		User:      b.String(),
		MaxTokens: llm.DefaultMaxTokens,
	}
}

// BuildSupplementaryPrompt monta o prompt dos insights técnicos complementares
func BuildSupplementaryPrompt(rawURL, keyword string) llm.Prompt {
	keyword = strings.TrimSpace(keyword)

	var b strings.Builder
	b.WriteString("Based on the following website analysis, provide additional technical SEO insights and recommendations that complement the main analysis:\n\n")
	fmt.Fprintf(&b, "Website: %s\n", rawURL)
	if keyword != "" {
		fmt.Fprintf(&b, "Target Keyword: %s\n", keyword)
	}
	b.WriteString("\nPlease focus on:\n")
	for i, item := range []string{
		"Technical SEO aspects not covered in the main analysis",
		"Advanced optimization opportunities",
		"Specific implementation details for the recommendations",
		"Emerging SEO trends that could be relevant",
		"Competitive analysis insights",
		"Performance optimization suggestions",
	} {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\nFormat your response as a detailed technical supplement to the main analysis.")

	return llm.Prompt{
		System:    supplementarySystemPrompt,
		User:      b.String(),
		MaxTokens: llm.DefaultMaxTokens,
	}
}

// CombineAnalysis junta a análise principal com o texto complementar
func CombineAnalysis(main, supplementary string) string {
	if supplementary == "" {
		return main
	}
	return main + SupplementarySeparator + supplementary
}

func writeBullets(b *strings.Builder, prefix string, items []string) {
	for _, item := range items {
		b.WriteString(prefix)
		b.WriteString(item)
		b.WriteByte('\n')
	}
}
