package service

import "fmt"

const analysisFormat = `Provide a comprehensive analysis in the following JSON format:
{
  "score": <number 0-100>,
  "feedback": "<overall assessment>",
  "strengths": ["strength 1", "strength 2", ...],
  "improvements": ["improvement 1", "improvement 2", ...],
  "grammar": ["grammar issue 1", "grammar issue 2", ...],
  "clarity": ["clarity issue 1", "clarity issue 2", ...]
}`

var analysisPrompts = map[string]struct {
	role     string
	subject  string
	criteria string
}{
	DocumentTypeSOP: {
		role:    "You are an expert visa application consultant.",
		subject: "Analyze this Statement of Purpose (SOP) for a Canadian study permit application.",
		criteria: `1. Clear purpose and motivation
2. Academic and career goals alignment
3. Financial preparedness
4. Ties to home country
5. Grammar and writing quality
6. Professional tone
7. Specific details about the chosen program
8. Convincing reasons to return home after studies`,
	},
	DocumentTypeCV: {
		role:    "You are an expert resume and CV consultant.",
		subject: "Analyze this CV for a Canadian study permit or job application.",
		criteria: `1. Professional formatting and structure
2. Clear contact information
3. Relevant education details
4. Work experience quality and relevance
5. Skills and achievements
6. Grammar and language quality
7. Quantifiable accomplishments
8. Appropriate length`,
	},
	DocumentTypeLetter: {
		role:    "You are an expert document reviewer.",
		subject: "Analyze this letter for a visa application.",
		criteria: `1. Professional tone and formatting
2. Clear purpose and message
3. Supporting evidence and details
4. Grammar and language quality
5. Appropriate length
6. Credibility and authenticity`,
	},
}

func analysisPrompt(documentType, text string) string {
	p := analysisPrompts[documentType]
	return fmt.Sprintf("%s %s\n\nDocument:\n%s\n\n%s\n\nEvaluate based on:\n%s\n\nBe constructive and specific.",
		p.role, p.subject, text, analysisFormat, p.criteria)
}

func checklistPrompt(degree, country, season string) string {
	return fmt.Sprintf(`Generate a personalized visa application checklist for a %[1]s student from %[2]s planning to study in Canada with a %[3]s intake.

Consider degree-specific requirements, country-specific document requirements, the timeline implied by the intake season and common issues students from %[2]s face.

Return ONLY a JSON array of checklist items as strings, no additional text:
["item 1", "item 2", "item 3", ...]

Keep it practical, specific and actionable with 15-20 items covering academic documents, financial proof, language tests, visa application steps and pre-departure tasks.`, degree, country, season)
}

const assistantInstruction = `You are a helpful Canadian visa assistant with expertise in IRCC (Immigration, Refugees and Citizenship Canada) guidelines. You help users with study permit applications, work permits, permanent residence pathways, visitor visas, document checklists, processing times, biometrics, medical exams, police certificates, post-arrival tasks (SIN, health card, bank accounts) and student work rights.

Guidelines:
- Provide accurate information based on IRCC policies
- Be friendly, clear and concise
- If unsure, recommend checking the official IRCC website
- Use simple language to explain immigration terms
- Encourage users to verify information on official sources

Reference facts:
- Study permit: LOA required, proof of funds of CAD 20,635 per year plus tuition, biometrics, medical exam if needed
- Processing time: 8-12 weeks for study permits, varying by country
- Work rights: 20 hours per week during studies, full-time during scheduled breaks
- Post-Graduation Work Permit: 8 months to 3 years depending on program length
- SIN: apply within weeks of arrival to be eligible to work
- Provincial health insurance: most provinces have a waiting period, so get private insurance meanwhile`
