package services

import (
	"fmt"

	"resumehire/interview-engine/internal/config"
)

// System roles sent alongside each prompt category.
const (
	SystemRoleParser      = "You are an advanced resume parser and an expert in extracting structured information."
	SystemRoleAnalyst     = "You are an expert in analyzing candidates' profiles, summarizing, and reporting insights for HR decisions."
	SystemRoleInterviewer = "You are a technical interviewer creating relevant questions."
	SystemRoleEvaluator   = "You are a technical interviewer evaluating candidate responses."
	SystemRoleATSExpert   = "You are an ATS optimization expert analyzing resumes."
)

// primaryInfoQuery is the structured-extraction query run once per session.
const primaryInfoQuery = "Extract the following details in a structured format: " +
	"Name, Phone Number, Email, LinkedIn, GitHub, Portfolio, Other URLs, " +
	"References (Name, Phone, Email), Work Experience, Designation, Education, " +
	"Educational Achievements, Other Achievements, Address."

const supportingQuery = "Ensure the extracted information is well-structured and complete. Output should be clear and formatted."

const supportingInsights = `### Output Format Guidelines:
**Section One:** Only essential information related to the main content (the query being performed). No paragraphs.
**Section Two:** Insights with structured headings and bullet points, drawn according to the main content.
Ensure output is clean, properly structured, short, report-oriented and professional.`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// InsightQueries enumerates the role-fit insight queries offered per session. The
// exact strings double as cache keys, so they must stay stable for a given role.
func (pb *PromptBuilder) InsightQueries(role string) []string {
	return []string{
		fmt.Sprintf("Does the skill set match the current role - %s?", role),
		"Skills possessed by the user",
		fmt.Sprintf("Skills missing for this role - %s", role),
		"Projects completed by the user",
		"Project levels - Beginner, Intermediate, Advanced",
		fmt.Sprintf("Are projects related to this role - %s?", role),
		"Overall candidate rating based on skills, missing skills, completed projects, and project level",
		"Would you suggest hiring this candidate?",
	}
}

// PrimaryInfoQuery returns the cache key for the structured-extraction response.
func (pb *PromptBuilder) PrimaryInfoQuery() string {
	return primaryInfoQuery
}

// BuildPrimaryInfoPrompt requests the structured candidate facts from the resume.
func (pb *PromptBuilder) BuildPrimaryInfoPrompt(resumeText, role string) string {
	return pb.buildQueryPrompt(primaryInfoQuery, resumeText, role, supportingQuery)
}

// BuildInsightPrompt requests one role-fit insight grounded in the resume.
func (pb *PromptBuilder) BuildInsightPrompt(query, resumeText, role string) string {
	return pb.buildQueryPrompt(query, resumeText, role, supportingInsights)
}

func (pb *PromptBuilder) buildQueryPrompt(query, resumeText, role, supportText string) string {
	prompt := fmt.Sprintf("Just Tell Me %s\nUsing this information: %s\nAdditional context: %s",
		query, resumeText, supportText)
	if role != "" {
		prompt += fmt.Sprintf("\nJob Role: %s", role)
	}
	return prompt
}

// BuildQuestionSetPrompt requests count interview questions in one shot, one question
// per line, grounded in the resume.
func (pb *PromptBuilder) BuildQuestionSetPrompt(role, resumeText string, count int) string {
	return fmt.Sprintf(`Generate %d interview questions for a %s position based on the candidate's resume.

Here's the resume content:
%s

Requirements:
- Around 40%% technical, 30%% behavioral, 20%% situational, and 10%% HR questions.
- Each question should be challenging but appropriate for the candidate's experience level.
- Each question should be specific to the %s role and test both knowledge and problem-solving ability.

Return exactly one question per line, numbered "1." through "%d.". Return only the questions, nothing else.`,
		count, role, resumeText, role, count)
}

// BuildEvaluationPrompt requests a rubric-weighted grade for one question/answer
// pair. The reply is expected to carry a "Score: [score]/100" line, which the
// evaluator parses opportunistically.
func (pb *PromptBuilder) BuildEvaluationPrompt(question, answer, role string, rubric config.RubricWeights) string {
	return fmt.Sprintf(`You are a technical interviewer evaluating a candidate's response for a %s position.
The question was: %s
The candidate's answer was: %s

Evaluate the answer on the following criteria (0-100 scale):
1. Technical accuracy (%d points)
2. Clarity of explanation (%d points)
3. Relevance to the role (%d points)
4. Problem-solving approach (%d points)
5. Communication skills (%d points)

Provide:
- A score out of 100
- Justification for the score
- What the ideal answer would include
- Specific mistakes or areas for improvement

Format your response as:
Score: [score]/100
Evaluation: [detailed evaluation]
Ideal Answer: [what a strong answer would include]
Improvements: [specific areas to improve]`,
		role, question, answer,
		rubric.Technical, rubric.Clarity, rubric.Relevance, rubric.ProblemSolving, rubric.Communication)
}

// ATSAnalysisQuery returns the cache key for the ATS analysis response.
func (pb *PromptBuilder) ATSAnalysisQuery(role string) string {
	return fmt.Sprintf("ATS optimization analysis for the role - %s", role)
}

// BuildATSAnalysisPrompt requests ATS optimization recommendations for the resume.
func (pb *PromptBuilder) BuildATSAnalysisPrompt(resumeText, role string) string {
	return fmt.Sprintf(`Analyze this resume for Applicant Tracking System (ATS) optimization for a %s position.
Provide specific recommendations to improve the resume's ATS score:

1. Objective/Summary: What changes would make it more ATS-friendly?
2. Skills Section: How to better align with %s keywords?
3. Work Experience: How to better quantify achievements and include relevant keywords?
4. Education: Any improvements needed?
5. Projects: How to make them more relevant to %s?
6. Formatting: ATS-friendly formatting suggestions
7. Other sections: Any additions or deletions recommended?

For each section, provide:
- Current content (brief excerpt)
- Issues identified
- Specific recommended changes
- Expected impact on ATS score

Resume content:
%s

Return the analysis in a structured, easy-to-follow format.`,
		role, role, role, resumeText)
}
