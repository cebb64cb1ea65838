package profile

import (
	"fmt"
	"strings"
)

// SystemPrompt renders the profile into the system instruction the relay prepends to
// every upstream request. The output is deterministic for a given profile; sections
// whose data is missing render empty rather than failing.
func SystemPrompt(p Profile) string {
	var sb strings.Builder

	name := p.Personal.Name
	if name == "" {
		name = "the candidate"
	}

	sb.WriteString(fmt.Sprintf("You are %s's professional AI assistant. Answer recruiters clearly and concisely.\n", name))

	sb.WriteString("\n=== WORK AUTHORIZATION FACTS ===\n")
	for _, fact := range p.Authorization.Facts {
		sb.WriteString("- ")
		sb.WriteString(fact)
		sb.WriteString("\n")
	}

	sb.WriteString("\n=== RECRUITER-INTENT DETECTION ===\n")
	if len(p.Authorization.Keywords) > 0 {
		sb.WriteString("When users ask about: ")
		for i, kw := range p.Authorization.Keywords {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%q", kw))
		}
		sb.WriteString(" -> Use recruiter response mode (formal, short, crisp).\n")
	}
	if p.Authorization.ShortAnswer != "" {
		sb.WriteString("\nShort answer format for work authorization:\n")
		sb.WriteString(fmt.Sprintf("%q\n", p.Authorization.ShortAnswer))
		sb.WriteString("\nLong answer only if user requests more details.\n")
	}

	sb.WriteString("\n=== RESUME CONTEXT ===\n")

	sb.WriteString("\nPersonal:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", p.Personal.Name))
	sb.WriteString(fmt.Sprintf("- Title: %s\n", p.Personal.Title))
	sb.WriteString(fmt.Sprintf("- Location: %s\n", p.Personal.Location))
	sb.WriteString(fmt.Sprintf("- Email: %s\n", p.Personal.Email))

	sb.WriteString("\nSkills:\n")
	for _, group := range p.Skills {
		sb.WriteString(fmt.Sprintf("%s: %s\n", group.Category, strings.Join(group.Items, ", ")))
	}

	sb.WriteString("\nExperience:\n")
	for _, exp := range p.Experience {
		sb.WriteString(fmt.Sprintf("%s at %s (%s - %s): %s\n",
			exp.Position, exp.Company, exp.StartDate, exp.EndDate, strings.Join(exp.Description, "; ")))
	}

	sb.WriteString("\nProjects:\n")
	for _, project := range p.Projects {
		sb.WriteString(fmt.Sprintf("%s: %s\n", project.Title, project.Description))
	}

	sb.WriteString("\nEducation:\n")
	entries := make([]string, 0, len(p.Education))
	for _, ed := range p.Education {
		entries = append(entries, fmt.Sprintf("%s — %s", ed.Degree, ed.Institution))
	}
	sb.WriteString(strings.Join(entries, "; "))
	sb.WriteString("\n")

	if len(p.Certifications) > 0 {
		sb.WriteString("\nCertifications:\n")
		for _, cert := range p.Certifications {
			sb.WriteString(fmt.Sprintf("%s (%s, %s)\n", cert.Name, cert.Issuer, cert.Date))
		}
	}

	sb.WriteString("\n=== ANSWERING RULES ===\n")
	sb.WriteString(fmt.Sprintf("- If you don't know the answer from the resume context above, say: "+
		"\"I'm not sure about that — I only know %s's professional info.\"\n", name))
	sb.WriteString("- Keep responses short unless the user asks for details.\n")
	sb.WriteString("- Do not invent or hallucinate experiences; answer only from the resume context and this prompt.\n")
	sb.WriteString("- For recruiter questions about work authorization, be professional, concise, and accurate.\n")

	return sb.String()
}
