package models

// DEI checklist prompts. Each prompt doubles as the column header of its
// free-text answer in the tracker spreadsheet, so the wording here must
// stay in sync with the sheet.

// MarketingChecklist returns the marketing-brief prompts.
func MarketingChecklist() []string {
	return []string{
		"How can DE&I be reflected in our High Value Communities or audience definitions?",
		"Should additional growth audience(s) be considered, or prioritized?",
		"Do we have the opportunity to personalize our work to different DE&I communities? ",
		"Does this project (or business opportunity) intersect with social issues?",
	}
}

// AgencyChecklist returns the agency creative-brief prompts.
func AgencyChecklist() []string {
	return []string{
		"Where are we sourcing data and inspiration for this project?",
		"Are we getting a full picture of the audience - can we get more diverse perspective?",
		"Are there relevant stereotypes about the audience that we should dispel?",
		"How are we gaining input or inspiration from the audience?",
		"Are our creative references and thought starters as diverse, equal and inclusive as the work we hope to make?",
	}
}

// ReviewChecklist returns the DEI creative-review prompts.
func ReviewChecklist() []string {
	return []string{
		"How can we reasonably make the work more inclusive, equitable and representative at this stage?",
		"Could the work be reinforcing negative stereotypes?",
		"What cultural references could we be misappropriating?",
		"Can we be more inclusive with regard to age, body type, disability, ethnicity, gender, sexual orientation?",
		"How can we, and our clients, make choices that lead to more inclusive and equitable work?",
	}
}
