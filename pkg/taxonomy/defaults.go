package taxonomy

// defaultCategories is the curated HRSN screening taxonomy. Trigger phrases
// are matched case-insensitively as substrings of note text; keep them
// specific enough not to fire on unrelated narrative (e.g. "lost job", not
// "job").
func defaultCategories() []Category {
	return []Category{
		{Name: "Housing Instability", Triggers: []string{
			"housing instability", "unstable housing", "no stable housing",
			"housing insecure", "eviction", "evicted", "behind on rent",
			"couch surfing", "staying with friends", "at risk of losing housing",
		}},
		{Name: "Homelessness", Triggers: []string{
			"homeless", "homelessness", "unhoused", "living in shelter",
			"emergency shelter", "living on the street", "sleeping in car",
			"no place to live", "transitional housing",
		}},
		{Name: "Housing Quality", Triggers: []string{
			"mold in", "pest infestation", "cockroaches", "rodents",
			"no heat in", "lead paint", "overcrowded housing",
			"unsafe housing", "housing conditions",
		}},
		{Name: "Food Insecurity", Triggers: []string{
			"food insecurity", "food insecure", "skipping meals",
			"not enough food", "ran out of food", "food bank", "food pantry",
			"snap benefits", "food stamps", "goes to bed hungry",
			"worried about food",
		}},
		{Name: "Transportation", Triggers: []string{
			"no transportation", "lack of transportation",
			"transportation barrier", "missed appointment due to transportation",
			"no car", "cannot afford bus", "bus pass", "no ride to",
		}},
		{Name: "Utilities", Triggers: []string{
			"utility shutoff", "utilities shut off", "electricity disconnected",
			"gas shut off", "water shut off", "cannot pay utility",
			"behind on utilities", "heating bill",
		}},
		{Name: "Employment", Triggers: []string{
			"unemployed", "unemployment", "lost job", "lost his job",
			"lost her job", "lost their job", "laid off", "job loss",
			"out of work", "cannot find work", "looking for work",
		}},
		{Name: "Financial Strain", Triggers: []string{
			"financial strain", "financial stress", "financial hardship",
			"cannot afford", "can't afford", "behind on bills",
			"struggling financially", "money problems", "low income",
			"cannot make ends meet", "bankruptcy",
		}},
		{Name: "Insurance Gap", Triggers: []string{
			"uninsured", "no insurance", "no health insurance",
			"lost insurance", "lost coverage", "lapsed coverage",
			"cannot afford insurance", "medicaid denied",
		}},
		{Name: "Medication Access", Triggers: []string{
			"cannot afford medication", "cannot afford meds",
			"rationing medication", "skipping doses",
			"stopped taking medication due to cost", "unable to fill prescription",
			"medication cost", "out of medication",
		}},
		{Name: "Education", Triggers: []string{
			"no high school diploma", "dropped out of school",
			"working on ged", "literacy problem", "cannot read",
			"unable to read", "no formal education",
		}},
		{Name: "Childcare", Triggers: []string{
			"no childcare", "childcare barrier", "cannot afford childcare",
			"lack of childcare", "daycare cost", "no one to watch",
		}},
		{Name: "Social Isolation", Triggers: []string{
			"social isolation", "socially isolated", "lives alone",
			"no social support", "no family support", "lonely", "loneliness",
			"no friends", "estranged from family",
		}},
		{Name: "Interpersonal Violence", Triggers: []string{
			"domestic violence", "intimate partner violence", "physical abuse",
			"verbal abuse", "emotional abuse", "afraid of partner",
			"unsafe at home", "abusive relationship", "sexual assault",
		}},
		{Name: "Stress", Triggers: []string{
			"overwhelmed", "severe stress", "high stress",
			"under a lot of stress", "cannot cope", "burned out",
			"stress at home",
		}},
		{Name: "Depression", Triggers: []string{
			"depressed", "depression", "feeling down", "hopeless",
			"worthless", "no interest in activities", "anhedonia",
			"crying spells", "tearful",
		}},
		{Name: "Anxiety", Triggers: []string{
			"anxiety", "anxious", "panic attack", "panic attacks",
			"constant worry", "excessive worry", "nervousness", "on edge",
		}},
		{Name: "Substance Use", Triggers: []string{
			"substance use", "substance abuse", "drug use", "illicit drug",
			"cocaine", "heroin", "methamphetamine", "opioid misuse",
			"iv drug use", "uses marijuana daily",
		}},
		{Name: "Alcohol Use", Triggers: []string{
			"alcohol abuse", "alcohol use disorder", "alcoholism",
			"drinks daily", "binge drinking", "alcohol dependence",
			"drinking problem", "heavy drinking",
		}},
		{Name: "Tobacco Use", Triggers: []string{
			"current smoker", "smokes", "tobacco use", "cigarettes per day",
			"pack per day", "pack-per-day", "chewing tobacco", "vaping",
		}},
		{Name: "Neighborhood Safety", Triggers: []string{
			"feels unsafe", "unsafe neighborhood", "gun violence", "gunshots",
			"crime in neighborhood", "afraid to go outside", "threatened by",
		}},
		{Name: "Legal Problems", Triggers: []string{
			"legal problems", "legal issues", "court date", "probation",
			"parole", "custody battle", "legal aid", "outstanding warrant",
		}},
		{Name: "Incarceration", Triggers: []string{
			"incarcerated", "incarceration", "in jail", "in prison",
			"recently released", "released from prison", "reentry program",
			"detention center",
		}},
		{Name: "Immigration", Triggers: []string{
			"immigration status", "undocumented", "asylum", "deportation",
			"refugee", "visa expired", "fear of deportation",
		}},
		{Name: "Veteran Status", Triggers: []string{
			"veteran", "military service", "deployed to", "combat exposure",
			"va benefits", "service connected",
		}},
		{Name: "Disability", Triggers: []string{
			"disabled", "disability", "wheelchair", "unable to work due to",
			"applying for ssi", "applying for ssdi", "functional limitation",
		}},
		{Name: "Caregiver Burden", Triggers: []string{
			"caregiver stress", "caregiver burnout", "caring for mother",
			"caring for father", "cares for spouse", "caring for her mother",
			"caring for his mother", "respite care",
		}},
		{Name: "Family Disruption", Triggers: []string{
			"family conflict", "going through divorce", "separated from spouse",
			"custody dispute", "family stress", "death in the family",
			"bereavement", "recently widowed",
		}},
		{Name: "Language Barrier", Triggers: []string{
			"language barrier", "limited english", "interpreter needed",
			"does not speak english", "non-english speaking",
			"requires translator",
		}},
		{Name: "Health Literacy", Triggers: []string{
			"health literacy", "does not understand medication",
			"confused about instructions", "difficulty understanding",
			"unable to follow instructions", "needs teach back",
		}},
		{Name: "Clothing", Triggers: []string{
			"no warm clothes", "lacks clothing", "clothing assistance",
			"no winter coat", "inadequate clothing",
		}},
		{Name: "Hygiene Access", Triggers: []string{
			"poor hygiene", "no access to shower", "unable to bathe",
			"no laundry access", "unable to wash",
		}},
		{Name: "Phone Access", Triggers: []string{
			"no phone", "phone disconnected", "no reliable phone",
			"cannot be reached", "no internet access", "no working phone",
		}},
		{Name: "Dental Care", Triggers: []string{
			"dental pain", "no dentist", "cannot afford dental",
			"missing teeth", "needs dental care", "toothache",
		}},
		{Name: "Care Access", Triggers: []string{
			"no primary care", "no pcp", "cannot get appointment",
			"no regular doctor", "uses emergency room for care",
			"no usual source of care",
		}},
	}
}
