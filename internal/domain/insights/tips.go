package insights

import (
	"fmt"
	"strings"

	"github.com/okian/gigmatch/internal/domain/model"
)

const (
	tipsHeader   = "To unlock high-paying gigs, consider learning:"
	tipsComplete = "Your skills are top-tier! Explore advanced projects to maintain your edge."
	tipFallback  = "Explore Udemy or Coursera courses."
)

var learningResources = map[string]string{
	"generative ai": "Enroll in Hugging Face's Transformers course: https://huggingface.co/learn",
	"agentic ai":    "Learn LangChain for agentic systems: https://python.langchain.com/docs",
	"react":         "Master React via freeCodeCamp: https://www.freecodecamp.org/learn",
	"typescript":    "Study TypeScript handbook: https://www.typescriptlang.org/docs",
	"python":        "Deepen Python skills with Automate the Boring Stuff: https://automatetheboringstuff.com",
	"flutter":       "Explore Flutter with Google's official docs: https://flutter.dev/learn",
}

// Tip is a learning suggestion for one skill.
type Tip struct {
	Skill    string `json:"skill"`
	Resource string `json:"resource"`
}

// MissingSkills returns the skills required by records and absent from have,
// in first-seen order.
func MissingSkills(have []string, records []model.Record) []string {
	owned := make(map[string]struct{})
	for _, s := range model.NormalizeSkills(have) {
		owned[s] = struct{}{}
	}
	var missing []string
	for _, r := range records {
		for _, s := range model.NormalizeSkills(r.RequiredSkills) {
			if _, ok := owned[s]; ok {
				continue
			}
			owned[s] = struct{}{}
			missing = append(missing, s)
		}
	}
	return missing
}

// SkillTips maps each missing skill to a learning resource.
func SkillTips(missing []string) []Tip {
	tips := make([]Tip, 0, len(missing))
	for _, s := range missing {
		res, ok := learningResources[strings.ToLower(s)]
		if !ok {
			res = tipFallback
		}
		tips = append(tips, Tip{Skill: s, Resource: res})
	}
	return tips
}

// FormatTips renders tips as a short plain-text message.
func FormatTips(tips []Tip) string {
	if len(tips) == 0 {
		return tipsComplete
	}
	var b strings.Builder
	b.WriteString(tipsHeader)
	for _, t := range tips {
		fmt.Fprintf(&b, "\n- %s: %s", t.Skill, t.Resource)
	}
	return b.String()
}
