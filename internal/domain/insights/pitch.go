package insights

import (
	"fmt"
	"strings"

	"github.com/okian/gigmatch/internal/domain/model"
)

// Pitch holds the generated texts that accompany a recommended gig.
type Pitch struct {
	Summary  string `json:"summary"`
	Pitch    string `json:"pitch"`
	Template string `json:"application_template"`
}

// NewPitch renders the summary, pitch and application template for r.
func NewPitch(r model.Record) Pitch {
	skills := strings.Join(r.RequiredSkills, ", ")
	return Pitch{
		Summary: fmt.Sprintf("This gig '%s' requires skills like %s. It's a prime opportunity to showcase your expertise!",
			r.Title, skills),
		Pitch: fmt.Sprintf("Apply for '%s' to leverage your skills in a high-impact project with great earning potential!",
			r.Title),
		Template: fmt.Sprintf("Dear Client,\nI'm excited to apply for your '%s' project. With my expertise in %s, "+
			"I can deliver high-quality results. Let's discuss how I can contribute to your success!\nBest,\n[Your Name]",
			r.Title, skills),
	}
}
