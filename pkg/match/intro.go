package match

import (
	"fmt"
	"strings"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
)

// Profile is the user's own company, the sender of an introduction.
type Profile struct {
	Name            string   `json:"name" yaml:"name"`
	Company         string   `json:"company" yaml:"company"`
	Sector          string   `json:"sector,omitempty" yaml:"sector"`
	ServicesOffered []string `json:"services_offered,omitempty" yaml:"services_offered"`
	ServicesNeeded  []string `json:"services_needed,omitempty" yaml:"services_needed"`
}

// Introduction is a draft message to a matched business.
type Introduction struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Translation keys and their English fallbacks. Templates use {sender},
// {company}, {recipient}, {score} and {reasons} placeholders.
const (
	KeyIntroSubject = "intro.subject"
	KeyIntroBody    = "intro.body"
	KeyIntroReasons = "intro.reasons"
)

var introDefaults = map[string]string{
	KeyIntroSubject: "Introduction from {company}",
	KeyIntroBody: "Hello {recipient} team,\n\n" +
		"I'm {sender} from {company}. Our profiles look like a {score}% match and I'd like to explore working together.\n" +
		"{reasons}\n" +
		"Best regards,\n{sender}",
	KeyIntroReasons: "Why we might fit:",
}

// ComposeIntroduction drafts an introduction from p to b for match m.
// translate may be nil; keys it cannot resolve (it returns the key) fall
// back to the English templates.
func ComposeIntroduction(p Profile, b district.Business, m Match, translate func(string) string) Introduction {
	text := func(key string) string {
		if translate != nil {
			if s := translate(key); s != "" && s != key {
				return s
			}
		}
		return introDefaults[key]
	}

	var reasons string
	if len(m.Reasons) > 0 {
		var sb strings.Builder
		sb.WriteString("\n" + text(KeyIntroReasons) + "\n")
		for _, r := range m.Reasons {
			fmt.Fprintf(&sb, "- %s\n", r)
		}
		reasons = sb.String()
	}

	sender := p.Name
	if sender == "" {
		sender = p.Company
	}
	r := strings.NewReplacer(
		"{sender}", sender,
		"{company}", p.Company,
		"{recipient}", b.Name,
		"{score}", fmt.Sprintf("%d", min(max(m.Score, 0), 100)),
		"{reasons}", reasons,
	)
	return Introduction{
		To:      b.ID,
		Subject: r.Replace(text(KeyIntroSubject)),
		Body:    r.Replace(text(KeyIntroBody)),
	}
}
