package notify

import (
	htmltemplate "html/template"
	texttemplate "text/template"
)

type HackathonApprovedData struct {
	OrganizerName string
	HackathonName string
	Email         string
	Password      string
	LoginURL      string
}

type JudgeInvitedData struct {
	JudgeName     string
	HackathonName string
	Organization  string
	StartDate     string
	EndDate       string
	Message       string
	PortalURL     string
}

type JudgeCredentialsData struct {
	JudgeName  string
	Email      string
	Password   string
	LoginURL   string
	ProfileURL string
}

type emailTemplate struct {
	subject *texttemplate.Template
	body    *htmltemplate.Template
}

var sources = map[Template]struct{ subject, body string }{
	TemplateHackathonApproved: {
		subject: `Your hackathon "{{.HackathonName}}" has been approved`,
		body: `<p>Hi {{.OrganizerName}},</p>
<p>Great news: <strong>{{.HackathonName}}</strong> has been approved on JudgeBase.
You can now browse judges and review the ones interested in your event.</p>
<p>Sign in to the organizer dashboard with these credentials:</p>
<ul>
  <li>Email: {{.Email}}</li>
  <li>Password: <code>{{.Password}}</code></li>
</ul>
<p><a href="{{.LoginURL}}">{{.LoginURL}}</a></p>
<p>Please keep this password private. It is shown only once.</p>
<p>The JudgeBase team</p>`,
	},
	TemplateJudgeInvited: {
		subject: `You're invited to judge {{.HackathonName}}`,
		body: `<p>Hi {{.JudgeName}},</p>
<p>{{if .Organization}}{{.Organization}}{{else}}An organizer{{end}} would like you to judge
<strong>{{.HackathonName}}</strong>{{if .StartDate}} ({{.StartDate}}{{if .EndDate}} to {{.EndDate}}{{end}}){{end}}.</p>
{{if .Message}}<blockquote>{{.Message}}</blockquote>{{end}}
<p>Accept or decline from your judge dashboard:
<a href="{{.PortalURL}}">{{.PortalURL}}</a></p>
<p>The JudgeBase team</p>`,
	},
	TemplateJudgeCredentials: {
		subject: `Welcome to JudgeBase, {{.JudgeName}}`,
		body: `<p>Hi {{.JudgeName}},</p>
<p>Your judge application has been approved.{{if .ProfileURL}} Your public profile is live at
<a href="{{.ProfileURL}}">{{.ProfileURL}}</a>.{{end}}</p>
<p>Sign in to the judge dashboard with these credentials:</p>
<ul>
  <li>Email: {{.Email}}</li>
  <li>Password: <code>{{.Password}}</code></li>
</ul>
<p><a href="{{.LoginURL}}">{{.LoginURL}}</a></p>
<p>Please keep this password private. It is shown only once.</p>
<p>The JudgeBase team</p>`,
	},
}

func parseTemplates() (map[Template]*emailTemplate, error) {
	out := make(map[Template]*emailTemplate, len(sources))
	for name, src := range sources {
		subject, err := texttemplate.New(string(name)).
			Option("missingkey=error").
			Parse(src.subject)
		if err != nil {
			return nil, err
		}

		body, err := htmltemplate.New(string(name)).
			Option("missingkey=error").
			Parse(src.body)
		if err != nil {
			return nil, err
		}

		out[name] = &emailTemplate{subject: subject, body: body}
	}

	return out, nil
}
