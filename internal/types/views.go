package types

import "time"

type (
	JudgeView struct {
		CreatedAt  time.Time    `json:"createdAt"`
		ID         string       `json:"id"`
		Slug       string       `json:"slug"`
		Status     ReviewStatus `json:"status"`
		Name       string       `json:"name"`
		Role       string       `json:"role"`
		Company    string       `json:"company"`
		LinkedIn   string       `json:"linkedin,omitempty"`
		GitHub     string       `json:"github,omitempty"`
		Website    string       `json:"website,omitempty"`
		Bio        string       `json:"bio"`
		Philosophy string       `json:"philosophy,omitempty"`
		Format     EventFormat  `json:"format,omitempty"`
		PhotoURL   string       `json:"photoUrl,omitempty"`
		// Only shown to admins
		Email     string   `json:"email,omitempty"`
		Expertise []string `json:"expertise"`
		Badges    []string `json:"badges"`
		Featured  bool     `json:"featured"`
		Mentoring bool     `json:"mentoring"`
	}

	ApplicationView struct {
		CreatedAt  time.Time    `json:"createdAt"`
		ID         string       `json:"id"`
		Status     ReviewStatus `json:"status"`
		Name       string       `json:"name"`
		Email      string       `json:"email"`
		Role       string       `json:"role"`
		Company    string       `json:"company"`
		LinkedIn   string       `json:"linkedin,omitempty"`
		GitHub     string       `json:"github,omitempty"`
		Website    string       `json:"website,omitempty"`
		Bio        string       `json:"bio"`
		Philosophy string       `json:"philosophy,omitempty"`
		Format     EventFormat  `json:"format,omitempty"`
		Expertise  []string     `json:"expertise"`
		Mentoring  bool         `json:"mentoring"`
	}

	HackathonView struct {
		CreatedAt     time.Time    `json:"createdAt"`
		StartDate     time.Time    `json:"startDate"`
		EndDate       time.Time    `json:"endDate"`
		ID            string       `json:"id"`
		Status        ReviewStatus `json:"status"`
		OrganizerName string       `json:"organizerName"`
		// Only shown to admins
		OrganizerEmail   string      `json:"organizerEmail,omitempty"`
		Organization     string      `json:"organization"`
		Name             string      `json:"name"`
		Description      string      `json:"description"`
		Website          string      `json:"website,omitempty"`
		Platform         EventFormat `json:"platform"`
		Theme            string      `json:"theme,omitempty"`
		TimeCommitment   string      `json:"timeCommitment,omitempty"`
		Deliverables     string      `json:"deliverables,omitempty"`
		Domains          []string    `json:"domains"`
		ParticipantCount int         `json:"participantCount"`
		JudgesNeeded     int         `json:"judgesNeeded"`
	}

	InvitationView struct {
		CreatedAt   time.Time      `json:"createdAt"`
		ID          string         `json:"id"`
		JudgeID     string         `json:"judgeId"`
		HackathonID string         `json:"hackathonId"`
		Status      ResponseStatus `json:"status"`
		Message     string         `json:"message,omitempty"`
		EmailSent   bool           `json:"emailSent"`
	}

	InterestView struct {
		CreatedAt   time.Time      `json:"createdAt"`
		ID          string         `json:"id"`
		JudgeID     string         `json:"judgeId"`
		HackathonID string         `json:"hackathonId"`
		Status      ResponseStatus `json:"status"`
		Message     string         `json:"message,omitempty"`
		// Set on the organizer view
		Judge *JudgeView `json:"judge,omitempty"`
	}

	StepView struct {
		At     time.Time  `json:"at"`
		Status StepStatus `json:"status"`
		Error  string     `json:"error,omitempty"`
	}

	ApprovalRunView struct {
		CreatedAt time.Time             `json:"createdAt"`
		UpdatedAt time.Time             `json:"updatedAt"`
		ID        string                `json:"id"`
		Kind      ApprovalKind          `json:"kind"`
		State     RunState              `json:"state"`
		SubjectID string                `json:"subjectId"`
		JudgeID   string                `json:"judgeId,omitempty"`
		Steps     map[StepName]StepView `json:"steps"`
	}

	// GeneratedPassword is only ever returned here, it is stored hashed
	ApproveJudgeResponse struct {
		Judge             JudgeView   `json:"judge"`
		GeneratedPassword string      `json:"generatedPassword"`
		SideEffects       SideEffects `json:"sideEffects"`
	}

	ApproveHackathonResponse struct {
		Hackathon         HackathonView `json:"hackathon"`
		GeneratedPassword string        `json:"generatedPassword"`
		SideEffects       SideEffects   `json:"sideEffects"`
	}

	RepairResponse struct {
		Run               ApprovalRunView `json:"run"`
		GeneratedPassword string          `json:"generatedPassword"`
		SideEffects       SideEffects     `json:"sideEffects"`
	}

	SessionResponse struct {
		Authenticated bool `json:"authenticated"`
	}
)
