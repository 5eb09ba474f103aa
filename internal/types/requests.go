package types

type (
	JudgeApplicationSubmission struct {
		Name  string `json:"name"       validate:"required,notblank,max=200"`
		Email string `json:"email"      validate:"required,email"`
		// Current job title
		Role     string `json:"role"       validate:"required,notblank"`
		Company  string `json:"company"`
		LinkedIn string `json:"linkedin"   validate:"omitempty,url"`
		GitHub   string `json:"github"     validate:"omitempty,url"`
		Website  string `json:"website"    validate:"omitempty,url"`
		// Areas the applicant is comfortable judging, e.g. "AI/ML"
		Expertise  []string `json:"expertise"  validate:"required,min=1,dive,required,notblank"`
		Bio        string   `json:"bio"        validate:"required,notblank,max=5000"`
		Philosophy string   `json:"philosophy" validate:"max=5000"`
		// Whether the applicant is willing to mentor teams as well
		Mentoring bool        `json:"mentoring"`
		Format    EventFormat `json:"format"     validate:"omitempty,oneof=in_person virtual hybrid"`
	}

	HackathonSubmission struct {
		OrganizerName  string `json:"organizerName"    validate:"required,notblank"`
		OrganizerEmail string `json:"organizerEmail"   validate:"required,email"`
		Organization   string `json:"organization"`
		Name           string `json:"name"             validate:"required,notblank,max=200"`
		Description    string `json:"description"      validate:"required,notblank"`
		Website        string `json:"website"          validate:"omitempty,url"`
		// RFC 3339 dates
		StartDate        string      `json:"startDate"        validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
		EndDate          string      `json:"endDate"          validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
		Platform         EventFormat `json:"platform"         validate:"required,oneof=in_person virtual hybrid"`
		Theme            string      `json:"theme"`
		Domains          []string    `json:"domains"          validate:"dive,required"`
		ParticipantCount int         `json:"participantCount" validate:"gte=0"`
		JudgesNeeded     int         `json:"judgesNeeded"     validate:"gte=1"`
		TimeCommitment   string      `json:"timeCommitment"`
		Deliverables     string      `json:"deliverables"`
	}

	ApproveJudgeRequest struct {
		Featured bool     `json:"featured"`
		Badges   []string `json:"badges"   validate:"dive,required,notblank"`
	}

	InviteJudgesRequest struct {
		JudgeIDs []string `json:"judgeIds" validate:"required,min=1,dive,required"`
		// Optional note from the admin included in the email
		Message string `json:"message"  validate:"max=2000"`
	}

	ExpressInterestRequest struct {
		HackathonID string `json:"hackathonId" validate:"required,uuid"`
		Message     string `json:"message"     validate:"max=2000"`
	}

	ResponseStatusRequest struct {
		Status ResponseStatus `json:"status" validate:"required,oneof=accepted rejected"`
	}

	// Partial update, only fields present in the payload are applied and
	// validated
	JudgeUpdateRequest struct {
		Name       Optional[string]       `json:"name"       validate:"omitempty,notblank,max=200"`
		Role       Optional[string]       `json:"role"       validate:"omitempty,notblank"`
		Company    Optional[string]       `json:"company"`
		Bio        Optional[string]       `json:"bio"        validate:"omitempty,notblank,max=5000"`
		Philosophy Optional[string]       `json:"philosophy" validate:"omitempty,max=5000"`
		Expertise  Optional[[]string]     `json:"expertise"  validate:"omitempty,min=1,dive,required,notblank"`
		Featured   Optional[bool]         `json:"featured"`
		Badges     Optional[[]string]     `json:"badges"     validate:"omitempty,dive,required,notblank"`
		Status     Optional[ReviewStatus] `json:"status"     validate:"omitempty,oneof=pending approved rejected"`
	}

	PhotoUpload struct {
		// Base64 encoded image, at most 2mb decoded
		Photo       string `json:"photo"       validate:"required,base64"`
		ContentType string `json:"contentType" validate:"required,oneof=image/png image/jpeg image/webp"`
	}

	LoginRequest struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	AdminLoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
)
