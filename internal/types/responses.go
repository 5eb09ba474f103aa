package types

type (
	// Outcome of each best-effort step of an approval, keyed by step name
	SideEffects map[StepName]StepStatus

	InviteResponse struct {
		SuccessCount int `json:"successCount"`
		FailedCount  int `json:"failedCount"`
	}

	AuthResponse struct {
		Authenticated bool `json:"authenticated"`
		// Bearer token for the judge or organizer portal
		Token string `json:"token,omitempty"`
	}

	PhotoResponse struct {
		Key string `json:"key"`
		URL string `json:"url"`
	}

	StatsResponse struct {
		PendingApplications int64 `json:"pendingApplications"`
		ApprovedJudges      int64 `json:"approvedJudges"`
		FeaturedJudges      int64 `json:"featuredJudges"`
		PendingHackathons   int64 `json:"pendingHackathons"`
		ApprovedHackathons  int64 `json:"approvedHackathons"`
		PendingInvitations  int64 `json:"pendingInvitations"`
		IncompleteApprovals int64 `json:"incompleteApprovals"`
	}
)
