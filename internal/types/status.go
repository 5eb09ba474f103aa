package types

// Review state of a judge application, judge or hackathon
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewStatusPending, ReviewStatusApproved, ReviewStatusRejected:
		return true
	default:
		return false
	}
}

// Answer state of an invitation or a judging interest
type ResponseStatus string

const (
	ResponseStatusPending  ResponseStatus = "pending"
	ResponseStatusAccepted ResponseStatus = "accepted"
	ResponseStatusRejected ResponseStatus = "rejected"
)

func (s ResponseStatus) Terminal() bool {
	return s == ResponseStatusAccepted || s == ResponseStatusRejected
}

type EventFormat string

const (
	EventFormatInPerson EventFormat = "in_person"
	EventFormatVirtual  EventFormat = "virtual"
	EventFormatHybrid   EventFormat = "hybrid"
)

// What an approval run is approving
type ApprovalKind string

const (
	ApprovalKindJudgeApplication ApprovalKind = "judge_application"
	ApprovalKindHackathon        ApprovalKind = "hackathon"
)

type RunState string

const (
	RunStateRunning   RunState = "running"   // steps still executing or process died mid run
	RunStateCompleted RunState = "completed" // every step succeeded
	RunStatePartial   RunState = "partial"   // record written but at least one side effect failed
	RunStateAbandoned RunState = "abandoned" // record never written, the subject is still pending
)

type StepName string

const (
	StepCredentialGenerated StepName = "credential_generated"
	StepAuthCreated         StepName = "auth_created"
	StepRecordWritten       StepName = "record_written"
	StepNotified            StepName = "notified"
	StepIndexed             StepName = "indexed"
)

type StepStatus string

const (
	StepStatusDone    StepStatus = "done"
	StepStatusFailed  StepStatus = "failed"
	StepStatusSkipped StepStatus = "skipped" // collaborator not configured
)
