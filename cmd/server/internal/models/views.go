package models

import "github.com/judgebase/judgebase-api/internal/types"

// Public view of the judge, contact details are left out unless admin is set
func (j *Judge) View(photoURL string, admin bool) types.JudgeView {
	v := types.JudgeView{
		CreatedAt:  j.CreatedAt,
		ID:         j.ID.String(),
		Slug:       j.Slug,
		Status:     j.Status,
		Name:       j.Name,
		Role:       j.Role,
		Company:    j.Company,
		LinkedIn:   j.LinkedIn,
		GitHub:     j.GitHub,
		Website:    j.Website,
		Bio:        j.Bio,
		Philosophy: j.Philosophy,
		Format:     j.Format,
		PhotoURL:   photoURL,
		Expertise:  nonNil(j.Expertise),
		Badges:     nonNil(j.Badges),
		Featured:   j.Featured,
		Mentoring:  j.Mentoring,
	}
	if admin {
		v.Email = j.Email
	}
	return v
}

func (a *JudgeApplication) View() types.ApplicationView {
	return types.ApplicationView{
		CreatedAt:  a.CreatedAt,
		ID:         a.ID.String(),
		Status:     a.Status,
		Name:       a.Name,
		Email:      a.Email,
		Role:       a.Role,
		Company:    a.Company,
		LinkedIn:   a.LinkedIn,
		GitHub:     a.GitHub,
		Website:    a.Website,
		Bio:        a.Bio,
		Philosophy: a.Philosophy,
		Format:     a.Format,
		Expertise:  nonNil(a.Expertise),
		Mentoring:  a.Mentoring,
	}
}

func (h *Hackathon) View(admin bool) types.HackathonView {
	v := types.HackathonView{
		CreatedAt:        h.CreatedAt,
		StartDate:        h.StartDate,
		EndDate:          h.EndDate,
		ID:               h.ID.String(),
		Status:           h.Status,
		OrganizerName:    h.OrganizerName,
		Organization:     h.Organization,
		Name:             h.Name,
		Description:      h.Description,
		Website:          h.Website,
		Platform:         h.Platform,
		Theme:            h.Theme,
		TimeCommitment:   h.TimeCommitment,
		Deliverables:     h.Deliverables,
		Domains:          nonNil(h.Domains),
		ParticipantCount: h.ParticipantCount,
		JudgesNeeded:     h.JudgesNeeded,
	}
	if admin {
		v.OrganizerEmail = h.OrganizerEmail
	}
	return v
}

func (i *Invitation) View() types.InvitationView {
	return types.InvitationView{
		CreatedAt:   i.CreatedAt,
		ID:          i.ID.String(),
		JudgeID:     i.JudgeID.String(),
		HackathonID: i.HackathonID.String(),
		Status:      i.Status,
		Message:     i.Message,
		EmailSent:   i.EmailSent,
	}
}

func (i *JudgingInterest) View() types.InterestView {
	return types.InterestView{
		CreatedAt:   i.CreatedAt,
		ID:          i.ID.String(),
		JudgeID:     i.JudgeID.String(),
		HackathonID: i.HackathonID.String(),
		Status:      i.Status,
		Message:     i.Message,
	}
}

func (r *ApprovalRun) View() types.ApprovalRunView {
	v := types.ApprovalRunView{
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		ID:        r.ID.String(),
		Kind:      r.Kind,
		State:     r.State,
		SubjectID: r.SubjectID.String(),
		Steps:     make(map[types.StepName]types.StepView, len(r.Steps)),
	}
	if r.JudgeID != nil {
		v.JudgeID = r.JudgeID.String()
	}
	for step, rec := range r.Steps {
		v.Steps[step] = types.StepView{At: rec.At, Status: rec.Status, Error: rec.Error}
	}
	return v
}
