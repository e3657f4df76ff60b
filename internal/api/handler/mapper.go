package handler

import (
	"fmt"

	"github.com/revit/marketplace/internal/core/domain"
)

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Phone:      u.Phone,
		UserType:   u.UserType,
		Profession: u.Profession,
		Experience: u.Experience,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toJobResponse(j *domain.Job) jobResponse {
	history := make([]statusHistoryItemResponse, len(j.StatusHistory))
	for i, h := range j.StatusHistory {
		history[i] = statusHistoryItemResponse{
			Status:    string(h.Status),
			Timestamp: h.Timestamp,
			ActorID:   h.ActorID,
			Notes:     h.Notes,
		}
	}
	self := fmt.Sprintf("/v1/jobs/%s", j.ID)
	return jobResponse{
		ID:               j.ID,
		Title:            j.Title,
		Description:      j.Description,
		Budget:           j.Budget,
		Category:         j.Category,
		Location:         j.Location,
		Status:           string(j.Status),
		ClientID:         j.ClientID,
		ProfessionalID:   j.ProfessionalID,
		ApplicationCount: j.ApplicationCount,
		CreatedAt:        j.CreatedAt,
		UpdatedAt:        j.UpdatedAt,
		StatusHistory:    history,
		Links: jobLinks{
			Self:         self,
			Applications: self + "/applications",
			Activity:     self + "/activity",
		},
	}
}

func toJobListResponse(jobs []*domain.Job) jobListResponse {
	out := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		out[i] = toJobResponse(j)
	}
	return jobListResponse{Jobs: out, Total: len(out)}
}

func toApplicationResponse(a *domain.Application) applicationResponse {
	resp := applicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		ProfessionalID: a.ProfessionalID,
		Applicant: applicantResponse{
			Name:       a.Applicant.Name,
			Email:      a.Applicant.Email,
			Phone:      a.Applicant.Phone,
			Profession: a.Applicant.Profession,
			Experience: a.Applicant.Experience,
		},
		Message:   a.Message,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
	}
	if !a.UpdatedAt.IsZero() {
		updated := a.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

func toApplicationListResponse(apps []*domain.Application) applicationListResponse {
	out := make([]applicationResponse, len(apps))
	for i, a := range apps {
		out[i] = toApplicationResponse(a)
	}
	return applicationListResponse{Applications: out, Total: len(out)}
}

func toActivityListResponse(jobID string, events []*domain.JobEvent) activityListResponse {
	out := make([]activityResponse, len(events))
	for i, e := range events {
		out[i] = activityResponse{
			ID:            e.ID,
			Type:          string(e.Type),
			ActorID:       e.ActorID,
			ApplicationID: e.ApplicationID,
			From:          e.From,
			To:            e.To,
			OccurredAt:    e.OccurredAt,
		}
	}
	return activityListResponse{JobID: jobID, Events: out}
}
