package dto

type ReviewRequest struct {
	TargetID string    `json:"targetId" validate:"required"`
	Rating   FlexFloat `json:"rating"`
	Comment  string    `json:"comment" validate:"max=2000"`
}

// ReviewUpdateRequest keeps the stored value for an omitted field.
type ReviewUpdateRequest struct {
	TargetID string     `json:"targetId" validate:"required"`
	Rating   *FlexFloat `json:"rating"`
	Comment  *string    `json:"comment" validate:"omitempty,max=2000"`
}
