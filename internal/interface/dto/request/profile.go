package request

// AwardBadgeRequest はバッジ付与リクエストです
type AwardBadgeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=64"`
	Icon string `json:"icon" validate:"omitempty,url"`
}
