package settings

type GetInfoResponse struct {
	SchoolName   *string `json:"school_name"`
	DefaultStart *string `json:"default_start"`
	DefaultEnd   *string `json:"default_end"`
}

type UpdateRequest struct {
	SchoolName   *string `json:"school_name" form:"school_name"`
	DefaultStart *string `json:"default_start" form:"default_start"` // "15:04"
	DefaultEnd   *string `json:"default_end" form:"default_end"`
}
