package dtos

type ParseReportRequest struct {
	FileUrl string `json:"file_url" validate:"required_without=Url"`
	Url     string `json:"url" validate:"required_without=FileUrl"`
}

// Target prefers file_url over the url alias.
func (r *ParseReportRequest) Target() string {
	if r.FileUrl != "" {
		return r.FileUrl
	}
	return r.Url
}
