package response

// BatchReportResponse is returned by the manually triggered billing runs.
type BatchReportResponse struct {
	Processed int `json:"processed"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}
