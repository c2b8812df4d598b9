package response

// ErrResp is the standard error body: {"error": "..."}.
type ErrResp struct {
	Error string `json:"error"`
}

// OKResp is the standard acknowledgement body for write endpoints.
type OKResp struct {
	OK      bool `json:"ok"`
	Deleted *int `json:"deleted,omitempty"`
}
