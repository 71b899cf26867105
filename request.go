package pagelens

import (
	"net/url"
	"strings"
)

// AnalysisRequest is a user submission of a page to analyze.
type AnalysisRequest struct {
	URL string `json:"url"`
}

// Validate returns EINVALID if the URL is empty or is not an absolute
// http(s) URL. On success the URL is trimmed in place.
func (r *AnalysisRequest) Validate() error {
	raw := strings.TrimSpace(r.URL)
	if raw == "" {
		return Errorf(EINVALID, MsgInvalidURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return WrapError(EINVALID, MsgInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, MsgInvalidURL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, MsgInvalidURL)
	}

	r.URL = raw
	return nil
}
