package plugins

import (
	"net/http"

	"github.com/voyago/tripdesk/log"
)

// Do issues an HTTP request with one immediate retry on transient transport
// failures. Requests whose context is already canceled are not retried.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err == nil {
		return resp, nil
	}
	if !Transient(err) || req.Context().Err() != nil {
		return nil, err
	}

	log.Warnf(req.Context(), "retrying %s %s after transient error: %v", req.Method, req.URL.Host, err)
	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, err
		}
		retry.Body = body
	}
	return client.Do(retry)
}
