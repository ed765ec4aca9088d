package gcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// checkResponse turns a failed call into an error. Transport failures,
// rejected credentials, throttling and server errors wrap
// compute.ErrBackendUnavailable.
func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%w: %w", compute.ErrBackendUnavailable, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := fmt.Errorf("GCE returned %s: %s", resp.Status(), errorMessage(resp))
	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized, code == http.StatusForbidden,
		code == http.StatusTooManyRequests, code >= 500:
		return fmt.Errorf("%w: %w", compute.ErrBackendUnavailable, apiErr)
	}
	return apiErr
}

func errorMessage(resp *resty.Response) string {
	if body, ok := resp.Error().(*errorResponse); ok && body.Error.Message != "" {
		return body.Error.Message
	}
	return resp.String()
}
