package aws

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/dcm-project/compute-provisioner/internal/compute"
)

// unavailableCodes are EC2 error codes meaning the account cannot be used
// with the configured credentials.
var unavailableCodes = map[string]bool{
	"AuthFailure":           true,
	"UnauthorizedOperation": true,
	"InvalidClientTokenId":  true,
	"SignatureDoesNotMatch": true,
	"RequestExpired":        true,
	"OptInRequired":         true,
}

// classify marks transport and credential failures as backend unavailability.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var sendErr *smithyhttp.RequestSendError
	if errors.As(err, &sendErr) {
		return fmt.Errorf("%w: %w", compute.ErrBackendUnavailable, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && unavailableCodes[apiErr.ErrorCode()] {
		return fmt.Errorf("%w: %w", compute.ErrBackendUnavailable, err)
	}
	return err
}
