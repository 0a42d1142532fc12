package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/modules/launchpad/usecase"
)

type HttpHandler struct {
	usecase *usecase.Usecase
}

func New(usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
	}
}

const (
	paginationDefaultLimit = 100
	paginationMaxLimit     = 1000
)

type paginationRequest struct {
	Limit  int32 `query:"limit"`
	Offset int32 `query:"offset"`
}

func (req paginationRequest) Validate() error {
	var errList []error
	if req.Limit < 0 {
		errList = append(errList, errors.New("'limit' must be non-negative"))
	}
	if req.Limit > paginationMaxLimit {
		errList = append(errList, errors.Errorf("'limit' must be less than or equal to %d", paginationMaxLimit))
	}
	if req.Offset < 0 {
		errList = append(errList, errors.New("'offset' must be non-negative"))
	}
	return errors.Join(errList...)
}

func (req *paginationRequest) ParseDefault() {
	if req.Limit == 0 {
		req.Limit = paginationDefaultLimit
	}
}

// validateAddress appends an error to errList when value is not a hex address.
func validateAddress(errList []error, field, value string) []error {
	if value == "" {
		return append(errList, errors.Errorf("'%s' is required", field))
	}
	if !common.IsHexAddress(value) {
		return append(errList, errors.Errorf("'%s' is not a valid address", field))
	}
	return errList
}
