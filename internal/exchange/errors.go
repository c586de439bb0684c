package exchange

import "errors"

var (
	ErrConfig              = errors.New("configuration error")
	ErrUnsupportedVenue    = errors.New("unsupported venue")
	ErrAuthentication      = errors.New("authentication failed")
	ErrMissingWithdrawalID = errors.New("withdrawal response carried no id")
)
