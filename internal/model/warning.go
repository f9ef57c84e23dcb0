package model

import "fmt"

// Warning codes. Warnings are attached to results and surfaced to the
// caller; they are never swallowed and never raised as errors.
const (
	WarnWideRange      = "wide_range"
	WarnTvlMismatch    = "tvl_mismatch"
	WarnImplausibleApr = "implausible_apr"
	WarnPriceOutOfBand = "price_out_of_band"
)

// Warning is a data-quality annotation on a valuation or analytics result.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewWarning(code, format string, args ...interface{}) Warning {
	return Warning{Code: code, Message: fmt.Sprintf(format, args...)}
}
