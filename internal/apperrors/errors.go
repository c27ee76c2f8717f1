package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrPurchaseNotFound indicates that a purchase lot with the given ID does not exist.
	ErrPurchaseNotFound = errors.New("purchase not found")

	// ErrDepositNotFound indicates that a fixed deposit with the given ID does not exist.
	ErrDepositNotFound = errors.New("fixed deposit not found")

	// ErrAmbiguousID indicates that an ID prefix matches more than one record.
	ErrAmbiguousID = errors.New("ambiguous ID prefix")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrFundInUse indicates that a fund cannot be deleted because purchases reference it.
	ErrFundInUse = errors.New("fund has purchases")

	// ErrInvalidFilter indicates that more than one lot filter was supplied.
	ErrInvalidFilter = errors.New("only one of type, exclude type, fund and exclude fund may be given")

	// ErrInvalidAmount indicates that an amount or NAV is missing, malformed or not positive.
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// ErrInvalidDate indicates that a date parameter is missing or not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")

	// ErrUnknownQuoteSource indicates a quote source name that is not configured.
	ErrUnknownQuoteSource = errors.New("unknown quote source")

	// ErrSnapshotSourceNotRefreshable indicates a NAV refresh asked to read the
	// stored snapshots it is meant to write.
	ErrSnapshotSourceNotRefreshable = errors.New("stored snapshots cannot be refreshed from themselves")

	ErrEmptyID = errors.New("ID cannot be empty")
)

// Upstream errors represent quote sources that answered without a usable NAV.
var (
	// ErrNAVNotFound indicates a page or feed that did not carry a NAV for the fund
	// on or before the requested date.
	ErrNAVNotFound = errors.New("nav not found")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveFunds   = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveStatus  = errors.New("failed to compute portfolio status")
	ErrFailedToRetrieveNavs    = errors.New("failed to retrieve nav snapshots")
	ErrFailedToUpdateNavs      = errors.New("failed to update nav snapshots")
	ErrFailedToGetVersionInfo  = errors.New("failed to get version information")
	ErrFailedToGetDistribution = errors.New("failed to compute distribution")
)
