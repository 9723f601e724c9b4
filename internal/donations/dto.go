package donations

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db/models"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
)

// CreateIntentInput is the payload recorded when a donor starts checkout.
type CreateIntentInput struct {
	Amount       int64
	Currency     string
	DonorName    *string
	DonorEmail   *string
	ProjectTitle *string
	FundTitle    *string
}

// GatewayResult is the normalized outcome of one gateway notification,
// whether it arrived by webhook or by an explicit verify call.
type GatewayResult struct {
	Reference     string
	Succeeded     bool
	Amount        int64
	Fees          int64
	TransactionID string
	PaidAt        *time.Time
}

// TransitionOutcome reports what the reconciliation write actually did.
type TransitionOutcome struct {
	Found     bool
	Applied   bool
	Duplicate bool
	Donation  *models.Donation
}

// VerifyOutcome is returned to the donor-facing verify endpoint.
type VerifyOutcome struct {
	Status   string           `json:"status"`
	Donation *models.Donation `json:"donation,omitempty"`
}

// ListFilters describe the inputs supported by the admin donations list.
type ListFilters struct {
	Status   *enums.DonationStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Query    string
}

// ListParams bundle pagination and filters for the admin list.
type ListParams struct {
	Limit   int
	Cursor  string
	Filters ListFilters
}

// ListResult wraps the paginated donations plus the next page cursor.
type ListResult struct {
	Donations  []models.Donation `json:"donations"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// Stats aggregates the reconciled ledger for the admin dashboard. Monetary
// totals are reported in major units (naira) as decimal strings.
type Stats struct {
	TotalCount   int64           `json:"total_count"`
	SuccessCount int64           `json:"success_count"`
	PendingCount int64           `json:"pending_count"`
	FailedCount  int64           `json:"failed_count"`
	GrossRaised  decimal.Decimal `json:"gross_raised"`
	TotalFees    decimal.Decimal `json:"total_fees"`
	NetRaised    decimal.Decimal `json:"net_raised"`
}
