package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/enums"
)

// Donation is the canonical ledger row for one checkout attempt. Reference is
// the gateway-assigned join key; it is the only way a gateway event can be
// matched back to a local record.
type Donation struct {
	ID                   uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Reference            string               `gorm:"column:reference;not null;uniqueIndex" json:"reference"`
	Status               enums.DonationStatus `gorm:"column:status;type:donation_status;not null;default:'pending'" json:"status"`
	Amount               int64                `gorm:"column:amount;not null" json:"amount"`
	Fee                  int64                `gorm:"column:fee;not null;default:0" json:"fee"`
	Currency             string               `gorm:"column:currency;not null;default:'NGN'" json:"currency"`
	DonorName            *string              `gorm:"column:donor_name" json:"donorName,omitempty"`
	DonorEmail           *string              `gorm:"column:donor_email" json:"donorEmail,omitempty"`
	ProjectTitle         *string              `gorm:"column:project_title" json:"projectTitle,omitempty"`
	FundTitle            *string              `gorm:"column:fund_title" json:"fundTitle,omitempty"`
	Gateway              string               `gorm:"column:gateway;not null;default:'paystack'" json:"gateway"`
	GatewayTransactionID *string              `gorm:"column:gateway_transaction_id" json:"gatewayTransactionId,omitempty"`
	PaidAt               *time.Time           `gorm:"column:paid_at" json:"paidAt,omitempty"`
	CreatedAt            time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt            time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
