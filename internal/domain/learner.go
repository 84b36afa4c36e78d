package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ReturnModel is the income-share arrangement chosen for a funding request
// or an individual investment.
type ReturnModel string

const (
	ModelIncomeShare  ReturnModel = "ISA"
	ModelRevenueShare ReturnModel = "Revenue"
	ModelSuccessBonus ReturnModel = "Bonus"
	ModelHybrid       ReturnModel = "Hybrid"
)

// ParseReturnModel validates a wire value against the known return models.
func ParseReturnModel(value string) (ReturnModel, error) {
	switch ReturnModel(value) {
	case ModelIncomeShare, ModelRevenueShare, ModelSuccessBonus, ModelHybrid:
		return ReturnModel(value), nil
	}
	return "", fmt.Errorf("%w: unknown return model %q", ErrValidation, value)
}

// Learner is a funding request published by a learner. RequestedFunding is
// fixed at application time; FundedAmount is mutated only through the
// funding ledger and never exceeds RequestedFunding.
type Learner struct {
	ID                 string
	UserID             string
	Name               string
	Age                int
	Skills             []string
	FieldOfStudy       string
	ProjectDescription string
	InvestmentTerms    string
	RequestedFunding   decimal.Decimal
	FundedAmount       decimal.Decimal
	ReturnModel        ReturnModel
	PaymentSetupDone   bool
	CreatedAt          time.Time
}
