package calculator

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"credit-conveyor/internal/config"
	"credit-conveyor/internal/domain/client"
	"credit-conveyor/internal/domain/credit"
)

// Usecase prices loans and scores applicants. It is pure and stateless:
// every method is safe to call concurrently without synchronization.
type Usecase struct {
	rates config.Rates
	log   *logrus.Logger
}

func NewUsecase(rates config.Rates, log *logrus.Logger) *Usecase {
	return &Usecase{rates: rates, log: log}
}

// GetOffers prices the four insurance/payroll combinations for one request
// and returns them sorted by descending yearly rate. The generation order is
// fixed so that equal-rate ties stay deterministic.
func (u *Usecase) GetOffers(ctx context.Context, req LoanRequest) ([]credit.Offer, error) {
	offers := []credit.Offer{
		u.buildOffer(req, false, false),
		u.buildOffer(req, false, true),
		u.buildOffer(req, true, false),
		u.buildOffer(req, true, true),
	}

	sort.SliceStable(offers, func(i, j int) bool {
		return offers[i].Rate.GreaterThan(offers[j].Rate)
	})

	u.log.WithField("amount", req.Amount).Info("created four loan offers")
	return offers, nil
}

// CheckEligibility runs the ordered hard checks. The first failing check is
// reported as a DeniedError; subsequent checks are not evaluated.
func (u *Usecase) CheckEligibility(ctx context.Context, data ScoringData) error {
	if data.Employment.Status == client.EmploymentNotEmployed {
		return &DeniedError{Reason: "Must be employed to get a loan."}
	}
	if data.Employment.WorkExperienceTotal < 18 {
		return &DeniedError{Reason: "Must be working over 18 months in total to get a loan."}
	}
	if data.Employment.WorkExperienceCurrent < 3 {
		return &DeniedError{Reason: "Must be working at a current job at least for full 3 months."}
	}

	age := yearsBetween(data.BirthDate, time.Now())
	if age < 20 {
		return &DeniedError{Reason: "Must be at least 20 years old to get a loan."}
	}
	if age > 65 {
		return &DeniedError{Reason: "Must be at most 65 years old to get a loan."}
	}

	maxAmount := data.Employment.Salary.Mul(decimal.NewFromInt(24))
	if data.Amount.GreaterThan(maxAmount) {
		return &DeniedError{
			Reason: "The requested amount must be at most " + maxAmount.RoundBank(1).StringFixed(1),
		}
	}
	return nil
}

// Calculate is the full scoring step: eligibility gate first, then the
// binding credit calculation.
func (u *Usecase) Calculate(ctx context.Context, data ScoringData) (*credit.Credit, error) {
	if err := u.CheckEligibility(ctx, data); err != nil {
		return nil, err
	}
	return u.GetCredit(ctx, data)
}

// GetCredit produces the binding terms: adjusted rate, annuity payment, PSK
// and the full payment schedule. PSK is monthlyPayment multiplied by the
// term; it can diverge from the schedule's summed rows by a cent and is kept
// that way as an accepted approximation, not re-derived.
func (u *Usecase) GetCredit(ctx context.Context, data ScoringData) (*credit.Credit, error) {
	rate := u.flagRate(data.InsuranceEnabled, data.SalaryClient)

	insurancePayment := decimal.Zero
	if data.InsuranceEnabled {
		if data.SalaryClient {
			insurancePayment = data.Amount.Mul(u.rates.ClientInsuranceRate)
		} else {
			insurancePayment = data.Amount.Mul(u.rates.InsuranceRate)
		}
	}

	adjustment, err := u.rateAdjustment(data)
	if err != nil {
		return nil, err
	}
	adjustedRate := rate.Add(adjustment)

	monthlyRate := divHalfEven(adjustedRate, twelve, calcScale)
	amountWithInsurance := data.Amount.Add(insurancePayment)
	monthlyPayment := u.monthlyPayment(monthlyRate, amountWithInsurance, data.Term)
	psk := monthlyPayment.Mul(decimal.NewFromInt(int64(data.Term)))

	u.log.WithFields(logrus.Fields{
		"rate":            adjustedRate.RoundBank(2),
		"monthly_payment": monthlyPayment.RoundBank(2),
		"psk":             psk.RoundBank(2),
	}).Info("calculated credit terms")

	schedule := u.buildSchedule(amountWithInsurance, monthlyRate, monthlyPayment, data.Term)

	return &credit.Credit{
		Amount:           data.Amount.RoundBank(2),
		Term:             data.Term,
		MonthlyPayment:   monthlyPayment.RoundBank(2),
		Rate:             adjustedRate,
		PSK:              psk.RoundBank(2),
		InsuranceEnabled: data.InsuranceEnabled,
		SalaryClient:     data.SalaryClient,
		Schedule:         schedule,
		Status:           credit.StatusCalculated,
	}, nil
}

// flagRate applies the insurance and payroll-client decrements to the base
// rate.
func (u *Usecase) flagRate(insured, salaryClient bool) decimal.Decimal {
	rate := u.rates.BaseRate
	if insured {
		rate = rate.Sub(u.rates.InsuranceRateDecrement)
	}
	if salaryClient {
		rate = rate.Sub(u.rates.PayrollRateDecrement)
	}
	return rate
}

// rateAdjustment sums the independent scoring rules. A missing position is a
// denial, not a silent zero.
func (u *Usecase) rateAdjustment(data ScoringData) (decimal.Decimal, error) {
	if data.Employment.Position == "" {
		return decimal.Decimal{}, &DeniedError{Reason: "Employment position must be provided."}
	}

	adjustment := decimal.Zero

	switch data.Employment.Status {
	case client.EmploymentSelfEmployed:
		adjustment = adjustment.Add(dec("0.02"))
	case client.EmploymentEmployer:
		adjustment = adjustment.Add(dec("0.01"))
	}

	switch data.Employment.Position {
	case client.PositionJunior:
		adjustment = adjustment.Add(dec("0.01"))
	case client.PositionSenior:
		adjustment = adjustment.Sub(dec("0.01"))
	case client.PositionTeamLead:
		adjustment = adjustment.Sub(dec("0.02"))
	case client.PositionTopManager:
		adjustment = adjustment.Sub(dec("0.03"))
	}

	switch data.MaritalStatus {
	case client.MaritalMarried:
		adjustment = adjustment.Sub(dec("0.03"))
	case client.MaritalDivorced:
		adjustment = adjustment.Add(dec("0.01"))
	}

	age := yearsBetween(data.BirthDate, time.Now())
	if (data.Gender == client.GenderFemale && age >= 32 && age <= 60) ||
		(data.Gender == client.GenderMale && age >= 30 && age <= 55) {
		adjustment = adjustment.Sub(dec("0.03"))
	}

	return adjustment, nil
}

// monthlyPayment computes the annuity payment
// amount * monthlyRate / (1 - (1+monthlyRate)^-term) at the working scale.
func (u *Usecase) monthlyPayment(monthlyRate, amount decimal.Decimal, term int) decimal.Decimal {
	dividend := amount.Mul(monthlyRate)
	power := one.Add(monthlyRate).Pow(decimal.NewFromInt(int64(term)))
	divisor := one.Sub(divHalfEven(one, power, calcScale))
	return divHalfEven(dividend, divisor, calcScale)
}

// buildSchedule walks the term month by month keeping full precision in the
// accumulators and rounding only the presented row values (half up). The last
// row's remaining debt is clamped to zero when the naive balance would go
// non-positive; a small positive residual is carried as-is.
func (u *Usecase) buildSchedule(amount, monthlyRate, monthlyPayment decimal.Decimal, term int) []credit.ScheduleEntry {
	paymentDate := time.Now().UTC().AddDate(0, 1, 0)
	remainingDebt := amount

	schedule := make([]credit.ScheduleEntry, 0, term)

	for number := 1; number < term; number++ {
		interestPayment := remainingDebt.Mul(monthlyRate)
		debtPayment := monthlyPayment.Sub(interestPayment)
		remainingDebt = remainingDebt.Sub(debtPayment)

		schedule = append(schedule, credit.ScheduleEntry{
			Number:          number,
			Date:            paymentDate,
			TotalPayment:    monthlyPayment.Round(2),
			InterestPayment: interestPayment.Round(2),
			DebtPayment:     debtPayment.Round(2),
			RemainingDebt:   remainingDebt.Round(2),
		})
		paymentDate = paymentDate.AddDate(0, 1, 0)
	}

	interestPayment := remainingDebt.Mul(monthlyRate)
	debtPayment := monthlyPayment.Sub(interestPayment)
	if remainingDebt.Sub(debtPayment).LessThanOrEqual(decimal.Zero) {
		remainingDebt = decimal.Zero
	} else {
		remainingDebt = remainingDebt.Sub(debtPayment)
	}

	return append(schedule, credit.ScheduleEntry{
		Number:          term,
		Date:            paymentDate,
		TotalPayment:    monthlyPayment.Round(2),
		InterestPayment: interestPayment.Round(2),
		DebtPayment:     debtPayment.Round(2),
		RemainingDebt:   remainingDebt.Round(2),
	})
}

// buildOffer prices one insurance/payroll combination. The requested amount
// is disclosed unmodified; insurance only raises the amortized principal.
func (u *Usecase) buildOffer(req LoanRequest, insured, salaryClient bool) credit.Offer {
	rate := u.flagRate(insured, salaryClient)

	insurancePayment := decimal.Zero
	if insured {
		if salaryClient {
			insurancePayment = req.Amount.Mul(u.rates.ClientInsuranceRate)
		} else {
			insurancePayment = req.Amount.Mul(u.rates.InsuranceRate)
		}
	}
	insuredAmount := req.Amount.Add(insurancePayment)

	monthlyRate := divHalfEven(rate, twelve, calcScale)
	monthlyPayment := u.monthlyPayment(monthlyRate, insuredAmount, req.Term)
	totalAmount := monthlyPayment.Mul(decimal.NewFromInt(int64(req.Term)))

	return credit.Offer{
		RequestedAmount:  req.Amount.RoundBank(2),
		TotalAmount:      totalAmount.RoundBank(2),
		Term:             req.Term,
		MonthlyPayment:   monthlyPayment.RoundBank(2),
		Rate:             rate,
		InsuranceEnabled: insured,
		SalaryClient:     salaryClient,
	}
}
