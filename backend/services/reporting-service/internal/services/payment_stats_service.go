package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/constants"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	internal_utils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/utils"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatsService derives collection and delinquency metrics. Every store
// failure is returned to the caller; this engine never reports a partial or
// empty result in place of an error.
type PaymentStatsService struct {
	buildingRepo repositories.BuildingRepository
	paymentRepo  repositories.PaymentRepository
	now          func() time.Time
}

func NewPaymentStatsService(buildingRepo repositories.BuildingRepository, paymentRepo repositories.PaymentRepository) *PaymentStatsService {
	return &PaymentStatsService{
		buildingRepo: buildingRepo,
		paymentRepo:  paymentRepo,
		now:          utcNow,
	}
}

// adminPayments pulls every payment in the admin's buildings.
func (s *PaymentStatsService) adminPayments(ctx context.Context, adminID uuid.UUID, f repositories.PaymentFilter) ([]*models.PaymentWithPayer, error) {
	_, ids, err := ownedBuildings(ctx, s.buildingRepo, adminID)
	if err != nil {
		return nil, err
	}
	return s.paymentsIn(ctx, ids, f)
}

func (s *PaymentStatsService) paymentsIn(ctx context.Context, buildingIDs []uuid.UUID, f repositories.PaymentFilter) ([]*models.PaymentWithPayer, error) {
	if len(buildingIDs) == 0 {
		return nil, nil
	}
	f.BuildingIDs = buildingIDs
	payments, err := s.paymentRepo.List(ctx, f, repositories.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return payments, nil
}

func (s *PaymentStatsService) GetPaymentStatistics(ctx context.Context, adminID uuid.UUID) (*dtos.PaymentStatistics, error) {
	_, ids, err := ownedBuildings(ctx, s.buildingRepo, adminID)
	if err != nil {
		return nil, err
	}
	stats, err := s.statisticsFor(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("payment statistics for admin %s: %w", adminID, err)
	}
	return &stats, nil
}

func (s *PaymentStatsService) statisticsFor(ctx context.Context, buildingIDs []uuid.UUID) (dtos.PaymentStatistics, error) {
	payments, err := s.paymentsIn(ctx, buildingIDs, repositories.PaymentFilter{})
	if err != nil {
		return dtos.PaymentStatistics{}, err
	}
	return summarizePayments(payments, s.now()), nil
}

func summarizePayments(payments []*models.PaymentWithPayer, now time.Time) dtos.PaymentStatistics {
	var (
		paidAmount, unpaidAmount, penalty  decimal.Decimal
		rent, dues, unpaidRent, unpaidDues decimal.Decimal
		out                                dtos.PaymentStatistics
	)
	loc := internal_utils.BusinessLocation()

	for _, p := range payments {
		out.TotalPaymentCount++
		penalty = penalty.Add(p.Penalty())

		isRent, isDues := p.IsType(models.PaymentTypeRent), p.IsType(models.PaymentTypeDues)
		if isRent {
			rent = rent.Add(p.Amount)
		}
		if isDues {
			dues = dues.Add(p.Amount)
		}

		if p.IsPaid {
			out.PaidPaymentCount++
			paidAmount = paidAmount.Add(p.Amount)
			if p.PaidLate() {
				out.TotalDelayedPayments++
				out.TotalDelayedDays += internal_utils.WholeDaysBetween(p.DueDate, *p.PaymentDate)
				out.TotalDelayedBusinessDays += internal_utils.BusinessDaysLate(p.DueDate, *p.PaymentDate, loc)
			} else {
				out.OnTimePaymentCount++
			}
			continue
		}

		out.UnpaidPaymentCount++
		unpaidAmount = unpaidAmount.Add(p.Amount)
		if p.DueDate.Before(now) {
			out.OverduePaymentCount++
		} else {
			out.PendingPaymentCount++
		}
		if isRent {
			unpaidRent = unpaidRent.Add(p.Amount)
		}
		if isDues {
			unpaidDues = unpaidDues.Add(p.Amount)
		}
	}

	out.TotalPaidAmount = internal_utils.Round2(paidAmount)
	out.TotalUnpaidAmount = internal_utils.Round2(unpaidAmount)
	out.TotalPenaltyAmount = internal_utils.Round2(penalty)
	out.AverageDelayDays = internal_utils.Average(decimal.NewFromInt(int64(out.TotalDelayedDays)), out.TotalDelayedPayments)

	out.OnTimePaymentRate = internal_utils.Percent(out.OnTimePaymentCount, out.TotalPaymentCount)
	out.DelayedPaymentRate = internal_utils.Percent(out.TotalDelayedPayments, out.TotalPaymentCount)
	out.UnpaidPaymentRate = internal_utils.Percent(out.UnpaidPaymentCount, out.TotalPaymentCount)

	out.TotalRentAmount = internal_utils.Round2(rent)
	out.TotalDuesAmount = internal_utils.Round2(dues)
	out.UnpaidRentAmount = internal_utils.Round2(unpaidRent)
	out.UnpaidDuesAmount = internal_utils.Round2(unpaidDues)
	return out
}

type defaulterKey struct {
	userID uuid.UUID
	name   string
}

type defaulterAgg struct {
	debt   decimal.Decimal
	count  int
	delays int
}

// GetTopDefaulters groups unpaid payments by payer and returns the largest
// debts. Delayed days use the stored counter when present, otherwise the
// days the payment is past due.
func (s *PaymentStatsService) GetTopDefaulters(ctx context.Context, adminID uuid.UUID) ([]dtos.Defaulter, error) {
	unpaid := false
	payments, err := s.adminPayments(ctx, adminID, repositories.PaymentFilter{IsPaid: &unpaid})
	if err != nil {
		return nil, err
	}
	now := s.now()

	groups := make(map[defaulterKey]*defaulterAgg)
	for _, p := range payments {
		if p.IsPaid {
			continue
		}
		k := defaulterKey{userID: p.UserID, name: p.PayerName()}
		g, ok := groups[k]
		if !ok {
			g = &defaulterAgg{}
			groups[k] = g
		}
		g.debt = g.debt.Add(p.Amount)
		g.count++
		switch {
		case p.DelayedDays != nil:
			g.delays += *p.DelayedDays
		case p.DueDate.Before(now):
			g.delays += internal_utils.WholeDaysBetween(p.DueDate, now)
		}
	}

	keys := make([]defaulterKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := groups[keys[i]].debt.Cmp(groups[keys[j]].debt); c != 0 {
			return c > 0
		}
		return lessByNameThenID(keys[i].name, keys[j].name, keys[i].userID, keys[j].userID)
	})
	if len(keys) > constants.TopDefaultersLimit {
		keys = keys[:constants.TopDefaultersLimit]
	}

	out := make([]dtos.Defaulter, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		out = append(out, dtos.Defaulter{
			UserID:             k.userID.String(),
			FullName:           k.name,
			TotalDebt:          internal_utils.Round2(g.debt),
			UnpaidPaymentCount: g.count,
			TotalDelayedDays:   g.delays,
		})
	}
	return out, nil
}

type payerKey struct {
	userID      uuid.UUID
	name        string
	apartmentID uuid.UUID
}

type payerAgg struct {
	unit        string
	debt        decimal.Decimal
	unpaidCount int
	paid        decimal.Decimal
	paidCount   int
	onTimeCount int
}

// NormalizeTopN clamps a requested ranking size, substituting the default for
// non-positive values.
func NormalizeTopN(topN int) int {
	if topN <= 0 {
		return constants.DefaultRankingTopN
	}
	if topN > constants.MaxRankingTopN {
		return constants.MaxRankingTopN
	}
	return topN
}

// GetTopDebtorsAndPayers ranks payers per apartment. Debtors are ordered by
// outstanding amount, payers by amount paid. A payer's on-time rate is taken
// over all of the group's payments, unpaid ones included.
func (s *PaymentStatsService) GetTopDebtorsAndPayers(ctx context.Context, adminID uuid.UUID, topN int) (*dtos.PaymentRankings, error) {
	topN = NormalizeTopN(topN)
	payments, err := s.adminPayments(ctx, adminID, repositories.PaymentFilter{})
	if err != nil {
		return nil, err
	}

	groups := make(map[payerKey]*payerAgg)
	for _, p := range payments {
		k := payerKey{userID: p.UserID, name: p.PayerName(), apartmentID: p.ApartmentID}
		g, ok := groups[k]
		if !ok {
			g = &payerAgg{unit: p.UnitNumber}
			groups[k] = g
		}
		if p.IsPaid {
			g.paid = g.paid.Add(p.Amount)
			g.paidCount++
			if !p.PaidLate() {
				g.onTimeCount++
			}
		} else {
			g.debt = g.debt.Add(p.Amount)
			g.unpaidCount++
		}
	}

	var debtorKeys, payerKeys []payerKey
	for k, g := range groups {
		if g.unpaidCount > 0 {
			debtorKeys = append(debtorKeys, k)
		}
		if g.paidCount > 0 {
			payerKeys = append(payerKeys, k)
		}
	}
	rank := func(keys []payerKey, amount func(*payerAgg) decimal.Decimal) []payerKey {
		sort.Slice(keys, func(i, j int) bool {
			if c := amount(groups[keys[i]]).Cmp(amount(groups[keys[j]])); c != 0 {
				return c > 0
			}
			if keys[i].name != keys[j].name {
				return keys[i].name < keys[j].name
			}
			if keys[i].userID != keys[j].userID {
				return keys[i].userID.String() < keys[j].userID.String()
			}
			return keys[i].apartmentID.String() < keys[j].apartmentID.String()
		})
		if len(keys) > topN {
			keys = keys[:topN]
		}
		return keys
	}

	out := &dtos.PaymentRankings{
		TopDebtors: []dtos.RankedDebtor{},
		TopPayers:  []dtos.RankedPayer{},
	}
	for _, k := range rank(debtorKeys, func(g *payerAgg) decimal.Decimal { return g.debt }) {
		g := groups[k]
		out.TopDebtors = append(out.TopDebtors, dtos.RankedDebtor{
			UserID:             k.userID.String(),
			FullName:           k.name,
			ApartmentID:        k.apartmentID.String(),
			UnitNumber:         g.unit,
			TotalDebt:          internal_utils.Round2(g.debt),
			UnpaidPaymentCount: g.unpaidCount,
		})
	}
	for _, k := range rank(payerKeys, func(g *payerAgg) decimal.Decimal { return g.paid }) {
		g := groups[k]
		out.TopPayers = append(out.TopPayers, dtos.RankedPayer{
			UserID:             k.userID.String(),
			FullName:           k.name,
			ApartmentID:        k.apartmentID.String(),
			UnitNumber:         g.unit,
			TotalPaid:          internal_utils.Round2(g.paid),
			PaymentCount:       g.paidCount + g.unpaidCount,
			OnTimePaymentCount: g.onTimeCount,
			OnTimePaymentRate:  internal_utils.Percent(g.onTimeCount, g.paidCount+g.unpaidCount),
		})
	}
	return out, nil
}

type monthAgg struct {
	total, collected decimal.Decimal
	count, paid      int
}

// GetMonthlyCollectionRates buckets payments by due-date month, most recent
// month first.
func (s *PaymentStatsService) GetMonthlyCollectionRates(ctx context.Context, adminID uuid.UUID) ([]dtos.MonthlyCollection, error) {
	payments, err := s.adminPayments(ctx, adminID, repositories.PaymentFilter{})
	if err != nil {
		return nil, err
	}

	buckets := make(map[internal_utils.MonthKey]*monthAgg)
	for _, p := range payments {
		k := internal_utils.MonthOf(p.DueDate)
		b, ok := buckets[k]
		if !ok {
			b = &monthAgg{}
			buckets[k] = b
		}
		b.total = b.total.Add(p.Amount)
		b.count++
		if p.IsPaid {
			b.collected = b.collected.Add(p.Amount)
			b.paid++
		}
	}

	keys := make([]internal_utils.MonthKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[j].Before(keys[i]) })

	out := make([]dtos.MonthlyCollection, 0, len(keys))
	for _, k := range keys {
		b := buckets[k]
		out = append(out, dtos.MonthlyCollection{
			Year:            k.Year,
			Month:           int(k.Month),
			TotalAmount:     internal_utils.Round2(b.total),
			CollectedAmount: internal_utils.Round2(b.collected),
			TotalCount:      b.count,
			PaidCount:       b.paid,
			CollectionRate:  internal_utils.Percent(b.paid, b.count),
		})
	}
	return out, nil
}
