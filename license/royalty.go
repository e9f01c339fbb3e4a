package license

import (
	"fmt"

	"github.com/coiporg/libcoip-go/ownership"
)

// ReportUsage records licensee-reported usage and revenue against the
// license. The usage cap, when set, is enforced; the cumulative reported
// revenue feeds the royalty calculation.
func (r *Registry) ReportUsage(caller ownership.Address, id string, revenueAmount, usageCount uint64, now int64) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if caller != lic.Licensee {
		return fmt.Errorf("%w: %s", ErrNotLicensee, caller)
	}
	status, err := r.Status(id, now)
	if err != nil {
		return err
	}
	if status != StatusActive {
		return fmt.Errorf("%w: status %s", ErrNotActive, status)
	}

	terms := r.terms[id]
	if terms.UsageCap > 0 && terms.UsageCount+usageCount > terms.UsageCap {
		return fmt.Errorf("%w: cap %d, would reach %d", ErrUsageCapExceeded, terms.UsageCap, terms.UsageCount+usageCount)
	}
	terms.UsageCount += usageCount
	r.royalties[id].TotalReported += revenueAmount
	return nil
}

// PayRoyalties pulls amount of the license's currency from the licensee and
// routes it pro-rata to the asset's owners, then advances the schedule.
func (r *Registry) PayRoyalties(caller ownership.Address, id string, amount uint64, now int64) error {
	lic, ok := r.licenses[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if caller != lic.Licensee {
		return fmt.Errorf("%w: %s", ErrNotLicensee, caller)
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	schedule, ok := r.royalties[id]
	if !ok {
		return ErrNotActive
	}

	pay, err := r.payments.Ledger(lic.Currency)
	if err != nil {
		return err
	}
	if err := pay.TransferFrom(lic.Licensee, amount); err != nil {
		return err
	}
	if err := r.pool.RouteFee(lic.Asset, lic.Currency, amount); err != nil {
		return err
	}

	schedule.TotalPaid += amount
	schedule.NextDue = now + schedule.PaymentInterval
	return nil
}

// DueRoyalties computes the outstanding royalty balance:
//
//	max(0, floor(totalReported * rateBps / 10000) - totalPaid)
func (r *Registry) DueRoyalties(id string) (uint64, error) {
	lic, ok := r.licenses[id]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	schedule, ok := r.royalties[id]
	if !ok {
		return 0, nil
	}
	owed := schedule.TotalReported * lic.RoyaltyRateBps / 10000
	if owed <= schedule.TotalPaid {
		return 0, nil
	}
	return owed - schedule.TotalPaid, nil
}

// GetRoyaltySchedule returns a copy of the license's royalty schedule.
func (r *Registry) GetRoyaltySchedule(id string) (RoyaltySchedule, error) {
	s, ok := r.royalties[id]
	if !ok {
		return RoyaltySchedule{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *s, nil
}
