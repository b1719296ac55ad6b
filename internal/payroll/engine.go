package payroll

import (
	"fmt"
	"math"

	"go-shien/internal/attendance"
	"go-shien/internal/wagerule"
	"go-shien/internal/worklog"
)

// defaultDayMinutes is assumed for an attended day that has neither recorded
// actual minutes nor a usable check-in/check-out pair.
const defaultDayMinutes = 480

// LineResult is the outcome of computing one client's line. A nil result
// means the client had no attended days in the period and gets no line.
type LineResult struct {
	WorkDays         int
	TotalMinutes     int
	BaseAmount       int64
	PieceAmount      int64
	DeductionsAmount int64
	NetAmount        int64
	Breakdown        Breakdown
}

// Breakdown is the serialized computation detail stored on each line.
type Breakdown struct {
	RuleID           string            `json:"rule_id,omitempty"`
	RuleName         string            `json:"rule_name,omitempty"`
	CalculationType  string            `json:"calculation_type"`
	HourlyRate       *int64            `json:"hourly_rate,omitempty"`
	DailyRate        *int64            `json:"daily_rate,omitempty"`
	WorkDays         int               `json:"work_days"`
	TotalMinutes     int               `json:"total_minutes"`
	BaseAmount       int64             `json:"base_amount"`
	PieceDetails     []PieceDetail     `json:"piece_details,omitempty"`
	PieceAmount      int64             `json:"piece_amount"`
	DeductionDetails []DeductionDetail `json:"deduction_details,omitempty"`
	DeductionsAmount int64             `json:"deductions_amount"`
	NetAmount        int64             `json:"net_amount"`
}

// PieceDetail records one work log's contribution to the piece amount.
type PieceDetail struct {
	WorkDate  string  `json:"work_date"`
	WorkType  string  `json:"work_type"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Amount    int64   `json:"amount"`
}

// DeductionDetail records one applied deduction, in rule order.
type DeductionDetail struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Rate   float64 `json:"rate,omitempty"`
	Amount int64   `json:"amount"`
}

// ComputeLine turns a client's confirmed attendance, work logs and resolved
// wage rule into one payroll line. rule may be nil (no rule covers the
// period): the line is still produced with all amounts zero so the run
// records that the client attended but could not be priced.
func ComputeLine(rule *wagerule.WageRule, confirmations []attendance.AttendanceConfirmation, logs []worklog.WorkLog) (*LineResult, error) {
	workDays, totalMinutes := tallyAttendance(confirmations)
	if workDays == 0 {
		return nil, nil
	}

	res := &LineResult{
		WorkDays:     workDays,
		TotalMinutes: totalMinutes,
		Breakdown: Breakdown{
			CalculationType: wagerule.CalcNone,
			WorkDays:        workDays,
			TotalMinutes:    totalMinutes,
		},
	}
	if rule == nil {
		return res, nil
	}

	res.Breakdown.RuleID = rule.ID.String()
	res.Breakdown.RuleName = rule.Name
	res.Breakdown.CalculationType = rule.CalculationType
	res.Breakdown.HourlyRate = rule.HourlyRate
	res.Breakdown.DailyRate = rule.DailyRate

	base, piece, err := calculatorFor(rule)
	if err != nil {
		return nil, err
	}

	res.BaseAmount = base(workDays, totalMinutes)
	res.Breakdown.BaseAmount = res.BaseAmount

	if piece {
		rates, err := wagerule.ParsePieceRates(rule.PieceRates)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
		}
		res.PieceAmount, res.Breakdown.PieceDetails = pieceAmount(rates, logs)
		res.Breakdown.PieceAmount = res.PieceAmount
	}

	gross := res.BaseAmount + res.PieceAmount

	specs, err := wagerule.ParseDeductions(rule.Deductions)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
	}
	res.DeductionsAmount, res.Breakdown.DeductionDetails = applyDeductions(specs, gross)
	res.Breakdown.DeductionsAmount = res.DeductionsAmount

	res.NetAmount = gross - res.DeductionsAmount
	if res.NetAmount < 0 {
		res.NetAmount = 0
	}
	res.Breakdown.NetAmount = res.NetAmount

	return res, nil
}

// tallyAttendance counts attended days and sums worked minutes. Minutes per
// day come from ActualMinutes, then the check-in/check-out span, then the
// default working day.
func tallyAttendance(confirmations []attendance.AttendanceConfirmation) (workDays, totalMinutes int) {
	for _, c := range confirmations {
		if !attendance.CountsAsAttended(c.Status) {
			continue
		}
		workDays++
		totalMinutes += dayMinutes(c)
	}
	return workDays, totalMinutes
}

func dayMinutes(c attendance.AttendanceConfirmation) int {
	if c.ActualMinutes != nil && *c.ActualMinutes > 0 {
		return *c.ActualMinutes
	}
	if c.CheckInTime != nil && c.CheckOutTime != nil && c.CheckOutTime.After(*c.CheckInTime) {
		return int(c.CheckOutTime.Sub(*c.CheckInTime).Minutes())
	}
	return defaultDayMinutes
}

// baseCalculator produces the base amount from attendance totals.
type baseCalculator func(workDays, totalMinutes int) int64

func zeroBase(int, int) int64 { return 0 }

// calculatorFor maps a rule's calculation type to its base calculator and
// reports whether piece amounts apply. The variant set is closed: anything
// else is a data error surfaced at compute time.
func calculatorFor(rule *wagerule.WageRule) (baseCalculator, bool, error) {
	hourly := func(_, totalMinutes int) int64 {
		return int64(math.Round(float64(totalMinutes) / 60.0 * float64(*rule.HourlyRate)))
	}
	daily := func(workDays, _ int) int64 {
		return int64(workDays) * *rule.DailyRate
	}

	switch rule.CalculationType {
	case wagerule.CalcHourly:
		if rule.HourlyRate == nil {
			return nil, false, fmt.Errorf("rule %s: hourly rule without hourly_rate", rule.ID)
		}
		return hourly, false, nil
	case wagerule.CalcDaily:
		if rule.DailyRate == nil {
			return nil, false, fmt.Errorf("rule %s: daily rule without daily_rate", rule.ID)
		}
		return daily, false, nil
	case wagerule.CalcPieceRate:
		return zeroBase, true, nil
	case wagerule.CalcMixed:
		// Mixed pairs piece amounts with whichever time base the rule
		// carries; neither rate set means piece only.
		switch {
		case rule.HourlyRate != nil:
			return hourly, true, nil
		case rule.DailyRate != nil:
			return daily, true, nil
		default:
			return zeroBase, true, nil
		}
	default:
		return nil, false, fmt.Errorf("rule %s: unknown calculation type %q", rule.ID, rule.CalculationType)
	}
}

// pieceAmount prices each work log against the rule's piece rates. Rounding
// happens per log, not on the sum. Logs whose work type has no price carry a
// zero unit price but stay in the breakdown so the line remains auditable.
func pieceAmount(rates map[string]float64, logs []worklog.WorkLog) (int64, []PieceDetail) {
	var total int64
	details := make([]PieceDetail, 0, len(logs))
	for _, l := range logs {
		price := rates[l.WorkType]
		amount := int64(math.Round(l.Quantity * price))
		total += amount
		details = append(details, PieceDetail{
			WorkDate:  l.WorkDate.Format("2006-01-02"),
			WorkType:  l.WorkType,
			Quantity:  l.Quantity,
			UnitPrice: price,
			Amount:    amount,
		})
	}
	return total, details
}

// applyDeductions evaluates the rule's deduction list in order against the
// gross amount. Percentage deductions are rounded per entry.
func applyDeductions(specs []wagerule.DeductionSpec, gross int64) (int64, []DeductionDetail) {
	var total int64
	details := make([]DeductionDetail, 0, len(specs))
	for _, d := range specs {
		var amount int64
		switch d.Type {
		case wagerule.DeductionFixed:
			amount = d.Amount
		case wagerule.DeductionPercentage:
			amount = int64(math.Round(float64(gross) * d.Rate / 100.0))
		default:
			continue
		}
		total += amount
		details = append(details, DeductionDetail{
			Name:   d.Name,
			Type:   d.Type,
			Rate:   d.Rate,
			Amount: amount,
		})
	}
	return total, details
}
