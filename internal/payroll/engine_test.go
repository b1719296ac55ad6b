package payroll_test

import (
	"testing"
	"time"

	"go-shien/internal/attendance"
	"go-shien/internal/payroll"
	"go-shien/internal/wagerule"
	"go-shien/internal/worklog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func confirmedDay(day int, status string, minutes *int) attendance.AttendanceConfirmation {
	return attendance.AttendanceConfirmation{
		ID:             uuid.New(),
		AttendanceDate: time.Date(2025, 9, day, 0, 0, 0, 0, time.UTC),
		Status:         status,
		ActualMinutes:  minutes,
	}
}

func TestComputeLine_NoAttendedDays(t *testing.T) {
	rule := &wagerule.WageRule{CalculationType: wagerule.CalcHourly, HourlyRate: int64Ptr(1000)}

	res, err := payroll.ComputeLine(rule, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusAbsent, nil),
		confirmedDay(2, attendance.StatusAbsent, nil),
	}, nil)

	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestComputeLine_HourlyWithDefaultMinutes(t *testing.T) {
	rule := &wagerule.WageRule{CalculationType: wagerule.CalcHourly, HourlyRate: int64Ptr(1000)}

	// No actual minutes and no check times: the day falls back to 480 minutes.
	res, err := payroll.ComputeLine(rule, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, nil),
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.WorkDays)
	assert.Equal(t, 480, res.TotalMinutes)
	assert.Equal(t, int64(8000), res.BaseAmount)
	assert.Equal(t, int64(8000), res.NetAmount)
}

func TestComputeLine_HourlyPrefersActualMinutes(t *testing.T) {
	rule := &wagerule.WageRule{CalculationType: wagerule.CalcHourly, HourlyRate: int64Ptr(1200)}

	checkIn := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	checkOut := time.Date(2025, 9, 2, 15, 30, 0, 0, time.UTC)
	confirmations := []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, intPtr(300)),
		{
			ID:             uuid.New(),
			AttendanceDate: checkIn.Truncate(24 * time.Hour),
			Status:         attendance.StatusLeaveEarly,
			CheckInTime:    &checkIn,
			CheckOutTime:   &checkOut,
		},
	}

	res, err := payroll.ComputeLine(rule, confirmations, nil)

	assert.NoError(t, err)
	assert.Equal(t, 2, res.WorkDays)
	// 300 recorded minutes + 390 from the check-in/check-out span
	assert.Equal(t, 690, res.TotalMinutes)
	assert.Equal(t, int64(13800), res.BaseAmount)
}

func TestComputeLine_LateAndLeaveEarlyCountAsAttended(t *testing.T) {
	rule := &wagerule.WageRule{CalculationType: wagerule.CalcDaily, DailyRate: int64Ptr(5000)}

	res, err := payroll.ComputeLine(rule, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, nil),
		confirmedDay(2, attendance.StatusLate, nil),
		confirmedDay(3, attendance.StatusLeaveEarly, nil),
		confirmedDay(4, attendance.StatusAbsent, nil),
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, res.WorkDays)
	assert.Equal(t, int64(15000), res.BaseAmount)
}

func TestComputeLine_PieceRateRoundsPerLog(t *testing.T) {
	rule := &wagerule.WageRule{
		CalculationType: wagerule.CalcPieceRate,
		PieceRates:      datatypes.JSON([]byte(`[{"work_type":"assembly","unit_price":50},{"work_type":"packing","unit_price":80}]`)),
	}

	logs := []worklog.WorkLog{
		{WorkDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), WorkType: "assembly", Quantity: 10},
		{WorkDate: time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), WorkType: "packing", Quantity: 5},
		{WorkDate: time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC), WorkType: "unknown", Quantity: 99},
	}

	res, err := payroll.ComputeLine(rule, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, intPtr(240)),
	}, logs)

	assert.NoError(t, err)
	assert.Equal(t, int64(0), res.BaseAmount)
	assert.Equal(t, int64(900), res.PieceAmount)
	assert.Equal(t, int64(900), res.NetAmount)
	// the unpriced work type contributes nothing but stays in the breakdown
	assert.Len(t, res.Breakdown.PieceDetails, 3)
	unpriced := res.Breakdown.PieceDetails[2]
	assert.Equal(t, "unknown", unpriced.WorkType)
	assert.Equal(t, float64(0), unpriced.UnitPrice)
	assert.Equal(t, int64(0), unpriced.Amount)
}

func TestComputeLine_MixedWithDeductions(t *testing.T) {
	rule := &wagerule.WageRule{
		CalculationType: wagerule.CalcMixed,
		HourlyRate:      int64Ptr(1000),
		PieceRates:      datatypes.JSON([]byte(`{"assembly":50,"packing":80}`)),
		Deductions:      datatypes.JSON([]byte(`[{"name":"facility use","type":"percentage","rate":10}]`)),
	}

	logs := []worklog.WorkLog{
		{WorkDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), WorkType: "assembly", Quantity: 10},
		{WorkDate: time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), WorkType: "packing", Quantity: 5},
	}

	res, err := payroll.ComputeLine(rule, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, nil),
	}, logs)

	assert.NoError(t, err)
	assert.Equal(t, int64(8000), res.BaseAmount)
	assert.Equal(t, int64(900), res.PieceAmount)
	// 10% of 8900 gross
	assert.Equal(t, int64(890), res.DeductionsAmount)
	assert.Equal(t, int64(8010), res.NetAmount)
}

func TestComputeLine_NetClampedAtZero(t *testing.T) {
	rule := &wagerule.WageRule{
		CalculationType: wagerule.CalcDaily,
		DailyRate:       int64Ptr(1000),
		Deductions:      datatypes.JSON([]byte(`[{"name":"meal","type":"fixed","amount":5000}]`)),
	}

	res, err := payroll.ComputeLine(rule, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, nil),
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(1000), res.BaseAmount)
	assert.Equal(t, int64(5000), res.DeductionsAmount)
	assert.Equal(t, int64(0), res.NetAmount)
}

func TestComputeLine_DeductionsApplyInOrder(t *testing.T) {
	rule := &wagerule.WageRule{
		CalculationType: wagerule.CalcDaily,
		DailyRate:       int64Ptr(10000),
		Deductions: datatypes.JSON([]byte(
			`[{"name":"fee","type":"fixed","amount":300},{"name":"levy","type":"percentage","rate":5}]`,
		)),
	}

	res, err := payroll.ComputeLine(rule, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, nil),
	}, nil)

	assert.NoError(t, err)
	assert.Len(t, res.Breakdown.DeductionDetails, 2)
	assert.Equal(t, "fee", res.Breakdown.DeductionDetails[0].Name)
	assert.Equal(t, int64(300), res.Breakdown.DeductionDetails[0].Amount)
	// percentage is taken from gross, not from the running remainder
	assert.Equal(t, int64(500), res.Breakdown.DeductionDetails[1].Amount)
	assert.Equal(t, int64(800), res.DeductionsAmount)
	assert.Equal(t, int64(9200), res.NetAmount)
}

func TestComputeLine_NoRuleStillTracksAttendance(t *testing.T) {
	res, err := payroll.ComputeLine(nil, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, intPtr(300)),
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, res.WorkDays)
	assert.Equal(t, 300, res.TotalMinutes)
	assert.Equal(t, int64(0), res.NetAmount)
	assert.Equal(t, wagerule.CalcNone, res.Breakdown.CalculationType)
}

func TestComputeLine_HourlyWithoutRateFails(t *testing.T) {
	rule := &wagerule.WageRule{ID: uuid.New(), CalculationType: wagerule.CalcHourly}

	_, err := payroll.ComputeLine(rule, []attendance.AttendanceConfirmation{
		confirmedDay(1, attendance.StatusPresent, nil),
	}, nil)

	assert.Error(t, err)
}

func TestBuildPayslipPDF(t *testing.T) {
	run := payroll.PayrollRun{
		PeriodStart: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
	}
	line := payroll.PayrollLine{WorkDays: 20, TotalMinutes: 9600, NetAmount: 160000}

	pdf, err := payroll.BuildPayslipPDF(run, line, "Yamada (Test)")

	assert.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF-1.4", string(pdf[:8]))
	assert.Contains(t, string(pdf), "Yamada \\(Test\\)")
}
