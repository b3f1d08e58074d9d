package billing

import (
	"testing"
	"time"

	"github.com/hometuition/hometuition/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveApplicableMonths(t *testing.T) {
	t.Run("active student enrolled at window start covers all months", func(t *testing.T) {
		months := ResolveApplicableMonths("June 2025", "April 2026", types.StudentStatusActive, nil)
		assert.Equal(t, types.AcademicYearMonths, months)
		assert.Len(t, months, 11)
	})

	t.Run("missing end month defaults to full-year coverage", func(t *testing.T) {
		months := ResolveApplicableMonths("January 2026", "", types.StudentStatusActive, nil)
		assert.Equal(t, []string{"January 2026", "February 2026", "March 2026", "April 2026"}, months)
	})

	t.Run("left student billed through earlier of departure and end month", func(t *testing.T) {
		leftAt := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
		months := ResolveApplicableMonths("June 2025", "April 2026", types.StudentStatusLeft, &leftAt)
		assert.Equal(t, []string{"June 2025", "July 2025", "August 2025", "September 2025"}, months)
	})

	t.Run("left student with earlier contracted end month keeps the end month bound", func(t *testing.T) {
		leftAt := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
		months := ResolveApplicableMonths("June 2025", "August 2025", types.StudentStatusLeft, &leftAt)
		assert.Equal(t, []string{"June 2025", "July 2025", "August 2025"}, months)
	})

	t.Run("left student departing outside the window falls back to end month", func(t *testing.T) {
		leftAt := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
		months := ResolveApplicableMonths("June 2025", "July 2025", types.StudentStatusLeft, &leftAt)
		assert.Equal(t, []string{"June 2025", "July 2025"}, months)
	})

	t.Run("left student with nothing resolvable collapses to enrollment month", func(t *testing.T) {
		leftAt := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
		months := ResolveApplicableMonths("June 2025", "", types.StudentStatusLeft, &leftAt)
		assert.Equal(t, []string{"June 2025"}, months)
	})

	t.Run("unknown enrollment month yields no schedule", func(t *testing.T) {
		months := ResolveApplicableMonths("May 2025", "April 2026", types.StudentStatusActive, nil)
		assert.Empty(t, months)
	})

	t.Run("end month before enrollment collapses to enrollment month", func(t *testing.T) {
		months := ResolveApplicableMonths("February 2026", "June 2025", types.StudentStatusActive, nil)
		assert.Equal(t, []string{"February 2026"}, months)
	})

	t.Run("valid enrollment month always yields at least one label", func(t *testing.T) {
		leftBeforeEnrollment := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
		for _, label := range types.AcademicYearMonths {
			active := ResolveApplicableMonths(label, "", types.StudentStatusActive, nil)
			assert.GreaterOrEqual(t, len(active), 1, "active %s", label)

			left := ResolveApplicableMonths(label, "April 2026", types.StudentStatusLeft, &leftBeforeEnrollment)
			assert.GreaterOrEqual(t, len(left), 1, "left %s", label)
		}
	})

	t.Run("leaving never extends billing beyond the active schedule", func(t *testing.T) {
		departures := []time.Time{
			time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC),
			time.Date(2026, time.April, 30, 0, 0, 0, 0, time.UTC),
		}
		for _, enrollment := range []string{"June 2025", "October 2025", "January 2026"} {
			active := ResolveApplicableMonths(enrollment, "April 2026", types.StudentStatusActive, nil)
			for _, leftAt := range departures {
				left := ResolveApplicableMonths(enrollment, "April 2026", types.StudentStatusLeft, &leftAt)
				assert.LessOrEqual(t, len(left), len(active))
				assert.Equal(t, active[:len(left)], left, "left list must be a prefix of the active list")
			}
		}
	})
}

func TestInstallmentMonths(t *testing.T) {
	t.Run("spreads installments across the applicable range", func(t *testing.T) {
		applicable := ResolveApplicableMonths("June 2025", "April 2026", types.StudentStatusActive, nil)
		months := InstallmentMonths(applicable, 3)
		assert.Equal(t, []string{"June 2025", "September 2025", "January 2026"}, months)
	})

	t.Run("single installment lands on the enrollment month", func(t *testing.T) {
		months := InstallmentMonths([]string{"January 2026", "February 2026"}, 1)
		assert.Equal(t, []string{"January 2026"}, months)
	})

	t.Run("more installments than months reuses months", func(t *testing.T) {
		months := InstallmentMonths([]string{"March 2026", "April 2026"}, 4)
		assert.Len(t, months, 4)
		assert.Equal(t, "March 2026", months[0])
		assert.Equal(t, "April 2026", months[3])
	})

	t.Run("empty applicable months yields no plan", func(t *testing.T) {
		assert.Nil(t, InstallmentMonths(nil, 3))
	})
}

func TestInstallmentAmount(t *testing.T) {
	t.Run("splits the yearly fee evenly", func(t *testing.T) {
		got := InstallmentAmount(decimal.NewFromInt(9000), decimal.Zero, 3)
		assert.True(t, got.Equal(decimal.NewFromInt(3000)), "got %s", got)
	})

	t.Run("rounds to a whole amount", func(t *testing.T) {
		got := InstallmentAmount(decimal.NewFromInt(10000), decimal.Zero, 3)
		assert.True(t, got.Equal(decimal.NewFromInt(3333)), "got %s", got)
	})

	t.Run("falls back to twelve monthly fees", func(t *testing.T) {
		got := InstallmentAmount(decimal.Zero, decimal.NewFromInt(1000), 3)
		assert.True(t, got.Equal(decimal.NewFromInt(4000)), "got %s", got)
	})

	t.Run("falls back to the fixed default when no fee is set", func(t *testing.T) {
		got := InstallmentAmount(decimal.Zero, decimal.Zero, 3)
		assert.True(t, got.Equal(decimal.NewFromInt(4000)), "got %s", got)
	})
}

func TestContractFee(t *testing.T) {
	t.Run("prefers the yearly fee", func(t *testing.T) {
		got := ContractFee(decimal.NewFromInt(9000), decimal.NewFromInt(1000))
		assert.True(t, got.Equal(decimal.NewFromInt(9000)))
	})

	t.Run("falls back to monthly fee across the academic year", func(t *testing.T) {
		got := ContractFee(decimal.Zero, decimal.NewFromInt(1000))
		assert.True(t, got.Equal(decimal.NewFromInt(11000)))
	})
}
