package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gstims/mocks"
)

func periodService(now time.Time, latestFiled string) *ReconService {
	returnLogRepo := new(mocks.MockReturnLogRepo)
	returnLogRepo.On("LatestFiled3BPeriod", mock.Anything, mock.Anything, mock.Anything).
		Return(latestFiled, nil)

	svc := NewReconService(new(mocks.MockInwardSupplyRepo), new(mocks.MockPurchaseInvoiceRepo), returnLogRepo, new(mocks.MockReconciler))
	svc.now = func() time.Time { return now }
	return svc
}

func TestGetPeriodOptions_SixMonthWindow(t *testing.T) {
	svc := periodService(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), "")

	periods, err := svc.GetPeriodOptions(context.Background(), "Acme", "24AAACC1206D1ZM")

	assert.NoError(t, err)
	assert.Equal(t, []string{"072026", "062026", "052026", "042026", "032026", "022026"}, periods)
}

func TestGetPeriodOptions_FiledPeriodShrinksWindow(t *testing.T) {
	svc := periodService(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), "052026")

	periods, err := svc.GetPeriodOptions(context.Background(), "Acme", "24AAACC1206D1ZM")

	assert.NoError(t, err)
	// Periods at or before the last filed GSTR-3B are closed for action.
	assert.Equal(t, []string{"072026", "062026"}, periods)
}

func TestGetPeriodOptions_NeverBeforeJuly2017(t *testing.T) {
	svc := periodService(time.Date(2017, 10, 15, 0, 0, 0, 0, time.UTC), "")

	periods, err := svc.GetPeriodOptions(context.Background(), "Acme", "24AAACC1206D1ZM")

	assert.NoError(t, err)
	assert.Equal(t, []string{"092017", "082017", "072017"}, periods)
}

func TestGetPeriodOptions_StaleFiledPeriodIgnored(t *testing.T) {
	svc := periodService(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), "012024")

	periods, err := svc.GetPeriodOptions(context.Background(), "Acme", "24AAACC1206D1ZM")

	assert.NoError(t, err)
	// A filed period older than the rolling window does not extend it.
	assert.Len(t, periods, 6)
	assert.Equal(t, "072026", periods[0])
}

func TestSortablePeriod(t *testing.T) {
	assert.Equal(t, 202607, sortablePeriod("072026"))
	assert.Equal(t, 201707, sortablePeriod("072017"))
	assert.Equal(t, 0, sortablePeriod(""))
	assert.Equal(t, 0, sortablePeriod("7-2026"))
	assert.Greater(t, sortablePeriod("012027"), sortablePeriod("122026"))
}
