package usecase

import (
	"context"
	"testing"
	"time"

	"vetclinic/internal/usecase/interfaces"
	mock_interfaces "vetclinic/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// monday is the fixed "today" of most tests.
var monday = time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time { return monday.AddDate(0, 0, offset) }

func fixedClock(ctrl *gomock.Controller, today time.Time) *mock_interfaces.MockIClock {
	clock := mock_interfaces.NewMockIClock(ctrl)
	clock.EXPECT().Today().Return(today).AnyTimes()
	return clock
}

// inlineTx runs the callback directly, the way a store without transactions
// would.
func inlineTx(ctrl *gomock.Controller) *mock_interfaces.MockITransactor {
	tx := mock_interfaces.NewMockITransactor(ctrl)
	tx.EXPECT().WithinTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) },
	).AnyTimes()
	return tx
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func expectEvent(t *testing.T, ctrl *gomock.Controller, eventType string) *mock_interfaces.MockIEventPublisher {
	t.Helper()
	pub := mock_interfaces.NewMockIEventPublisher(ctrl)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, evt interfaces.Event) error {
			if evt.Type != eventType || evt.ID == "" || evt.AggregateID == "" {
				t.Fatalf("unexpected event: %+v", evt)
			}
			return nil
		},
	)
	return pub
}
