package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosetrack/rosetrack/internal/analytics"
	"github.com/rosetrack/rosetrack/internal/sales"
)

type stubSource struct {
	entries []analytics.RepurchaseEntry
	err     error
}

func (s *stubSource) GetRepurchaseList(ctx context.Context) ([]analytics.RepurchaseEntry, error) {
	return s.entries, s.err
}

func TestRepurchaseScanHandle(t *testing.T) {
	source := &stubSource{entries: []analytics.RepurchaseEntry{
		{Sale: sales.Sale{ClientName: "Ana", ProductName: "Serum"}, DaysSince: 30},
	}}
	job := NewRepurchaseScanJob(source, nil)

	task, err := NewRepurchaseScanTask(28)
	require.NoError(t, err)
	assert.NoError(t, job.Handle(context.Background(), task))
}

func TestRepurchaseScanPropagatesSourceError(t *testing.T) {
	source := &stubSource{err: errors.New("boom")}
	job := NewRepurchaseScanJob(source, nil)

	task, err := NewRepurchaseScanTask(0)
	require.NoError(t, err)
	assert.Error(t, job.Handle(context.Background(), task))
}

func TestRepurchaseScanSkipsMalformedPayload(t *testing.T) {
	job := NewRepurchaseScanJob(&stubSource{}, nil)

	task := asynq.NewTask(TaskRepurchaseScan, []byte("{not json"))
	err := job.Handle(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
