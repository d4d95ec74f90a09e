package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/joeblew999/plat-theme/internal/svc/svctest"
	"github.com/joeblew999/plat-theme/internal/types"
	"github.com/joeblew999/plat-theme/pkg/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListWarmJobs(t *testing.T) {
	svcCtx := svctest.New(t, false)
	ctx := context.Background()

	id, err := svcCtx.Queue.Enqueue(ctx, queue.WarmJob{Family: "Lato", Weights: []int{400, 700}})
	require.NoError(t, err)

	logic := NewListWarmJobsLogic(ctx, svcCtx)
	resp, err := logic.ListWarmJobs(&types.ListWarmJobsRequest{Status: "all", Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 1)
	assert.Equal(t, id, resp.Jobs[0].ID)
	assert.Equal(t, queue.StatusPending, resp.Jobs[0].Status)
	assert.Empty(t, resp.Jobs[0].History)
	assert.Equal(t, 1, resp.Stats[queue.StatusPending])

	require.Eventually(t, func() bool {
		resp, err = logic.ListWarmJobs(&types.ListWarmJobsRequest{Status: "all", Limit: 10, History: true})
		return err == nil && len(resp.Jobs) == 1 && len(resp.Jobs[0].History) == 1
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "queued", resp.Jobs[0].History[0].Kind)
	assert.Equal(t, "400,700", resp.Jobs[0].History[0].Details)
}
