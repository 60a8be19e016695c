package ingesthandlers

import (
	"context"
	"sync"

	ingestservice "github.com/DanielWijono/minton3t-ranking/app/modules/ingest/application"
	"github.com/DanielWijono/minton3t-ranking/app/modules/ingest/normalize"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type upload struct {
	flow     normalize.Flow
	month    int
	year     int
	fileName string
	data     string
}

// FakeService is a programmable ingestservice.Service.
type FakeService struct {
	PreviewFunc         func(ctx context.Context, flow normalize.Flow, fileName string, data []byte) (*ingestservice.Preview, error)
	SyncLeaderboardFunc func(ctx context.Context, fileName string, data []byte) (*ingestservice.LeaderboardResult, error)
	SyncMVPFunc         func(ctx context.Context, month, year int, fileName string, data []byte) (*ingestservice.MVPResult, error)
	uploads             []upload
}

func (f *FakeService) Preview(ctx context.Context, flow normalize.Flow, fileName string, data []byte) (*ingestservice.Preview, error) {
	f.uploads = append(f.uploads, upload{flow: flow, fileName: fileName, data: string(data)})
	if f.PreviewFunc != nil {
		return f.PreviewFunc(ctx, flow, fileName, data)
	}
	return &ingestservice.Preview{Flow: flow, FileName: fileName}, nil
}

func (f *FakeService) SyncLeaderboard(ctx context.Context, fileName string, data []byte) (*ingestservice.LeaderboardResult, error) {
	f.uploads = append(f.uploads, upload{flow: normalize.FlowLeaderboard, fileName: fileName, data: string(data)})
	if f.SyncLeaderboardFunc != nil {
		return f.SyncLeaderboardFunc(ctx, fileName, data)
	}
	return &ingestservice.LeaderboardResult{FileName: fileName}, nil
}

func (f *FakeService) SyncMVP(ctx context.Context, month, year int, fileName string, data []byte) (*ingestservice.MVPResult, error) {
	f.uploads = append(f.uploads, upload{flow: normalize.FlowMVP, month: month, year: year, fileName: fileName, data: string(data)})
	if f.SyncMVPFunc != nil {
		return f.SyncMVPFunc(ctx, month, year, fileName, data)
	}
	return &ingestservice.MVPResult{FileName: fileName}, nil
}

var _ ingestservice.Service = (*FakeService)(nil)

// recordingTracer records the name of every span started through it.
type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	names []string
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

func (r *recordingTracer) spans() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.names...)
}
