package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]model.GroupResult
	queries []string
	err     error
}

func (f *fakeSearcher) SearchGroups(_ context.Context, query string) ([]model.GroupResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.results[query], nil
}

func groups(ids ...string) []model.GroupResult {
	out := make([]model.GroupResult, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.GroupResult{ID: model.GroupID(id), Name: "group " + id})
	}
	return out
}

func ids(list []model.GroupResult) []string {
	out := make([]string, 0, len(list))
	for _, g := range list {
		out = append(out, g.ID.String())
	}
	return out
}

func TestMergeGroups(t *testing.T) {
	merged := MergeGroups(groups("1", "2"), groups("2", "3"))
	assert.Equal(t, []string{"1", "2", "3"}, ids(merged))
	assert.Equal(t, "group 2", merged[1].Name)
}

func TestMergeGroups_Empty(t *testing.T) {
	assert.Empty(t, MergeGroups(nil, nil))
}

func TestValidGroupName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"cyrillic", "АА000", true},
		{"latin", "AA000", false},
		{"hyphen stripped", "АА-000", true},
		{"spaces stripped", " икс 432 ", true},
		{"yo", "ЁМ-123", true},
		{"one letter", "И432", false},
		{"two digits", "ИКС-43", false},
		{"digits first", "432ИКС", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidGroupName(tt.input))
		})
	}
}

func TestNormalizeGroupName(t *testing.T) {
	assert.Equal(t, "икс432", NormalizeGroupName("ИКС - 432"))
}

func TestHyphenateGroupName(t *testing.T) {
	assert.Equal(t, "икс-432", HyphenateGroupName("икс432"))
	assert.Equal(t, "икс", HyphenateGroupName("икс"))
	assert.Equal(t, "", HyphenateGroupName(""))
}

func TestGroupService_FindGroupsByName(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]model.GroupResult{
		"икс432":  groups("10", "11"),
		"икс-432": groups("11", "12"),
	}}
	svc, err := NewGroupService(searcher, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	found, err := svc.FindGroupsByName(context.Background(), "ИКС-432")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11", "12"}, ids(found))
	assert.Equal(t, []string{"икс432", "икс-432"}, searcher.queries)
}

func TestGroupService_FindGroupsByName_InvalidSkipsNetwork(t *testing.T) {
	searcher := &fakeSearcher{}
	svc, err := NewGroupService(searcher, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	_, err = svc.FindGroupsByName(context.Background(), "IKS-432")
	assert.ErrorIs(t, err, ErrInvalidGroupName)
	assert.Empty(t, searcher.queries)
}

func TestGroupService_FindGroupsByName_Cached(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]model.GroupResult{
		"икс432": groups("10"),
	}}
	svc, err := NewGroupService(searcher, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	_, err = svc.FindGroupsByName(context.Background(), "ИКС-432")
	require.NoError(t, err)
	svc.cache.Wait()

	found, err := svc.FindGroupsByName(context.Background(), "икс 432")
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, ids(found))
	assert.Len(t, searcher.queries, 2)
}

func TestGroupService_FindGroupsByName_PortalError(t *testing.T) {
	boom := errors.New("boom")
	svc, err := NewGroupService(&fakeSearcher{err: boom}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(svc.Close)

	_, err = svc.FindGroupsByName(context.Background(), "ИКС-432")
	assert.ErrorIs(t, err, boom)
}

func TestGroupService_CloseStopsCaching(t *testing.T) {
	searcher := &fakeSearcher{results: map[string][]model.GroupResult{
		"икс432": {{ID: "1", Name: "ИКС-432"}},
	}}
	svc, err := NewGroupService(searcher, zap.NewNop())
	require.NoError(t, err)

	svc.Close()
	svc.Close()

	found, err := svc.FindGroupsByName(context.Background(), "ИКС432")
	require.NoError(t, err)
	assert.Equal(t, []model.GroupResult{{ID: "1", Name: "ИКС-432"}}, found)
}
