package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xolan/billable/internal/entry"
)

func scenarioCatalog() testCatalog {
	return testCatalog{
		customers: map[string]string{"support": "acme", "dev": "acme", "other": "globex"},
		cases: map[string]CaseConfig{
			"support": {CaseID: "acme-support", MinBillableMinutes: 30},
			"dev":     {CaseID: "acme-dev", MinBillableMinutes: 0},
			"other":   {CaseID: "globex-ops", MinBillableMinutes: 0},
		},
	}
}

func reconcile(entries ...entry.Entry) Result {
	catalog := scenarioCatalog()
	r := NewReconciler(catalog, catalog, startsOf(entries...), WithLogger(zap.NewNop()))
	return r.Reconcile(entries)
}

func TestReconcile_Scenario1_RoundsOutward(t *testing.T) {
	result := reconcile(raw("a", "dev", at(9, 3), at(9, 58)))

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, at(9, 0), rec.Start)
	assert.Equal(t, at(10, 0), rec.End)
	assert.Equal(t, SourceRounded, rec.Source)
	assert.Equal(t, "acme-dev", rec.CaseID)
	require.NotNil(t, rec.OriginalStart)
	assert.Equal(t, at(9, 3), *rec.OriginalStart)

	require.Len(t, result.Rounded, 1)
	assert.True(t, result.Rounded[0].StartRounded)
	assert.True(t, result.Rounded[0].EndRounded)
}

func TestReconcile_Scenario2_PostponesSameCustomer(t *testing.T) {
	result := reconcile(
		raw("a", "dev", at(9, 0), at(10, 2)),
		raw("b", "dev", at(10, 0), at(11, 0)),
	)

	require.Len(t, result.Records, 2)
	assert.Equal(t, at(9, 0), result.Records[0].Start)
	assert.Equal(t, at(10, 5), result.Records[0].End)
	assert.Equal(t, at(10, 5), result.Records[1].Start)
	assert.Equal(t, at(11, 0), result.Records[1].End)
	assert.Equal(t, SourceRounded, result.Records[1].Source)
}

func TestReconcile_Scenario3_PadsShortBlock(t *testing.T) {
	result := reconcile(raw("a", "support", at(9, 0), at(9, 15)))

	require.Len(t, result.Records, 2)
	assert.Equal(t, SourceRounded, result.Records[0].Source)
	pad := result.Records[1]
	assert.Equal(t, SourceMinimumBillableTime, pad.Source)
	assert.Equal(t, at(9, 15), pad.Start)
	assert.Equal(t, at(9, 30), pad.End)
	assert.Equal(t, "a", pad.EntryID)
	assert.Nil(t, pad.OriginalStart)
}

func TestReconcile_Scenario4_PaddingStopsAtNeighbour(t *testing.T) {
	result := reconcile(
		raw("a", "support", at(9, 0), at(9, 15)),
		raw("n", "other", at(9, 20), at(10, 0)),
	)

	require.Len(t, result.Paddings, 1)
	assert.Equal(t, at(9, 15), result.Paddings[0].Start)
	assert.Equal(t, at(9, 20), result.Paddings[0].End)

	require.Len(t, result.Records, 3)
	assert.Equal(t, []Source{SourceRounded, SourceMinimumBillableTime, SourceRounded}, sourcesOf(result.Records))
}

func TestReconcile_Scenario5_PaddingStopsAtDayEnd(t *testing.T) {
	catalog := scenarioCatalog()
	catalog.cases["support"] = CaseConfig{CaseID: "acme-support", MinBillableMinutes: 35}
	entries := []entry.Entry{raw("a", "support", at(23, 45), at(23, 50))}

	result := NewReconciler(catalog, catalog, startsOf(entries...)).Reconcile(entries)

	require.Len(t, result.Paddings, 1)
	assert.Equal(t, at(23, 50), result.Paddings[0].Start)
	assert.Equal(t, at(23, 55), result.Paddings[0].End)
}

func TestReconcile_OvertimeIsKept(t *testing.T) {
	result := reconcile(
		raw("a", "dev", at(9, 0), at(10, 0)),
		raw("b", "other", at(9, 30), at(10, 30)),
	)

	require.Len(t, result.Records, 2)
	assert.Equal(t, SourceRounded, result.Records[0].Source)
	assert.Equal(t, SourceRoundedOverlapping, result.Records[1].Source)
	assert.True(t, result.Records[1].Source.IsOvertime())
}

func TestReconcile_SkipsOngoingAndAbsorbed(t *testing.T) {
	result := reconcile(
		raw("a", "dev", at(9, 0), at(10, 1)),
		raw("absorbed", "dev", at(10, 1), at(10, 4)),
		ongoing("running", "dev", at(11, 0)),
	)

	require.Len(t, result.Records, 1)
	assert.Equal(t, []string{"absorbed", "running"}, result.Skipped)
}

func TestReconcile_NilResolversDegrade(t *testing.T) {
	entries := []entry.Entry{
		raw("a", "support", at(9, 0), at(10, 2)),
		raw("b", "support", at(10, 0), at(10, 10)),
	}

	result := NewReconciler(nil, nil, nil).Reconcile(entries)

	require.Len(t, result.Records, 2)
	assert.Empty(t, result.Paddings)
	// without customers the rounding overlap cannot be resolved, so it is overtime
	assert.Equal(t, SourceRoundedOverlapping, result.Records[1].Source)
	assert.Empty(t, result.Records[0].CaseID)
}

func TestReconcile_Deterministic(t *testing.T) {
	entries := []entry.Entry{
		raw("c", "other", at(13, 2), at(13, 9)),
		raw("a", "support", at(9, 0), at(9, 12)),
		raw("b", "support", at(9, 12), at(9, 16)),
		raw("d", "dev", at(9, 14), at(9, 40)),
		raw("e", "support", at(23, 41), at(23, 48)),
	}

	first := reconcile(entries...)
	second := reconcile(entries...)

	assert.Equal(t, first, second)
}

func TestReconcile_NoSilentTimeLoss(t *testing.T) {
	entries := []entry.Entry{
		raw("a", "support", at(9, 1), at(9, 12)),
		raw("b", "dev", at(9, 10), at(10, 2)),
		raw("c", "dev", at(10, 0), at(11, 0)),
		raw("d", "other", at(10, 30), at(10, 40)),
		raw("e", "support", at(23, 44), at(23, 51)),
	}

	result := reconcile(entries...)

	assert.GreaterOrEqual(t, unionOfRecords(result.Records), unionOfEntries(entries))
}

func TestReconcile_PaddingBoundedness(t *testing.T) {
	entries := []entry.Entry{
		raw("a", "support", at(9, 0), at(9, 5)),
		raw("b", "other", at(9, 25), at(9, 40)),
		raw("c", "support", at(9, 40), at(9, 45)),
		raw("d", "support", at(23, 30), at(23, 35)),
	}

	result := reconcile(entries...)

	require.NotEmpty(t, result.Paddings)
	for _, p := range result.Paddings {
		assert.False(t, p.End.After(DayEnd(p.Start)), "padding %v past day end", p)
		for _, e := range entries {
			if e.ID == p.EntryID {
				continue
			}
			assert.False(t, p.Start.Before(*e.End) && e.Start.Before(p.End) && !e.Start.Before(p.Start),
				"padding %v overlaps later entry %s", p, e.ID)
		}
	}
}

func TestReconcile_WithLocation(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	catalog := scenarioCatalog()
	catalog.cases["support"] = CaseConfig{CaseID: "acme-support", MinBillableMinutes: 35}

	// 22:45-22:50 UTC is 23:45-23:50 CET
	entries := []entry.Entry{raw("a", "support", at(22, 45), at(22, 50))}

	local := NewReconciler(catalog, catalog, nil, WithLocation(cet)).Reconcile(entries)
	utc := NewReconciler(catalog, catalog, nil).Reconcile(entries)

	require.Len(t, local.Paddings, 1)
	assert.True(t, local.Paddings[0].End.Equal(at(22, 55)), "got %v", local.Paddings[0].End)
	assert.Equal(t, cet, local.Paddings[0].End.Location())

	require.Len(t, utc.Paddings, 1)
	assert.True(t, utc.Paddings[0].End.Equal(at(23, 20)), "got %v", utc.Paddings[0].End)
}

func sourcesOf(records []Record) []Source {
	sources := make([]Source, 0, len(records))
	for _, r := range records {
		sources = append(sources, r.Source)
	}
	return sources
}

// unionOfEntries measures the time covered by at least one finished entry
func unionOfEntries(entries []entry.Entry) time.Duration {
	var spans [][2]time.Time
	for _, e := range entries {
		if e.End != nil {
			spans = append(spans, [2]time.Time{e.Start, *e.End})
		}
	}
	return union(spans)
}

func unionOfRecords(records []Record) time.Duration {
	var spans [][2]time.Time
	for _, r := range records {
		spans = append(spans, [2]time.Time{r.Start, r.End})
	}
	return union(spans)
}

func union(spans [][2]time.Time) time.Duration {
	var total time.Duration
	covered := map[time.Time]bool{}
	for _, s := range spans {
		for t := s[0]; t.Before(s[1]); t = t.Add(time.Minute) {
			if !covered[t] {
				covered[t] = true
				total += time.Minute
			}
		}
	}
	return total
}
