package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mergeStamp = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func testRisk(t RiskType, s Severity, msg string) Risk {
	return Risk{Type: t, Severity: s, Message: msg, DetectedAt: mergeStamp}
}

func TestSeverityRank(t *testing.T) {
	assert.Equal(t, 1, SeverityLow.Rank())
	assert.Equal(t, 2, SeverityMedium.Rank())
	assert.Equal(t, 3, SeverityHigh.Rank())
	assert.Equal(t, 0, Severity("").Rank())
	assert.Equal(t, 0, Severity("CRITICAL").Rank())
}

func TestMergeRisks_PrimaryWinsTies(t *testing.T) {
	primary := []Risk{testRisk(RiskHighWinds, SeverityHigh, "wind 21.0 m/s, Beaufort 9 (Strong gale)")}
	legacy := []Risk{testRisk(RiskHighWinds, SeverityHigh, "strong wind 21.0 m/s")}

	merged := MergeRisks(primary, legacy)
	require.Len(t, merged, 1)
	assert.Equal(t, primary[0].Message, merged[0].Message)
}

func TestMergeRisks_KeepsDistinctSeverities(t *testing.T) {
	primary := []Risk{testRisk(RiskExcessiveSpeed, SeverityHigh, "a")}
	legacy := []Risk{testRisk(RiskExcessiveSpeed, SeverityMedium, "b")}

	merged := MergeRisks(primary, legacy)
	require.Len(t, merged, 2)
	assert.Equal(t, SeverityHigh, merged[0].Severity)
	assert.Equal(t, SeverityMedium, merged[1].Severity)
}

func TestMergeRisks_OrdersHighToLow(t *testing.T) {
	primary := []Risk{
		testRisk(RiskNightOperation, SeverityLow, "night"),
		testRisk(RiskHazardProximity, SeverityHigh, "hazard"),
	}
	legacy := []Risk{
		testRisk(RiskHighWaves, SeverityMedium, "waves"),
		testRisk(RiskHighWinds, SeverityHigh, "wind"),
	}

	merged := MergeRisks(primary, legacy)
	require.Len(t, merged, 4)
	assert.Equal(t, RiskHazardProximity, merged[0].Type)
	assert.Equal(t, RiskHighWinds, merged[1].Type)
	assert.Equal(t, RiskHighWaves, merged[2].Type)
	assert.Equal(t, RiskNightOperation, merged[3].Type)
}

func TestMergeRisks_StableWithinBand(t *testing.T) {
	primary := []Risk{
		testRisk(RiskExcessiveSpeed, SeverityHigh, "first"),
		testRisk(RiskHighWinds, SeverityHigh, "second"),
		testRisk(RiskHighWaves, SeverityHigh, "third"),
	}

	merged := MergeRisks(primary, nil)
	require.Len(t, merged, 3)
	assert.Equal(t, "first", merged[0].Message)
	assert.Equal(t, "second", merged[1].Message)
	assert.Equal(t, "third", merged[2].Message)
}

func TestMergeRisks_Idempotent(t *testing.T) {
	primary := []Risk{
		testRisk(RiskExcessiveSpeed, SeverityHigh, "speed"),
		testRisk(RiskNightOperation, SeverityLow, "night"),
	}
	legacy := []Risk{
		testRisk(RiskExcessiveSpeed, SeverityMedium, "legacy speed"),
		testRisk(RiskNightOperation, SeverityLow, "legacy night"),
	}

	merged := MergeRisks(primary, legacy)
	again := MergeRisks(merged, merged)
	assert.Empty(t, cmp.Diff(merged, again))
}

func TestSummarizeRisks(t *testing.T) {
	risks := []Risk{
		testRisk(RiskExcessiveSpeed, SeverityHigh, "a"),
		testRisk(RiskExcessiveSpeed, SeverityMedium, "b"),
		testRisk(RiskHighWinds, SeverityMedium, "c"),
		testRisk(RiskNightOperation, SeverityLow, "d"),
	}

	summary := SummarizeRisks(risks)
	assert.Equal(t, 4, summary.Total)
	assert.Equal(t, SeverityHigh, summary.HighestSeverity)
	assert.Equal(t, map[Severity]int{SeverityHigh: 1, SeverityMedium: 2, SeverityLow: 1}, summary.BySeverity)
	assert.Equal(t, map[RiskType]int{RiskExcessiveSpeed: 2, RiskHighWinds: 1, RiskNightOperation: 1}, summary.ByType)
}

func TestSummarizeRisks_Empty(t *testing.T) {
	summary := SummarizeRisks(nil)
	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.HighestSeverity)
	assert.Empty(t, summary.BySeverity)
	assert.Empty(t, summary.ByType)
}
