package additive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NutriLens/pkg/types/common"
)

func TestClassify_KnownCodes(t *testing.T) {
	records := Classify([]string{"E621", "E330", "E951"})
	require.Len(t, records, 3)

	assert.Equal(t, "E621", records[0].Code)
	assert.Equal(t, "Monosodium glutamate (MSG)", records[0].Name)
	assert.Equal(t, common.RiskCaution, records[0].Risk)

	assert.Equal(t, "Citric acid", records[1].Name)
	assert.Equal(t, common.RiskGenerallySafe, records[1].Risk)

	assert.Equal(t, "Aspartame", records[2].Name)
	assert.Equal(t, common.RiskAvoid, records[2].Risk)
}

func TestClassify_PrefixSwapFallback(t *testing.T) {
	// INS102 is not a catalog key; the swap to E102 resolves it while the
	// reported code keeps the source spelling.
	records := Classify([]string{"INS102"})
	require.Len(t, records, 1)
	assert.Equal(t, "INS102", records[0].Code)
	assert.Equal(t, "Tartrazine", records[0].Name)
	assert.Equal(t, common.RiskAvoid, records[0].Risk)
}

func TestClassify_DualKeyedCaramel(t *testing.T) {
	records := Classify([]string{"E150D", "INS150D"})
	require.Len(t, records, 2)
	assert.Equal(t, "Caramel colour IV (sulphite ammonia)", records[0].Name)
	assert.Equal(t, records[0].Name, records[1].Name)
	assert.Equal(t, common.RiskModerate, records[1].Risk)
}

func TestClassify_BareBodyResolvesThroughStrip(t *testing.T) {
	records := Classify([]string{"621"})
	require.Len(t, records, 1)
	assert.Equal(t, "Monosodium glutamate (MSG)", records[0].Name)
}

func TestClassify_UnknownFallback(t *testing.T) {
	records := Classify([]string{"E999"})
	require.Len(t, records, 1)
	assert.Equal(t, "E999", records[0].Code)
	assert.Equal(t, "Unknown additive", records[0].Name)
	assert.Equal(t, common.RiskUnknown, records[0].Risk)
}

func TestClassify_NormalizesCase(t *testing.T) {
	records := Classify([]string{" e330 "})
	require.Len(t, records, 1)
	assert.Equal(t, "E330", records[0].Code)
	assert.Equal(t, "Citric acid", records[0].Name)
}

func TestClassify_EmptyInput(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Nil(t, Classify([]string{}))
}
