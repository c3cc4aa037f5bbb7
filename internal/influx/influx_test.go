package influx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessMetricData(t *testing.T) {
	bucket, point, err := ProcessMetricData([]string{
		`"frame_metrics"`,
		"frame_time",
		"tag::board::Dragon Lair",
		"field::float::renderMs::16.5",
		"field::int::tokens::12",
		"field::string::quality::high",
	})
	require.NoError(t, err)
	assert.Equal(t, "frame_metrics", bucket)
	require.NotNil(t, point)
	assert.Equal(t, "frame_time", point.Name())

	tags := point.TagList()
	require.Len(t, tags, 1)
	assert.Equal(t, "board", tags[0].Key)
	assert.Equal(t, "Dragon Lair", tags[0].Value)

	fields := make(map[string]any)
	for _, f := range point.FieldList() {
		fields[f.Key] = f.Value
	}
	assert.Equal(t, 16.5, fields["renderMs"])
	assert.Equal(t, int64(12), fields["tokens"])
	assert.Equal(t, "high", fields["quality"])
}

func TestProcessMetricData_SkipsMalformedEntries(t *testing.T) {
	_, point, err := ProcessMetricData([]string{
		"session_data",
		"uptime",
		"tag::orphan",
		"field::int::short",
		"unprefixed",
		"field::int::seconds::30",
	})
	require.NoError(t, err)
	assert.Empty(t, point.TagList())
	require.Len(t, point.FieldList(), 1)
	assert.Equal(t, "seconds", point.FieldList()[0].Key)
}

func TestProcessMetricData_Errors(t *testing.T) {
	_, _, err := ProcessMetricData([]string{"only_bucket"})
	assert.Error(t, err)

	_, _, err = ProcessMetricData([]string{
		"session_data", "uptime", "field::int::seconds::not-a-number",
	})
	assert.Error(t, err)

	_, _, err = ProcessMetricData([]string{
		"session_data", "uptime", "field::float::ratio::not-a-number",
	})
	assert.Error(t, err)
}
