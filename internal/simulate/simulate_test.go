package simulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hunch/internal/answer"
	"hunch/internal/oracle"
)

func TestRun(t *testing.T) {
	o, err := oracle.New(oracle.DefaultTable(), oracle.WithSeed(1))
	require.NoError(t, err)

	res, err := Run(o, 10000)
	require.NoError(t, err)
	assert.Equal(t, 10000, res.Draws)
	require.Len(t, res.Rows, len(answer.Values()))

	total := 0
	byAnswer := make(map[answer.Answer]Row, len(res.Rows))
	for i, row := range res.Rows {
		assert.Equal(t, answer.Values()[i], row.Answer, "rows follow declaration order")
		total += row.Count
		byAnswer[row.Answer] = row
	}
	assert.Equal(t, 10000, total)

	assert.InDelta(t, 53, byAnswer[answer.Yes].Observed, 3)
	assert.InDelta(t, 53, byAnswer[answer.Yes].Expected, 1e-9)
	assert.Zero(t, byAnswer[answer.Soon].Count)
	assert.Zero(t, byAnswer[answer.Soon].Expected)
}

func TestRunRejectsNonPositiveDraws(t *testing.T) {
	o, err := oracle.New(oracle.DefaultTable())
	require.NoError(t, err)

	_, err = Run(o, 0)
	assert.Error(t, err)
	_, err = Run(o, -5)
	assert.Error(t, err)
}
