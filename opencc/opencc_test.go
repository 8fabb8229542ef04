package opencc_test

import (
	"context"
	"testing"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/opencc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_ConvertText(t *testing.T) {
	t.Parallel()

	c, err := opencc.NewConverter("")
	require.NoError(t, err)

	t.Run("converts traditional characters", func(t *testing.T) {
		t.Parallel()

		got, err := c.ConvertText(context.Background(), "我們的任務")

		require.NoError(t, err)
		assert.Equal(t, "我们的任务", got)
	})

	t.Run("leaves simplified text alone", func(t *testing.T) {
		t.Parallel()

		got, err := c.ConvertText(context.Background(), "为人民服务")

		require.NoError(t, err)
		assert.Equal(t, "为人民服务", got)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		got, err := c.ConvertText(context.Background(), "")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := c.ConvertText(ctx, "說明")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestNewConverter(t *testing.T) {
	t.Parallel()

	_, err := opencc.NewConverter("no-such-config")

	require.Error(t, err)
	assert.Equal(t, wenku.EINVALID, wenku.ErrorCode(err))
}
