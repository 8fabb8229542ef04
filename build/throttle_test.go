package build_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/wenku"
	"github.com/fwojciec/wenku/build"
	"github.com/fwojciec/wenku/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottledEngine_Recognize(t *testing.T) {
	t.Parallel()

	ok := &mock.OCREngine{
		RecognizeFn: func(context.Context, wenku.PageSource, wenku.OCRParams) (*wenku.OCRPage, error) {
			return &wenku.OCRPage{}, nil
		},
	}

	t.Run("first page starts immediately", func(t *testing.T) {
		t.Parallel()

		e := build.NewThrottledEngine(ok, 10)

		start := time.Now()
		_, err := e.Recognize(context.Background(), wenku.PageSource{Page: 1}, wenku.OCRParams{})

		require.NoError(t, err)
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("second page waits for the bucket", func(t *testing.T) {
		t.Parallel()

		e := build.NewThrottledEngine(ok, 10)

		_, err := e.Recognize(context.Background(), wenku.PageSource{Page: 1}, wenku.OCRParams{})
		require.NoError(t, err)

		start := time.Now()
		_, err = e.Recognize(context.Background(), wenku.PageSource{Page: 2}, wenku.OCRParams{})

		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("canceled wait does not call the engine", func(t *testing.T) {
		t.Parallel()

		called := 0
		e := build.NewThrottledEngine(&mock.OCREngine{
			RecognizeFn: func(context.Context, wenku.PageSource, wenku.OCRParams) (*wenku.OCRPage, error) {
				called++
				return &wenku.OCRPage{}, nil
			},
		}, 0.1)
		_, err := e.Recognize(context.Background(), wenku.PageSource{Page: 1}, wenku.OCRParams{})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = e.Recognize(ctx, wenku.PageSource{Page: 2}, wenku.OCRParams{})

		assert.Error(t, err)
		assert.Equal(t, 1, called)
	})
}
