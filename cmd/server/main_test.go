package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMain_ExitCode(t *testing.T) {
	origRun, origExit := run, exitFunc
	t.Cleanup(func() { run, exitFunc = origRun, origExit })

	t.Run("Error Exits 1", func(t *testing.T) {
		code := -1
		run = func(context.Context) error { return errors.New("boom") }
		exitFunc = func(c int) { code = c }

		main()
		assert.Equal(t, 1, code)
	})

	t.Run("Clean Shutdown", func(t *testing.T) {
		code := -1
		run = func(ctx context.Context) error {
			assert.NoError(t, ctx.Err())
			return nil
		}
		exitFunc = func(c int) { code = c }

		main()
		assert.Equal(t, -1, code)
	})
}
