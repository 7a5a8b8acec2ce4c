package maxreg_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/sessionkit/pkg/maxreg"
)

func TestRegister_ZeroValue(t *testing.T) {
	var r maxreg.Register
	assert.Equal(t, int64(0), r.Load())
}

func TestRegister_Advance(t *testing.T) {
	t.Run("higher proposal wins", func(t *testing.T) {
		r := maxreg.New(100)
		assert.Equal(t, int64(105), r.Advance(105))
		assert.Equal(t, int64(105), r.Load())
	})

	t.Run("lower proposal is a no-op", func(t *testing.T) {
		r := maxreg.New(105)
		assert.Equal(t, int64(105), r.Advance(100))
		assert.Equal(t, int64(105), r.Load())
	})

	t.Run("equal proposal is a no-op", func(t *testing.T) {
		r := maxreg.New(42)
		assert.Equal(t, int64(42), r.Advance(42))
		assert.Equal(t, int64(42), r.Load())
	})

	t.Run("concurrent proposals resolve to the maximum", func(t *testing.T) {
		r := maxreg.New(0)

		var wg sync.WaitGroup
		for _, v := range []int64{100, 105} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				r.Advance(v)
			}()
		}
		wg.Wait()

		assert.Equal(t, int64(105), r.Load())
	})
}

func TestRegister_ConcurrentAdvanceNeverRegresses(t *testing.T) {
	r := maxreg.New(0)

	const workers = 16
	const perWorker = 1000

	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				r.Advance(int64(w*perWorker + i))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*perWorker-1), r.Load())
}
