package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	assert.True(t, t2.After(t1), "t1=%v t2=%v", t1, t2)
	assert.GreaterOrEqual(t, t2.Sub(t1), 10*time.Millisecond)
}

func TestStepTime(t *testing.T) {
	tp := newStepTime(epoch)
	assert.True(t, tp.Now().Equal(epoch))

	tp.Advance(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, tp.Now().Sub(epoch))

	tp.Jump(-time.Second)
	assert.Equal(t, -time.Second, tp.Now().Sub(epoch), "jumping backwards is allowed")
}

func TestStepTimeConcurrentAdvance(t *testing.T) {
	tp := newStepTime(epoch)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tp.Advance(time.Millisecond)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = tp.Now()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 250*time.Millisecond, tp.Now().Sub(epoch))
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &stepTime{}
}
