package physics

import (
	"testing"

	"github.com/younwookim/gardengun/internal/ecs"
)

// newBenchLevel builds a floor of blocks with a falling actor above every other one
func newBenchLevel(blocks int) *ecs.World {
	w := ecs.NewWorld()
	for i := 0; i < blocks; i++ {
		block := w.Spawn()
		w.Transform[block] = ecs.At(ecs.V3(float64(i), -0.5, 0))
		w.Body[block] = ecs.FixedBody()
		w.Collider[block] = ecs.Cuboid(0.5, 0.5)

		if i%2 == 0 {
			actor := w.Spawn()
			w.Transform[actor] = ecs.At(ecs.V3(float64(i), 2, 0))
			w.Body[actor] = ecs.DynamicBody()
			w.Collider[actor] = ecs.Cuboid(0.4, 1)
			w.Velocity[actor] = ecs.Velocity{}
			ecs.Tag(w.ActiveEvents, actor)
		}
	}
	return w
}

func benchmarkStep(b *testing.B, blocks int) {
	w := newBenchLevel(blocks)
	e := New(Config{Gravity: 30})
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		e.Step(w, 1.0/60)
	}
}

func BenchmarkStep_SmallLevel(b *testing.B) { benchmarkStep(b, 30) }
func BenchmarkStep_LargeLevel(b *testing.B) { benchmarkStep(b, 300) }
